package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var (
	ErrNotTeamMember      = errors.New("not a member of this team")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMemberNotOnTeam    = errors.New("member is not on this team")
	ErrOwnerImmutable     = errors.New("the owner membership cannot be changed or removed")
	ErrInvalidRole        = errors.New("invalid role")
)

type MembershipService struct {
	Store store.Store
}

// MemberInfo joins a membership row with its user record for display.
type MemberInfo struct {
	Membership domain.Membership
	User       domain.User
}

// ListMembers returns the team roster. Any member may view it.
func (s *MembershipService) ListMembers(ctx context.Context, userID, teamID string) ([]MemberInfo, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.actorRole(ctx, userID, teamID); err != nil {
		return nil, err
	}

	memberships, err := s.Store.Memberships().ListMembershipsByTeam(ctx, teamID)
	if err != nil {
		log.Error("failed to list memberships", slog.Any("error", err))
		return nil, err
	}

	out := make([]MemberInfo, 0, len(memberships))
	for _, m := range memberships {
		user, err := s.Store.Users().GetUserByID(ctx, m.UserID)
		if err != nil {
			log.Error("failed to resolve member user",
				slog.String("membership_id", m.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		out = append(out, MemberInfo{Membership: m, User: user})
	}
	return out, nil
}

// UpdateRole changes a member's role. Owner only; the owner membership is
// immutable and the owner role is never assignable.
func (s *MembershipService) UpdateRole(
	ctx context.Context,
	actorID, teamID, membershipID string,
	role domain.Role,
) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	// The owner role is singular; granting it is a state conflict rather
	// than a malformed request. Anything outside the known roles is.
	if role == domain.RoleOwner {
		return domain.Membership{}, ErrOwnerImmutable
	}
	if !role.Assignable() {
		return domain.Membership{}, ErrInvalidRole
	}

	actorRole, err := s.actorRole(ctx, actorID, teamID)
	if err != nil {
		return domain.Membership{}, err
	}
	if actorRole != domain.RoleOwner {
		log.Warn("role change attempted by non-owner",
			slog.String("team_id", teamID),
			slog.String("actor_id", actorID),
			slog.String("actor_role", string(actorRole)),
		)
		return domain.Membership{}, ErrInsufficientRole
	}

	target, err := s.targetOnTeam(ctx, membershipID, teamID)
	if err != nil {
		return domain.Membership{}, err
	}
	if target.Role == domain.RoleOwner {
		return domain.Membership{}, ErrOwnerImmutable
	}

	if err := s.Store.Memberships().UpdateMembershipRole(ctx, membershipID, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrMemberNotOnTeam
		}
		log.Error("failed to update role", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("member role updated",
		slog.String("team_id", teamID),
		slog.String("membership_id", membershipID),
		slog.String("role", string(role)),
	)
	return s.Store.Memberships().GetMembershipByID(ctx, membershipID)
}

// RemoveMember deletes a membership. The owner may remove any non-owner;
// an admin may remove plain members only. Pending invitations addressed to
// the removed member's email are untouched.
func (s *MembershipService) RemoveMember(ctx context.Context, actorID, teamID, membershipID string) error {
	log := slogx.FromContext(ctx)

	actorRole, err := s.actorRole(ctx, actorID, teamID)
	if err != nil {
		return err
	}

	target, err := s.targetOnTeam(ctx, membershipID, teamID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleOwner {
		return ErrInsufficientRole
	}
	if !actorRole.Outranks(target.Role) {
		log.Warn("member removal attempted without seniority",
			slog.String("team_id", teamID),
			slog.String("actor_role", string(actorRole)),
			slog.String("target_role", string(target.Role)),
		)
		return ErrInsufficientRole
	}

	if err := s.Store.Memberships().DeleteMembership(ctx, membershipID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMembershipNotFound
		}
		log.Error("failed to remove member", slog.Any("error", err))
		return err
	}

	log.Info("member removed",
		slog.String("team_id", teamID),
		slog.String("membership_id", membershipID),
		slog.String("actor_id", actorID),
	)
	return nil
}

// actorRole re-reads the actor's own membership; absent membership fails
// closed as ErrNotTeamMember.
func (s *MembershipService) actorRole(ctx context.Context, userID, teamID string) (domain.Role, error) {
	membership, err := s.Store.Memberships().GetMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotTeamMember
		}
		slogx.FromContext(ctx).Error("failed to fetch actor membership", slog.Any("error", err))
		return "", err
	}
	return membership.Role, nil
}

// targetOnTeam fetches the target membership and verifies it belongs to the
// team in the URL. A membership on some other team reads as not-on-team.
func (s *MembershipService) targetOnTeam(ctx context.Context, membershipID, teamID string) (domain.Membership, error) {
	target, err := s.Store.Memberships().GetMembershipByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrMembershipNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch target membership", slog.Any("error", err))
		return domain.Membership{}, err
	}
	if target.TeamID != teamID {
		return domain.Membership{}, ErrMemberNotOnTeam
	}
	return target, nil
}
