package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var (
	ErrInvalidTeamRequest = errors.New("invalid team request")
	ErrTeamNotFound       = errors.New("team not found")

	// ErrInsufficientRole is the shared authorization failure for every
	// operation where the actor's team role is not senior enough.
	ErrInsufficientRole = errors.New("insufficient role")
)

const maxTeamNameLength = 100

type TeamService struct {
	Store store.Store
}

// ListTeams returns every team the user belongs to, with the user's role.
func (s *TeamService) ListTeams(ctx context.Context, userID string) ([]store.TeamWithRole, error) {
	log := slogx.FromContext(ctx)

	teams, err := s.Store.Teams().ListTeamsForUser(ctx, userID)
	if err != nil {
		log.Error("failed to list teams", slog.Any("error", err))
		return nil, err
	}
	return teams, nil
}

// CreateTeam creates a team and its owner membership atomically.
func (s *TeamService) CreateTeam(ctx context.Context, ownerID, name, description string) (domain.Team, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxTeamNameLength {
		return domain.Team{}, ErrInvalidTeamRequest
	}

	team := domain.Team{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     ownerID,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Teams().CreateTeam(ctx, team); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, domain.Membership{
			ID:     idx.New().String(),
			TeamID: team.ID,
			UserID: ownerID,
			Role:   domain.RoleOwner,
		})
	})
	if err != nil {
		log.Error("failed to create team", slog.Any("error", err))
		return domain.Team{}, err
	}

	created, err := s.Store.Teams().GetTeamByID(ctx, team.ID)
	if err != nil {
		return domain.Team{}, err
	}

	log.Info("team created",
		slog.String("team_id", created.ID),
		slog.String("owner_id", ownerID),
	)
	return created, nil
}

// GetTeam returns a team the user is a member of. Non-members get
// ErrTeamNotFound rather than a forbidden error, so team ids leak nothing.
func (s *TeamService) GetTeam(ctx context.Context, userID, teamID string) (domain.Team, error) {
	if _, err := s.requireMembership(ctx, userID, teamID); err != nil {
		return domain.Team{}, err
	}
	return s.Store.Teams().GetTeamByID(ctx, teamID)
}

// UpdateTeam renames a team. Requires owner or admin.
func (s *TeamService) UpdateTeam(ctx context.Context, userID, teamID, name, description string) (domain.Team, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxTeamNameLength {
		return domain.Team{}, ErrInvalidTeamRequest
	}

	membership, err := s.requireMembership(ctx, userID, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	if !membership.Role.CanManageMembers() {
		log.Warn("team update attempted without manage rights",
			slog.String("team_id", teamID),
			slog.String("user_id", userID),
			slog.String("role", string(membership.Role)),
		)
		return domain.Team{}, ErrInsufficientRole
	}

	updated, err := s.Store.Teams().UpdateTeam(ctx, teamID, name, strings.TrimSpace(description))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Team{}, ErrTeamNotFound
		}
		log.Error("failed to update team", slog.Any("error", err))
		return domain.Team{}, err
	}

	log.Info("team updated", slog.String("team_id", teamID))
	return updated, nil
}

// DeleteTeam deletes a team and cascades atomically: pending invitations
// are cancelled, memberships deleted, then the team row itself. Owner only.
func (s *TeamService) DeleteTeam(ctx context.Context, userID, teamID string) error {
	log := slogx.FromContext(ctx)

	membership, err := s.requireMembership(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if membership.Role != domain.RoleOwner {
		log.Warn("team delete attempted by non-owner",
			slog.String("team_id", teamID),
			slog.String("user_id", userID),
			slog.String("role", string(membership.Role)),
		)
		return ErrInsufficientRole
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().CancelPendingByTeam(ctx, teamID); err != nil {
			return err
		}
		if err := tx.Memberships().DeleteMembershipsByTeam(ctx, teamID); err != nil {
			return err
		}
		return tx.Teams().DeleteTeam(ctx, teamID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTeamNotFound
		}
		log.Error("failed to delete team", slog.Any("error", err))
		return err
	}

	log.Info("team deleted", slog.String("team_id", teamID), slog.String("owner_id", userID))
	return nil
}

// requireMembership re-reads the actor's membership on every call. Absent
// membership (or absent team) reads as ErrTeamNotFound.
func (s *TeamService) requireMembership(ctx context.Context, userID, teamID string) (domain.Membership, error) {
	membership, err := s.Store.Memberships().GetMembership(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Membership{}, ErrTeamNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch membership", slog.Any("error", err))
		return domain.Membership{}, err
	}
	return membership, nil
}
