package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/mailer"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/cryptox"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationNotPending = errors.New("invitation is no longer pending")
	ErrInvitationExpired    = errors.New("invitation has expired")
	ErrDuplicateInvitation  = errors.New("a pending invitation already exists for this email")
	ErrAlreadyMember        = errors.New("user is already a member of this team")
	ErrInviteeMismatch      = errors.New("invitation is addressed to a different email")
)

type InvitationService struct {
	Store  store.Store
	Mailer mailer.Mailer

	// Now allows tests to pin the clock; defaults to time.Now.
	Now func() time.Time
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// UserInvitationInfo is a pending invitation addressed to a user, enriched
// with the team and inviter for direct rendering.
type UserInvitationInfo struct {
	Invitation domain.Invitation
	Team       domain.Team
	InvitedBy  domain.User
}

// Invite creates a pending invitation and attempts the notification email.
// The inviter must hold owner or admin on the team; only an owner may grant
// the admin role. Duplicate pending invitations and existing memberships
// are conflicts.
func (s *InvitationService) Invite(
	ctx context.Context,
	inviter domain.User,
	teamID, email string,
	role domain.Role,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Invitation{}, ErrInvalidInviteRequest
	}
	if !role.Assignable() {
		return domain.Invitation{}, ErrInvalidRole
	}

	// 1. Authorization: re-read the inviter's membership.
	inviterMembership, err := s.Store.Memberships().GetMembership(ctx, teamID, inviter.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotTeamMember
		}
		log.Error("failed to fetch inviter membership", slog.Any("error", err))
		return domain.Invitation{}, err
	}
	if !inviterMembership.Role.CanManageMembers() {
		return domain.Invitation{}, ErrInsufficientRole
	}

	// 2. An admin cannot grant admin; only the owner may.
	if role == domain.RoleAdmin && inviterMembership.Role != domain.RoleOwner {
		log.Warn("admin attempted to grant admin via invitation",
			slog.String("team_id", teamID),
			slog.String("inviter_id", inviter.ID),
		)
		return domain.Invitation{}, ErrInsufficientRole
	}

	// 3. Refuse inviting an existing member. The invitee may not be
	// registered yet; that is fine, the email resolves at accept time.
	invitee, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		_, err := s.Store.Memberships().GetMembership(ctx, teamID, invitee.ID)
		if err == nil {
			return domain.Invitation{}, ErrAlreadyMember
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to check invitee membership", slog.Any("error", err))
			return domain.Invitation{}, err
		}
	case errors.Is(err, store.ErrNotFound):
		// Not registered yet.
	default:
		log.Error("failed to look up invitee", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 4. Mint the acceptance token; only its fingerprint is stored.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := s.now().UTC()
	invitation := domain.Invitation{
		ID:          idx.New().String(),
		TeamID:      teamID,
		Email:       email,
		Role:        role,
		Status:      domain.InvitationPending,
		TokenHash:   cryptox.FingerprintToken(token),
		InvitedByID: inviter.ID,
		ExpiresAt:   now.Add(domain.DefaultInvitationTTL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 5. The partial unique index turns a duplicate pending invitation
	// into ErrAlreadyExists, racing writers included.
	if err := s.Store.Invitations().CreateInvitation(ctx, invitation); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Invitation{}, ErrDuplicateInvitation
		}
		log.Error("failed to create invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", invitation.ID),
		slog.String("team_id", teamID),
		slog.String("role", string(role)),
	)

	// 6. Notification is at-least-once attempted; a delivery failure is
	// logged and never fails the request.
	s.sendNotification(ctx, invitation, inviter, token)

	return invitation, nil
}

func (s *InvitationService) sendNotification(ctx context.Context, invitation domain.Invitation, inviter domain.User, token string) {
	log := slogx.FromContext(ctx)

	team, err := s.Store.Teams().GetTeamByID(ctx, invitation.TeamID)
	if err != nil {
		log.Error("failed to load team for invitation email", slog.Any("error", err))
		return
	}

	err = s.Mailer.SendInvitation(ctx, mailer.Invitation{
		Invitation: invitation,
		Team:       team,
		InvitedBy:  inviter,
		Token:      token,
	})
	if err != nil {
		log.Error("failed to send invitation email",
			slog.String("invitation_id", invitation.ID),
			slog.Any("error", err),
		)
	}
}

// ListForTeam returns all of a team's invitations, newest first, with the
// expired presentation status applied. Requires owner or admin.
func (s *InvitationService) ListForTeam(ctx context.Context, actorID, teamID string) ([]domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	membership, err := s.Store.Memberships().GetMembership(ctx, teamID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotTeamMember
		}
		log.Error("failed to fetch actor membership", slog.Any("error", err))
		return nil, err
	}
	if !membership.Role.CanManageMembers() {
		return nil, ErrInsufficientRole
	}

	invitations, err := s.Store.Invitations().ListInvitationsByTeam(ctx, teamID)
	if err != nil {
		log.Error("failed to list invitations", slog.Any("error", err))
		return nil, err
	}

	now := s.now()
	for i := range invitations {
		invitations[i].Status = invitations[i].EffectiveStatus(now)
	}
	return invitations, nil
}

// ListForUser returns pending, unexpired invitations addressed to the
// user's email across all teams, enriched with team and inviter.
func (s *InvitationService) ListForUser(ctx context.Context, user domain.User) ([]UserInvitationInfo, error) {
	log := slogx.FromContext(ctx)

	invitations, err := s.Store.Invitations().ListPendingByEmail(ctx, strings.ToLower(user.Email), s.now())
	if err != nil {
		log.Error("failed to list invitations by email", slog.Any("error", err))
		return nil, err
	}

	out := make([]UserInvitationInfo, 0, len(invitations))
	for _, inv := range invitations {
		team, err := s.Store.Teams().GetTeamByID(ctx, inv.TeamID)
		if err != nil {
			log.Error("failed to load invitation team", slog.Any("error", err))
			return nil, err
		}
		invitedBy, err := s.Store.Users().GetUserByID(ctx, inv.InvitedByID)
		if err != nil {
			log.Error("failed to load inviter", slog.Any("error", err))
			return nil, err
		}
		out = append(out, UserInvitationInfo{Invitation: inv, Team: team, InvitedBy: invitedBy})
	}
	return out, nil
}

// Accept transitions a pending invitation to accepted and creates the
// membership, both in one transaction. The acting user's email must match
// the invitee email.
func (s *InvitationService) Accept(ctx context.Context, user domain.User, invitationID string) (domain.Membership, error) {
	log := slogx.FromContext(ctx)

	invitation, err := s.loadForInvitee(ctx, user, invitationID)
	if err != nil {
		return domain.Membership{}, err
	}
	if invitation.Expired(s.now()) {
		return domain.Membership{}, ErrInvitationExpired
	}

	membership := domain.Membership{
		ID:     idx.New().String(),
		TeamID: invitation.TeamID,
		UserID: user.ID,
		Role:   invitation.Role,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// CAS on status: a concurrent accept or cancel makes this a
		// zero-row update and the whole transaction rolls back.
		if err := tx.Invitations().TransitionFromPending(ctx, invitationID, domain.InvitationAccepted); err != nil {
			return err
		}
		return tx.Memberships().CreateMembership(ctx, membership)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Membership{}, ErrInvitationNotPending
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Membership{}, ErrAlreadyMember
		}
		log.Error("failed to accept invitation", slog.Any("error", err))
		return domain.Membership{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", invitationID),
		slog.String("team_id", invitation.TeamID),
		slog.String("user_id", user.ID),
		slog.String("role", string(invitation.Role)),
	)
	return membership, nil
}

// Reject transitions a pending invitation to rejected. No membership is
// created. Same identity precondition as Accept.
func (s *InvitationService) Reject(ctx context.Context, user domain.User, invitationID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.loadForInvitee(ctx, user, invitationID); err != nil {
		return err
	}

	if err := s.Store.Invitations().TransitionFromPending(ctx, invitationID, domain.InvitationRejected); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotPending
		}
		log.Error("failed to reject invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation rejected",
		slog.String("invitation_id", invitationID),
		slog.String("user_id", user.ID),
	)
	return nil
}

// Cancel transitions a pending invitation to cancelled. The actor must hold
// owner or admin on the invitation's team.
func (s *InvitationService) Cancel(ctx context.Context, actorID, invitationID string) error {
	log := slogx.FromContext(ctx)

	invitation, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return err
	}

	membership, err := s.Store.Memberships().GetMembership(ctx, invitation.TeamID, actorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInsufficientRole
		}
		log.Error("failed to fetch actor membership", slog.Any("error", err))
		return err
	}
	if !membership.Role.CanManageMembers() {
		return ErrInsufficientRole
	}

	if err := s.Store.Invitations().TransitionFromPending(ctx, invitationID, domain.InvitationCancelled); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotPending
		}
		log.Error("failed to cancel invitation", slog.Any("error", err))
		return err
	}

	log.Info("invitation cancelled",
		slog.String("invitation_id", invitationID),
		slog.String("team_id", invitation.TeamID),
		slog.String("actor_id", actorID),
	)
	return nil
}

// loadForInvitee fetches the invitation and enforces the invitee identity
// precondition shared by Accept and Reject.
func (s *InvitationService) loadForInvitee(ctx context.Context, user domain.User, invitationID string) (domain.Invitation, error) {
	invitation, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	if !strings.EqualFold(invitation.Email, user.Email) {
		slogx.FromContext(ctx).Warn("invitation action by non-invitee",
			slog.String("invitation_id", invitationID),
			slog.String("user_id", user.ID),
		)
		return domain.Invitation{}, ErrInviteeMismatch
	}

	if invitation.Status != domain.InvitationPending {
		return domain.Invitation{}, ErrInvitationNotPending
	}

	return invitation, nil
}
