package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/slogx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

type InvitationsHandler struct {
	IdentityService   *service.IdentityService
	InvitationService *service.InvitationService
}

// HandleInvite godoc
//
//	@Summary		Invite to Team
//	@Description	Creates a pending invitation for an email address and attempts the notification email. Requires owner or admin; only the owner may grant the admin role.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"team id"
//	@Param			request	body		teamsdk.InviteRequest	true	"email, role"
//	@Success		201		{object}	teamsdk.Invitation		"the pending invitation"
//	@Failure		400		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id}/invite [post].
func (h *InvitationsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	var req teamsdk.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	invitation, err := h.InvitationService.Invite(
		ctx, user, r.PathValue("id"), req.Email, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", "A valid email is required")
		case errors.Is(err, service.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_request", "Role must be admin or member")
		case errors.Is(err, service.ErrNotTeamMember), errors.Is(err, service.ErrInsufficientRole):
			writeError(w, http.StatusForbidden, "forbidden", "You may not invite with this role on this team")
		case errors.Is(err, service.ErrDuplicateInvitation):
			writeError(w, http.StatusConflict, "conflict", "A pending invitation already exists for this email")
		case errors.Is(err, service.ErrAlreadyMember):
			writeError(w, http.StatusConflict, "conflict", "User is already a member of this team")
		default:
			log.Error("failed to create invitation", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitation(invitation))
}

// HandleListForTeam godoc
//
//	@Summary		List Team Invitations
//	@Description	Returns all of a team's invitations, newest first. Pending invitations past their expiry are reported with status "expired". Requires owner or admin.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string					true	"team id"
//	@Success		200	{array}		teamsdk.Invitation		"invitations"
//	@Failure		401	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id}/invitations [get].
func (h *InvitationsHandler) HandleListForTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	invitations, err := h.InvitationService.ListForTeam(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotTeamMember) || errors.Is(err, service.ErrInsufficientRole) {
			writeError(w, http.StatusForbidden, "forbidden", "Owner or admin role required")
			return
		}
		log.Error("failed to list team invitations", "err", err)
		writeServerError(w)
		return
	}

	out := make([]teamsdk.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, toInvitation(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleListForUser godoc
//
//	@Summary		List My Invitations
//	@Description	Returns pending invitations addressed to the caller's email across all teams, with the team and inviter embedded.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{array}		teamsdk.UserInvitation	"pending invitations"
//	@Failure		401	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/invitations [get].
func (h *InvitationsHandler) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	invitations, err := h.InvitationService.ListForUser(ctx, user)
	if err != nil {
		log.Error("failed to list user invitations", "err", err)
		writeServerError(w)
		return
	}

	out := make([]teamsdk.UserInvitation, 0, len(invitations))
	for _, info := range invitations {
		out = append(out, toUserInvitation(info))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAccept godoc
//
//	@Summary		Accept Invitation
//	@Description	Accepts a pending invitation addressed to the caller's email. The membership is created atomically with the status change.
//	@Tags			Invitations
//	@Produce		json
//	@Param			iid	path		string					true	"invitation id"
//	@Success		200	{object}	teamsdk.Member			"the new membership"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/invitations/{iid}/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	membership, err := h.InvitationService.Accept(ctx, user, r.PathValue("iid"))
	if err != nil {
		h.writeLifecycleError(w, log, err, "accept")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamsdk.Member{
		ID:        membership.ID,
		UserID:    membership.UserID,
		Role:      string(membership.Role),
		UserName:  user.Name,
		UserEmail: user.Email,
	})
}

// HandleReject godoc
//
//	@Summary		Reject Invitation
//	@Description	Rejects a pending invitation addressed to the caller's email. No membership is created.
//	@Tags			Invitations
//	@Produce		json
//	@Param			iid	path	string	true	"invitation id"
//	@Success		200	"invitation rejected"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/invitations/{iid}/reject [post].
func (h *InvitationsHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	if err := h.InvitationService.Reject(ctx, user, r.PathValue("iid")); err != nil {
		h.writeLifecycleError(w, log, err, "reject")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleCancel godoc
//
//	@Summary		Cancel Invitation
//	@Description	Cancels a pending invitation. The caller must hold owner or admin on the invitation's team.
//	@Tags			Invitations
//	@Produce		json
//	@Param			iid	path	string	true	"invitation id"
//	@Success		200	"invitation cancelled"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/invitations/{iid}/cancel [post].
func (h *InvitationsHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	if err := h.InvitationService.Cancel(ctx, user.ID, r.PathValue("iid")); err != nil {
		h.writeLifecycleError(w, log, err, "cancel")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// writeLifecycleError maps the shared accept/reject/cancel failures onto the
// error taxonomy.
func (h *InvitationsHandler) writeLifecycleError(w http.ResponseWriter, log *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Invitation not found")
	case errors.Is(err, service.ErrInviteeMismatch), errors.Is(err, service.ErrInsufficientRole):
		writeError(w, http.StatusForbidden, "forbidden", "You may not act on this invitation")
	case errors.Is(err, service.ErrInvitationNotPending):
		writeError(w, http.StatusConflict, "conflict", "Invitation is no longer pending")
	case errors.Is(err, service.ErrInvitationExpired):
		writeError(w, http.StatusConflict, "conflict", "Invitation has expired")
	case errors.Is(err, service.ErrAlreadyMember):
		writeError(w, http.StatusConflict, "conflict", "You are already a member of this team")
	default:
		log.Error("invitation operation failed", "op", op, "err", err)
		writeServerError(w)
	}
}
