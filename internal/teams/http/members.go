package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/slogx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

type MembersHandler struct {
	IdentityService   *service.IdentityService
	MembershipService *service.MembershipService
}

// HandleList godoc
//
//	@Summary		List Members
//	@Description	Returns the team roster with user names and emails. Any member may view it.
//	@Tags			Members
//	@Produce		json
//	@Param			id	path		string					true	"team id"
//	@Success		200	{array}		teamsdk.Member			"memberships with user info"
//	@Failure		401	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	members, err := h.MembershipService.ListMembers(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotTeamMember) {
			writeError(w, http.StatusForbidden, "forbidden", "You are not a member of this team")
			return
		}
		log.Error("failed to list members", "err", err)
		writeServerError(w)
		return
	}

	out := make([]teamsdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toMember(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateRole godoc
//
//	@Summary		Update Member Role
//	@Description	Changes a member's role to admin or member. Owner only; the owner membership itself is immutable.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"team id"
//	@Param			mid		path		string					true	"membership id"
//	@Param			request	body		teamsdk.UpdateRoleRequest	true	"role"
//	@Success		200		{object}	teamsdk.Member			"the updated membership"
//	@Failure		400		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id}/members/{mid}/role [put].
func (h *MembersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	var req teamsdk.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	membership, err := h.MembershipService.UpdateRole(
		ctx, user.ID, r.PathValue("id"), r.PathValue("mid"), domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_request", "Role must be admin or member")
		case errors.Is(err, service.ErrNotTeamMember), errors.Is(err, service.ErrInsufficientRole):
			writeError(w, http.StatusForbidden, "forbidden", "Only the owner may change roles")
		case errors.Is(err, service.ErrOwnerImmutable):
			writeError(w, http.StatusConflict, "conflict", "The owner role cannot be changed or assigned")
		case errors.Is(err, service.ErrMembershipNotFound), errors.Is(err, service.ErrMemberNotOnTeam):
			writeError(w, http.StatusConflict, "conflict", "Member is not on this team")
		default:
			log.Error("failed to update member role", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamsdk.Member{
		ID:     membership.ID,
		UserID: membership.UserID,
		Role:   string(membership.Role),
	})
}

// HandleRemove godoc
//
//	@Summary		Remove Member
//	@Description	Removes a membership. The owner may remove any non-owner; an admin may remove plain members only.
//	@Tags			Members
//	@Param			id	path	string	true	"team id"
//	@Param			mid	path	string	true	"membership id"
//	@Success		204	"member removed"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id}/members/{mid} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	err := h.MembershipService.RemoveMember(ctx, user.ID, r.PathValue("id"), r.PathValue("mid"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotTeamMember), errors.Is(err, service.ErrInsufficientRole):
			writeError(w, http.StatusForbidden, "forbidden", "You may not remove this member")
		case errors.Is(err, service.ErrMembershipNotFound), errors.Is(err, service.ErrMemberNotOnTeam):
			writeError(w, http.StatusNotFound, "not_found", "Membership not found")
		default:
			log.Error("failed to remove member", "err", err)
			writeServerError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
