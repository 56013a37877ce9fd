package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/slogx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

type TeamsHandler struct {
	IdentityService *service.IdentityService
	TeamService     *service.TeamService
}

// HandleList godoc
//
//	@Summary		List Teams
//	@Description	Returns every team the caller belongs to, with the caller's role on each.
//	@Tags			Teams
//	@Produce		json
//	@Success		200	{array}		teamsdk.Team			"teams with caller role"
//	@Failure		401	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams [get].
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	teams, err := h.TeamService.ListTeams(ctx, user.ID)
	if err != nil {
		log.Error("failed to list teams", "err", err)
		writeServerError(w)
		return
	}

	out := make([]teamsdk.Team, 0, len(teams))
	for _, tr := range teams {
		out = append(out, toTeam(tr.Team, tr.Role))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create Team
//	@Description	Creates a team owned by the caller. The owner membership is created atomically with the team.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			request	body		teamsdk.CreateTeamRequest	true	"name, description"
//	@Success		201		{object}	teamsdk.Team				"the created team"
//	@Failure		400		{object}	teamsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	teamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams [post].
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	var req teamsdk.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	team, err := h.TeamService.CreateTeam(ctx, user.ID, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTeamRequest) {
			writeError(w, http.StatusBadRequest, "invalid_request", "A team name is required")
			return
		}
		log.Error("failed to create team", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTeam(team, "owner"))
}

// HandleGet godoc
//
//	@Summary		Show Team
//	@Description	Returns a single team. Non-members receive 404; team ids are not discoverable.
//	@Tags			Teams
//	@Produce		json
//	@Param			id	path		string					true	"team id"
//	@Success		200	{object}	teamsdk.Team			"the team"
//	@Failure		401	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id} [get].
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	team, err := h.TeamService.GetTeam(ctx, user.ID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Team not found")
			return
		}
		log.Error("failed to fetch team", "err", err)
		writeServerError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTeam(team, ""))
}

// HandleUpdate godoc
//
//	@Summary		Update Team
//	@Description	Updates a team's name and description. Requires the owner or admin role.
//	@Tags			Teams
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"team id"
//	@Param			request	body		teamsdk.UpdateTeamRequest	true	"name, description"
//	@Success		200		{object}	teamsdk.Team				"the updated team"
//	@Failure		400		{object}	teamsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	teamsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	teamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id} [put].
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	var req teamsdk.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	team, err := h.TeamService.UpdateTeam(ctx, user.ID, r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTeamRequest):
			writeError(w, http.StatusBadRequest, "invalid_request", "A team name is required")
		case errors.Is(err, service.ErrTeamNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Team not found")
		case errors.Is(err, service.ErrInsufficientRole):
			writeError(w, http.StatusForbidden, "forbidden", "Owner or admin role required")
		default:
			log.Error("failed to update team", "err", err)
			writeServerError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTeam(team, ""))
}

// HandleDelete godoc
//
//	@Summary		Delete Team
//	@Description	Deletes a team. Memberships are removed and pending invitations cancelled in the same transaction. Owner only.
//	@Tags			Teams
//	@Param			id	path	string	true	"team id"
//	@Success		204	"team deleted"
//	@Failure		403	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	teamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/teams/{id} [delete].
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := resolveUser(w, r, h.IdentityService)
	if !ok {
		return
	}

	if err := h.TeamService.DeleteTeam(ctx, user.ID, r.PathValue("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrTeamNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Team not found")
		case errors.Is(err, service.ErrInsufficientRole):
			writeError(w, http.StatusForbidden, "forbidden", "Only the owner may delete a team")
		default:
			log.Error("failed to delete team", "err", err)
			writeServerError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
