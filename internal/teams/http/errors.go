package http

import (
	"net/http"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

func writeError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, teamsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

func writeServerError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
}

// resolveUser turns the verified bearer subject into a stored user record.
// Writes the 401 response itself when the identity does not resolve.
func resolveUser(w http.ResponseWriter, r *http.Request, identity *service.IdentityService) (domain.User, bool) {
	ctx := r.Context()

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		writeUnauthorized(w)
		return domain.User{}, false
	}

	user, err := identity.Resolve(ctx, userID)
	if err != nil {
		// Unknown subject and store failure both fail closed.
		writeUnauthorized(w)
		return domain.User{}, false
	}
	return user, true
}
