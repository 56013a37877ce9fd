package http

import (
	"net/http"
	"time"

	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe returning service health and the status of critical dependencies: database connectivity and the bearer verification key set.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	teamsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	teamsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &teamsdk.HealthChecks{
			Database: "ok",
			Verifier: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Verifier = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, teamsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
