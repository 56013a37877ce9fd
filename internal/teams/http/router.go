package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/httpx"
	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/slogx"

	_ "github.com/huddlehq/huddle/api/teams" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	IdentityService   *service.IdentityService
	TeamService       *service.TeamService
	MembershipService *service.MembershipService
	InvitationService *service.InvitationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTeams()
	r.registerMembers()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Huddle Team Service API
//	@version		0.1.0
//	@description	Team management service: teams, memberships, and the team
//	@description	invitation lifecycle. All endpoints require a bearer JWT issued
//	@description	by the identity provider; the service verifies EdDSA signatures
//	@description	against its configured key set.
//
//	@contact.name				HuddleHQ
//	@contact.url				https://github.com/huddlehq/huddle
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTeams() {
	h := &TeamsHandler{
		IdentityService: r.IdentityService,
		TeamService:     r.TeamService,
	}

	// Reads get the lenient profile, writes the moderate one.
	r.Mux.Handle("GET /api/teams",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/teams",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/teams/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MembersHandler{
		IdentityService:   r.IdentityService,
		MembershipService: r.MembershipService,
	}

	r.Mux.Handle("GET /api/teams/{id}/members",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PUT /api/teams/{id}/members/{mid}/role",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateRole),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/teams/{id}/members/{mid}",
		httpx.Chain(http.HandlerFunc(h.HandleRemove),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{
		IdentityService:   r.IdentityService,
		InvitationService: r.InvitationService,
	}

	r.Mux.Handle("POST /api/teams/{id}/invite",
		httpx.Chain(http.HandlerFunc(h.HandleInvite),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/teams/{id}/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleListForTeam),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// The literal "invitations" segment wins over /api/teams/{id} patterns.
	r.Mux.Handle("GET /api/teams/invitations",
		httpx.Chain(http.HandlerFunc(h.HandleListForUser),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/teams/invitations/{iid}/accept",
		httpx.Chain(http.HandlerFunc(h.HandleAccept),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/teams/invitations/{iid}/reject",
		httpx.Chain(http.HandlerFunc(h.HandleReject),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/teams/invitations/{iid}/cancel",
		httpx.Chain(http.HandlerFunc(h.HandleCancel),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
