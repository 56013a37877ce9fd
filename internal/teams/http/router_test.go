package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/mailer"
	"github.com/huddlehq/huddle/internal/teams/service"
	"github.com/huddlehq/huddle/internal/teams/store/drivers/sqlite"
	"github.com/huddlehq/huddle/pkg/idx"
	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
)

const testIssuer = "https://id.example.com"

type testServer struct {
	router *Router
	store  *sqlite.Store
	signer *jwtx.Signer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.GenerateSigner("test-key")
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifier(keys, testIssuer)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := NewRouter(keys, verifier, "test", st, logger)
	r.IdentityService = &service.IdentityService{Store: st}
	r.TeamService = &service.TeamService{Store: st}
	r.MembershipService = &service.MembershipService{Store: st}
	r.InvitationService = &service.InvitationService{
		Store:  st,
		Mailer: &mailer.LogMailer{Logger: logger},
	}
	r.ApplyRoutes()

	return &testServer{router: r, store: st, signer: signer}
}

func (s *testServer) createUser(t *testing.T, name, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:            idx.New().String(),
		Name:          name,
		Email:         email,
		EmailVerified: true,
		PasswordHash:  "argon2:dummy",
	}
	require.NoError(t, s.store.Users().CreateUser(context.Background(), u))
	return u
}

func (s *testServer) tokenFor(t *testing.T, u domain.User) string {
	t.Helper()

	claims := jwtx.NewAccessClaims(
		u.ID, u.Email, u.Name,
		testIssuer, []string{"huddle"},
		jwtx.DefaultAccessTokenTTL, time.Now(),
	)
	token, err := s.signer.Sign(claims)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/teams", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
}

func TestUnknownSubjectFailsClosed(t *testing.T) {
	srv := newTestServer(t)

	ghost := domain.User{ID: idx.New().String(), Email: "ghost@example.com"}
	rec := srv.do(t, http.MethodGet, "/api/teams", srv.tokenFor(t, ghost), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTeamLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	owner := srv.createUser(t, "Owner", "owner@example.com")
	ownerToken := srv.tokenFor(t, owner)

	// Create.
	rec := srv.do(t, http.MethodPost, "/api/teams", ownerToken, teamsdk.CreateTeamRequest{
		Name:        "Platform",
		Description: "infra folks",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	team := decodeJSON[teamsdk.Team](t, rec)
	require.Equal(t, "Platform", team.Name)
	require.Equal(t, owner.ID, team.OwnerID)

	// List includes the caller's role.
	rec = srv.do(t, http.MethodGet, "/api/teams", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	teams := decodeJSON[[]teamsdk.Team](t, rec)
	require.Len(t, teams, 1)
	require.Equal(t, "owner", teams[0].Role)

	// Update.
	rec = srv.do(t, http.MethodPut, "/api/teams/"+team.ID, ownerToken, teamsdk.UpdateTeamRequest{
		Name: "Platform Eng",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Platform Eng", decodeJSON[teamsdk.Team](t, rec).Name)

	// Show hides the team from non-members.
	outsider := srv.createUser(t, "Outsider", "outsider@example.com")
	rec = srv.do(t, http.MethodGet, "/api/teams/"+team.ID, srv.tokenFor(t, outsider), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Delete.
	rec = srv.do(t, http.MethodDelete, "/api/teams/"+team.ID, ownerToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/teams/"+team.ID, ownerToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvitationFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	owner := srv.createUser(t, "Owner", "owner@example.com")
	invitee := srv.createUser(t, "Invitee", "invitee@example.com")
	ownerToken := srv.tokenFor(t, owner)
	inviteeToken := srv.tokenFor(t, invitee)

	rec := srv.do(t, http.MethodPost, "/api/teams", ownerToken, teamsdk.CreateTeamRequest{Name: "Platform"})
	require.Equal(t, http.StatusCreated, rec.Code)
	team := decodeJSON[teamsdk.Team](t, rec)

	// Invite.
	rec = srv.do(t, http.MethodPost, "/api/teams/"+team.ID+"/invite", ownerToken, teamsdk.InviteRequest{
		Email: invitee.Email,
		Role:  "member",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	invitation := decodeJSON[teamsdk.Invitation](t, rec)
	require.Equal(t, "pending", invitation.Status)

	// Duplicate pending invitation conflicts.
	rec = srv.do(t, http.MethodPost, "/api/teams/"+team.ID+"/invite", ownerToken, teamsdk.InviteRequest{
		Email: invitee.Email,
		Role:  "member",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "conflict", decodeJSON[teamsdk.ErrorResponse](t, rec).Error)

	// The invitee sees it on their list, enriched.
	rec = srv.do(t, http.MethodGet, "/api/teams/invitations", inviteeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decodeJSON[[]teamsdk.UserInvitation](t, rec)
	require.Len(t, mine, 1)
	require.Equal(t, team.ID, mine[0].Team.ID)
	require.Equal(t, owner.Email, mine[0].InvitedBy.Email)

	// A stranger cannot accept it.
	stranger := srv.createUser(t, "Stranger", "stranger@example.com")
	rec = srv.do(t, http.MethodPost, "/api/teams/invitations/"+invitation.ID+"/accept", srv.tokenFor(t, stranger), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The invitee accepts; the membership comes back.
	rec = srv.do(t, http.MethodPost, "/api/teams/invitations/"+invitation.ID+"/accept", inviteeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	member := decodeJSON[teamsdk.Member](t, rec)
	require.Equal(t, invitee.ID, member.UserID)
	require.Equal(t, "member", member.Role)

	// Accepting again conflicts; the invitation is terminal.
	rec = srv.do(t, http.MethodPost, "/api/teams/invitations/"+invitation.ID+"/accept", inviteeToken, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	// Roster now has two members, visible to any member.
	rec = srv.do(t, http.MethodGet, "/api/teams/"+team.ID+"/members", inviteeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeJSON[[]teamsdk.Member](t, rec), 2)

	// The member cannot view the team invitation list.
	rec = srv.do(t, http.MethodGet, "/api/teams/"+team.ID+"/invitations", inviteeToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/teams/"+team.ID+"/invitations", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeJSON[[]teamsdk.Invitation](t, rec)
	require.Len(t, list, 1)
	require.Equal(t, "accepted", list[0].Status)
}

func TestRoleManagementOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	owner := srv.createUser(t, "Owner", "owner@example.com")
	member := srv.createUser(t, "Member", "member@example.com")
	ownerToken := srv.tokenFor(t, owner)
	memberToken := srv.tokenFor(t, member)

	rec := srv.do(t, http.MethodPost, "/api/teams", ownerToken, teamsdk.CreateTeamRequest{Name: "Platform"})
	team := decodeJSON[teamsdk.Team](t, rec)

	rec = srv.do(t, http.MethodPost, "/api/teams/"+team.ID+"/invite", ownerToken, teamsdk.InviteRequest{
		Email: member.Email,
		Role:  "member",
	})
	invitation := decodeJSON[teamsdk.Invitation](t, rec)
	rec = srv.do(t, http.MethodPost, "/api/teams/invitations/"+invitation.ID+"/accept", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	membership := decodeJSON[teamsdk.Member](t, rec)

	// A member cannot change roles.
	rec = srv.do(t, http.MethodPut,
		"/api/teams/"+team.ID+"/members/"+membership.ID+"/role", memberToken,
		teamsdk.UpdateRoleRequest{Role: "admin"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The owner promotes the member to admin.
	rec = srv.do(t, http.MethodPut,
		"/api/teams/"+team.ID+"/members/"+membership.ID+"/role", ownerToken,
		teamsdk.UpdateRoleRequest{Role: "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "admin", decodeJSON[teamsdk.Member](t, rec).Role)

	// Promoting to owner is a conflict.
	rec = srv.do(t, http.MethodPut,
		"/api/teams/"+team.ID+"/members/"+membership.ID+"/role", ownerToken,
		teamsdk.UpdateRoleRequest{Role: "owner"})
	require.Equal(t, http.StatusConflict, rec.Code)

	// An unknown role is a validation failure.
	rec = srv.do(t, http.MethodPut,
		"/api/teams/"+team.ID+"/members/"+membership.ID+"/role", ownerToken,
		teamsdk.UpdateRoleRequest{Role: "superuser"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// The owner removes the (now admin) member.
	rec = srv.do(t, http.MethodDelete,
		"/api/teams/"+team.ID+"/members/"+membership.ID, ownerToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealthProbes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeJSON[teamsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}
