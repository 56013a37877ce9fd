package teams_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
	"github.com/stretchr/testify/require"
)

// TestRequestsRequireBearer verifies the API rejects unauthenticated and
// malformed credentials.
func TestRequestsRequireBearer(t *testing.T) {
	baseURL, _, cleanup := setupTeamsContainer(t)
	defer cleanup()

	anon := teamsdk.NewClient(baseURL, "")
	_, err := anon.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)

	garbage := teamsdk.NewClient(baseURL, "not-a-jwt")
	_, err = garbage.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)
}

// TestUntrustedSignerRejected verifies tokens from a key the service does
// not trust are rejected, even with valid claims.
func TestUntrustedSignerRejected(t *testing.T) {
	baseURL, _, cleanup := setupTeamsContainer(t)
	defer cleanup()

	rogue, err := jwtx.GenerateSigner("rogue-key")
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims(
		alice.ID, alice.Email, alice.Name,
		testIssuer, []string{"huddle-teams"},
		jwtx.DefaultAccessTokenTTL, time.Now().UTC(),
	)
	token, err := rogue.Sign(claims)
	require.NoError(t, err)

	client := teamsdk.NewClient(baseURL, token)
	_, err = client.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)
}

// TestWrongIssuerRejected verifies issuer validation on bearer tokens.
func TestWrongIssuerRejected(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	claims := jwtx.NewAccessClaims(
		alice.ID, alice.Email, alice.Name,
		"someone-else", []string{"huddle-teams"},
		jwtx.DefaultAccessTokenTTL, time.Now().UTC(),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	client := teamsdk.NewClient(baseURL, token)
	_, err = client.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)
}

// TestUnknownSubjectRejected verifies a valid token whose subject has no
// user record fails closed.
func TestUnknownSubjectRejected(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	ghost := seedUser{ID: "dev-user-999", Name: "Ghost", Email: "ghost@example.com"}
	client := clientFor(t, baseURL, signer, ghost)

	_, err := client.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)
}

// TestExpiredTokenRejected verifies expired tokens are refused.
func TestExpiredTokenRejected(t *testing.T) {
	baseURL, signer, cleanup := setupTeamsContainer(t)
	defer cleanup()

	claims := jwtx.NewAccessClaims(
		alice.ID, alice.Email, alice.Name,
		testIssuer, []string{"huddle-teams"},
		jwtx.DefaultAccessTokenTTL, time.Now().UTC().Add(-time.Hour),
	)
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	client := teamsdk.NewClient(baseURL, token)
	_, err = client.ListTeams(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, teamsdk.ErrorCodeUnauthorized)
}
