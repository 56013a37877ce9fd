package teams_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/huddlehq/huddle/pkg/jwtx"
	"github.com/huddlehq/huddle/pkg/teamsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for team service end-to-end tests.
 * This includes container setup, token minting, and assertions.
 *
 * The container starts with HUDDLE_SEED=true, so the fixed dev users from
 * cmd/seed are present. Tests mint their own bearer tokens with a signing
 * key whose public half is handed to the container via HUDDLE_TRUSTED_KEYS.
 */

const (
	testImageName = "huddle-teams-test:latest"

	testIssuer = "huddle-identity"
	testKID    = "e2e-key-001"
)

// The fixed users created by the seed tool. IDs double as bearer subjects.
type seedUser struct {
	ID    string
	Name  string
	Email string
}

var (
	alice = seedUser{ID: "dev-user-001", Name: "Alice Anderson", Email: "alice@example.com"}
	bob   = seedUser{ID: "dev-user-002", Name: "Bob Brown", Email: "bob@example.com"}
	carol = seedUser{ID: "dev-user-003", Name: "Carol Chen", Email: "carol@example.com"}
	dave  = seedUser{ID: "dev-user-004", Name: "Dave Daniels", Email: "dave@example.com"}
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Team Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Team Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image if it doesn't exist.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/huddle/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupTeamsContainer starts the team service in a container, seeded with the
// dev users and trusting a freshly generated signing key. Returns the base
// URL, the signer for minting test tokens, and a cleanup function.
func setupTeamsContainer(t *testing.T) (string, *jwtx.Signer, func()) {
	t.Helper()
	ctx := context.Background()

	signer, err := jwtx.GenerateSigner(testKID)
	require.NoError(t, err)

	trustedKey := fmt.Sprintf("%s:%s", signer.KID(),
		base64.RawURLEncoding.EncodeToString(signer.Public()))

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"HUDDLE_ISSUER":        testIssuer,
			"HUDDLE_TRUSTED_KEYS":  trustedKey,
			"HUDDLE_DATABASE_FILE": "/huddle.db",
			"HUDDLE_PEPPER_FILE":   "/pepper",
			"HUDDLE_SEED":          "true",
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
			// Increase rate limits for E2E tests to prevent test failures
			// Tests often make many rapid requests which would otherwise hit the strict production limits
			"RATELIMIT_MODERATE_REQUESTS": "1000",
			"RATELIMIT_MODERATE_BURST":    "1000",
			"RATELIMIT_LENIENT_REQUESTS":  "1000",
			"RATELIMIT_LENIENT_BURST":     "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, signer, cleanup
}

// clientFor mints a bearer token for the given seeded user and returns an
// SDK client acting as them.
func clientFor(t *testing.T, baseURL string, signer *jwtx.Signer, u seedUser) *teamsdk.Client {
	t.Helper()

	claims := jwtx.NewAccessClaims(
		u.ID, u.Email, u.Name,
		testIssuer,
		[]string{"huddle-teams"},
		jwtx.DefaultAccessTokenTTL,
		time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	return teamsdk.NewClient(baseURL, token)
}

// requireAPIError asserts err is an API error with the given status and code.
func requireAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()
	require.Error(t, err)

	var apiErr *teamsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got: %v", err)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

// findMemberByUserID searches a roster for the membership of a user.
func findMemberByUserID(t *testing.T, members []teamsdk.Member, userID string) teamsdk.Member {
	t.Helper()
	for _, m := range members {
		if m.UserID == userID {
			return m
		}
	}
	t.Fatalf("user %s not found in roster", userID)
	return teamsdk.Member{}
}

// findInvitationByEmail searches a team's invitation list by invitee email.
func findInvitationByEmail(t *testing.T, invs []teamsdk.Invitation, email string) teamsdk.Invitation {
	t.Helper()
	for _, inv := range invs {
		if inv.Email == email {
			return inv
		}
	}
	t.Fatalf("invitation for %s not found", email)
	return teamsdk.Invitation{}
}
