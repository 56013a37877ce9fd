package teamsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a thin client for the huddle team-management API. A Client is
// bound to a single bearer token; create one per acting user.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: ErrorCodeServerError}
		var envelope ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			apiErr.Code = envelope.Error
			apiErr.Description = envelope.ErrorDescription
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// ListTeams returns the caller's teams with their role on each.
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := c.do(ctx, http.MethodGet, "/api/teams", nil, &teams)
	return teams, err
}

// CreateTeam creates a team owned by the caller.
func (c *Client) CreateTeam(ctx context.Context, req CreateTeamRequest) (Team, error) {
	var team Team
	err := c.do(ctx, http.MethodPost, "/api/teams", req, &team)
	return team, err
}

// GetTeam returns a single team the caller is a member of.
func (c *Client) GetTeam(ctx context.Context, teamID string) (Team, error) {
	var team Team
	err := c.do(ctx, http.MethodGet, "/api/teams/"+teamID, nil, &team)
	return team, err
}

// UpdateTeam updates a team's name and description.
func (c *Client) UpdateTeam(ctx context.Context, teamID string, req UpdateTeamRequest) (Team, error) {
	var team Team
	err := c.do(ctx, http.MethodPut, "/api/teams/"+teamID, req, &team)
	return team, err
}

// DeleteTeam deletes a team and everything attached to it.
func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	return c.do(ctx, http.MethodDelete, "/api/teams/"+teamID, nil, nil)
}

// ListMembers lists the team's memberships.
func (c *Client) ListMembers(ctx context.Context, teamID string) ([]Member, error) {
	var members []Member
	err := c.do(ctx, http.MethodGet, "/api/teams/"+teamID+"/members", nil, &members)
	return members, err
}

// UpdateMemberRole changes a member's role.
func (c *Client) UpdateMemberRole(ctx context.Context, teamID, memberID, role string) (Member, error) {
	var member Member
	err := c.do(ctx, http.MethodPut,
		"/api/teams/"+teamID+"/members/"+memberID+"/role",
		UpdateRoleRequest{Role: role}, &member)
	return member, err
}

// RemoveMember removes a member from a team.
func (c *Client) RemoveMember(ctx context.Context, teamID, memberID string) error {
	return c.do(ctx, http.MethodDelete, "/api/teams/"+teamID+"/members/"+memberID, nil, nil)
}

// Invite invites a user to a team by email.
func (c *Client) Invite(ctx context.Context, teamID string, req InviteRequest) (Invitation, error) {
	var inv Invitation
	err := c.do(ctx, http.MethodPost, "/api/teams/"+teamID+"/invite", req, &inv)
	return inv, err
}

// ListTeamInvitations lists a team's invitations with their status.
func (c *Client) ListTeamInvitations(ctx context.Context, teamID string) ([]Invitation, error) {
	var invs []Invitation
	err := c.do(ctx, http.MethodGet, "/api/teams/"+teamID+"/invitations", nil, &invs)
	return invs, err
}

// ListMyInvitations lists pending invitations addressed to the caller.
func (c *Client) ListMyInvitations(ctx context.Context) ([]UserInvitation, error) {
	var invs []UserInvitation
	err := c.do(ctx, http.MethodGet, "/api/teams/invitations", nil, &invs)
	return invs, err
}

// AcceptInvitation accepts a pending invitation addressed to the caller.
func (c *Client) AcceptInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodPost, "/api/teams/invitations/"+invitationID+"/accept", nil, nil)
}

// RejectInvitation rejects a pending invitation addressed to the caller.
func (c *Client) RejectInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodPost, "/api/teams/invitations/"+invitationID+"/reject", nil, nil)
}

// CancelInvitation cancels a pending invitation; caller must hold admin or
// owner on the invitation's team.
func (c *Client) CancelInvitation(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodPost, "/api/teams/invitations/"+invitationID+"/cancel", nil, nil)
}

// Livez calls the liveness probe.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &health)
	return health, err
}

// Readyz calls the readiness probe.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var health HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &health)
	return health, err
}
