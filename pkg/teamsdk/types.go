package teamsdk

// ErrorResponse is the standard error envelope returned by the API.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g., "forbidden", "conflict")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Verifier string `json:"verifier"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// CreateTeamRequest creates a new team owned by the caller.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateTeamRequest updates a team's name and description.
type UpdateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Team is a team record. Role is the caller's role on the team and is only
// populated on list responses.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	OwnerID     string `json:"owner_id"`
	Role        string `json:"role,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Member is a membership row joined with its user record.
type Member struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// UpdateRoleRequest changes a member's role. Role must be "admin" or
// "member"; the owner role is not assignable.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// InviteRequest invites a user to a team by email.
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Invitation is an invitation as seen by team admins.
type Invitation struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// TeamRef is the embedded team summary on user-facing invitation lists.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef is the embedded inviter summary on user-facing invitation lists.
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserInvitation is a pending invitation addressed to the caller's email,
// enriched with the team and inviter so the client can render it directly.
type UserInvitation struct {
	ID        string  `json:"id"`
	Team      TeamRef `json:"team"`
	Role      string  `json:"role"`
	InvitedBy UserRef `json:"invited_by"`
	CreatedAt string  `json:"created_at"`
}
