package store

import (
	"context"
	"errors"
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement it. Sub-repositories keep concerns tidy and let services
// mock narrowly in tests.
type Store interface {
	Users() Users
	Teams() Teams
	Memberships() Memberships
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Preferred over Tx for multi-step writes that
	// must be atomic (invitation accept, team delete cascade).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by email. Emails are unique.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// MarkEmailVerified flips email_verified once and bumps updated_at.
	MarkEmailVerified(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users. Used by the seed tool.
	IsEmpty(ctx context.Context) (bool, error)
}

// TeamWithRole pairs a team with the role a particular user holds on it.
type TeamWithRole struct {
	Team domain.Team
	Role domain.Role
}

type Teams interface {
	// CreateTeam inserts a new team record.
	CreateTeam(ctx context.Context, t domain.Team) error

	// GetTeamByID returns a team by id.
	GetTeamByID(ctx context.Context, id string) (domain.Team, error)

	// ListTeamsForUser returns every team the user is a member of,
	// together with the user's role, ordered by team creation.
	ListTeamsForUser(ctx context.Context, userID string) ([]TeamWithRole, error)

	// UpdateTeam sets name and description and bumps updated_at.
	UpdateTeam(ctx context.Context, id, name, description string) (domain.Team, error)

	// DeleteTeam removes the team record only. Cascade of memberships and
	// invitations is the service's job, inside one transaction.
	DeleteTeam(ctx context.Context, id string) error
}

type Memberships interface {
	// CreateMembership inserts a membership. Violating the one-per-
	// (team, user) invariant returns ErrAlreadyExists.
	CreateMembership(ctx context.Context, m domain.Membership) error

	// GetMembershipByID returns a membership by its id.
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetMembership returns the membership for a (team, user) pair.
	GetMembership(ctx context.Context, teamID, userID string) (domain.Membership, error)

	// ListMembershipsByTeam returns a team's memberships ordered by
	// creation (owner first, since the owner row is created with the team).
	ListMembershipsByTeam(ctx context.Context, teamID string) ([]domain.Membership, error)

	// UpdateMembershipRole sets the role and bumps updated_at.
	UpdateMembershipRole(ctx context.Context, id string, role domain.Role) error

	// DeleteMembership removes one membership.
	DeleteMembership(ctx context.Context, id string) error

	// DeleteMembershipsByTeam removes all memberships for a team.
	DeleteMembershipsByTeam(ctx context.Context, teamID string) error
}

type Invitations interface {
	// CreateInvitation inserts a pending invitation. A second pending
	// invitation for the same (team, email) returns ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// ListInvitationsByTeam returns all of a team's invitations, newest
	// first.
	ListInvitationsByTeam(ctx context.Context, teamID string) ([]domain.Invitation, error)

	// ListPendingByEmail returns pending, unexpired invitations addressed
	// to the email, across all teams.
	ListPendingByEmail(ctx context.Context, email string, now time.Time) ([]domain.Invitation, error)

	// TransitionFromPending moves a pending invitation to a terminal
	// status. Returns ErrNotFound when the invitation is absent or no
	// longer pending, so concurrent transitions resolve to one winner.
	TransitionFromPending(ctx context.Context, id string, to domain.InvitationStatus) error

	// CancelPendingByTeam marks every pending invitation of a team as
	// cancelled. Part of the team delete cascade.
	CancelPendingByTeam(ctx context.Context, teamID string) error

	// DeleteExpiredBefore removes pending invitations whose expiry is
	// older than cutoff. Housekeeping; settled invitations are kept.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) error
}
