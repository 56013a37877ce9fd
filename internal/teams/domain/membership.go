package domain

import "time"

// Membership links a user to a team with a role. One membership per
// (team, user) pair; every team has exactly one owner membership matching
// Team.OwnerID.
type Membership struct {
	ID        string
	TeamID    string
	UserID    string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
