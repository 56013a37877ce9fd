package domain

import "time"

// Team has exactly one owner, fixed at creation. Ownership transfer is
// unsupported; deleting the team is the only owner-level structural change.
type Team struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
