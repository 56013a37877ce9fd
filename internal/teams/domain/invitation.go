package domain

import "time"

// InvitationStatus is the lifecycle state of an invitation. Only pending
// invitations transition; the other three states are terminal.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationRejected  InvitationStatus = "rejected"
	InvitationCancelled InvitationStatus = "cancelled"

	// InvitationExpired is a derived presentation status for pending
	// invitations past their expiry. It is never stored.
	InvitationExpired InvitationStatus = "expired"
)

// DefaultInvitationTTL is how long an invitation stays acceptable.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// Invitation invites an email address to a team. The email need not belong
// to a registered user at creation time; it is resolved to a user identity
// when the invitation is accepted.
type Invitation struct {
	ID          string
	TeamID      string
	Email       string
	Role        Role // admin or member, never owner
	Status      InvitationStatus
	TokenHash   string // SHA-256 fingerprint of the emailed token
	InvitedByID string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expired reports whether the invitation's acceptance window has passed.
func (i Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// EffectiveStatus returns the status as reported to clients: a pending
// invitation past its expiry reads as expired.
func (i Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && i.Expired(now) {
		return InvitationExpired
	}
	return i.Status
}
