// Package mailer delivers invitation notification emails. Delivery is
// best-effort; callers log failures and never fail the originating request.
package mailer

import (
	"context"

	"github.com/huddlehq/huddle/internal/teams/domain"
)

// Invitation carries everything a notification template needs.
type Invitation struct {
	Invitation domain.Invitation
	Team       domain.Team
	InvitedBy  domain.User

	// Token is the raw invitation token for the acceptance link. It is
	// never persisted; only its fingerprint is stored.
	Token string
}

// Mailer sends invitation notifications.
type Mailer interface {
	SendInvitation(ctx context.Context, inv Invitation) error
}
