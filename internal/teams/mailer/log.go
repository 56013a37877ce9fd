package mailer

import (
	"context"
	"log/slog"
)

// LogMailer records the would-be notification instead of sending it. Used
// in development and tests where no SMTP relay is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendInvitation(ctx context.Context, inv Invitation) error {
	m.Logger.Info("invitation email (not sent, no smtp configured)",
		slog.String("invitation_id", inv.Invitation.ID),
		slog.String("email", inv.Invitation.Email),
		slog.String("team", inv.Team.Name),
		slog.String("invited_by", inv.InvitedBy.Email),
	)
	return nil
}
