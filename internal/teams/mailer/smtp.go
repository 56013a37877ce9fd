package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers invitation emails over plain SMTP. Auth is optional;
// leave Username empty for an unauthenticated relay (mailhog, local postfix).
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string

	// AppURL is the public base URL used to build acceptance links.
	AppURL string
}

func (m *SMTPMailer) SendInvitation(ctx context.Context, inv Invitation) error {
	link := fmt.Sprintf("%s/invitations/%s?token=%s",
		strings.TrimRight(m.AppURL, "/"), inv.Invitation.ID, inv.Token)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", inv.Invitation.Email)
	fmt.Fprintf(&b, "Subject: You have been invited to join %s\r\n", inv.Team.Name)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "%s (%s) invited you to join the team %q as %s.\r\n\r\n",
		inv.InvitedBy.Name, inv.InvitedBy.Email, inv.Team.Name, inv.Invitation.Role)
	fmt.Fprintf(&b, "Accept the invitation here: %s\r\n\r\n", link)
	fmt.Fprintf(&b, "The invitation expires at %s.\r\n",
		inv.Invitation.ExpiresAt.UTC().Format("2006-01-02 15:04 UTC"))

	var auth smtp.Auth
	if m.Username != "" {
		host := m.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}

	// net/smtp has no context support; rely on the dialer's default
	// timeouts and the caller treating delivery as best-effort.
	return smtp.SendMail(m.Addr, auth, m.From, []string{inv.Invitation.Email}, []byte(b.String()))
}
