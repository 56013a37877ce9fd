package sqlite

import (
	"context"
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
)

type invitationsRepo struct {
	q querier
}

const invitationColumns = `id, team_id, email, role, status, token_hash, invited_by_id, expires_at, created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var inv domain.Invitation
	err := row.Scan(
		&inv.ID,
		&inv.TeamID,
		&inv.Email,
		&inv.Role,
		&inv.Status,
		&inv.TokenHash,
		&inv.InvitedByID,
		&inv.ExpiresAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	now := time.Now().UTC()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	if inv.UpdatedAt.IsZero() {
		inv.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO team_invitations
		 (id, team_id, email, role, status, token_hash, invited_by_id, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.TeamID, inv.Email, inv.Role, inv.Status, inv.TokenHash,
		inv.InvitedByID, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM team_invitations WHERE id = ?`, id)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) ListInvitationsByTeam(ctx context.Context, teamID string) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM team_invitations
		 WHERE team_id = ?
		 ORDER BY created_at DESC, id DESC`,
		teamID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) ListPendingByEmail(ctx context.Context, email string, now time.Time) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM team_invitations
		 WHERE email = ? AND status = ? AND expires_at > ?
		 ORDER BY created_at DESC, id DESC`,
		email, domain.InvitationPending, now.UTC())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// TransitionFromPending is a compare-and-set on status. Zero rows means the
// invitation is absent or already settled, so racing transitions get exactly
// one winner.
func (r *invitationsRepo) TransitionFromPending(ctx context.Context, id string, to domain.InvitationStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE team_invitations SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		to, time.Now().UTC(), id, domain.InvitationPending)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *invitationsRepo) CancelPendingByTeam(ctx context.Context, teamID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE team_invitations SET status = ?, updated_at = ?
		 WHERE team_id = ? AND status = ?`,
		domain.InvitationCancelled, time.Now().UTC(), teamID, domain.InvitationPending)
	return err
}

func (r *invitationsRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM team_invitations
		 WHERE status = ? AND expires_at < ?`,
		domain.InvitationPending, cutoff.UTC())
	return err
}
