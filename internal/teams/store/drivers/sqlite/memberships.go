package sqlite

import (
	"context"
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
)

type membershipsRepo struct {
	q querier
}

const membershipColumns = `id, team_id, user_id, role, created_at, updated_at`

func scanMembership(row interface{ Scan(...any) error }) (domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(
		&m.ID,
		&m.TeamID,
		&m.UserID,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *membershipsRepo) CreateMembership(ctx context.Context, m domain.Membership) error {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO team_memberships (id, team_id, user_id, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.TeamID, m.UserID, m.Role, m.CreatedAt, m.UpdatedAt)
	return mapConstraint(err)
}

func (r *membershipsRepo) GetMembershipByID(ctx context.Context, id string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM team_memberships WHERE id = ?`, id)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) GetMembership(ctx context.Context, teamID, userID string) (domain.Membership, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+membershipColumns+` FROM team_memberships WHERE team_id = ? AND user_id = ?`,
		teamID, userID)
	m, err := scanMembership(row)
	if err != nil {
		return domain.Membership{}, mapNotFound(err)
	}
	return m, nil
}

func (r *membershipsRepo) ListMembershipsByTeam(ctx context.Context, teamID string) ([]domain.Membership, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+membershipColumns+` FROM team_memberships
		 WHERE team_id = ?
		 ORDER BY created_at, id`,
		teamID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *membershipsRepo) UpdateMembershipRole(ctx context.Context, id string, role domain.Role) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE team_memberships SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membershipsRepo) DeleteMembership(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM team_memberships WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *membershipsRepo) DeleteMembershipsByTeam(ctx context.Context, teamID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM team_memberships WHERE team_id = ?`, teamID)
	return err
}
