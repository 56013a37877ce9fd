package sqlite

import (
	"context"
	"time"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/store"
)

type teamsRepo struct {
	q querier
}

const teamColumns = `id, name, description, owner_id, created_at, updated_at`

func scanTeam(row interface{ Scan(...any) error }) (domain.Team, error) {
	var t domain.Team
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *teamsRepo) CreateTeam(ctx context.Context, t domain.Team) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO teams (id, name, description, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.OwnerID, t.CreatedAt, t.UpdatedAt)
	return mapConstraint(err)
}

func (r *teamsRepo) GetTeamByID(ctx context.Context, id string) (domain.Team, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = ?`, id)
	t, err := scanTeam(row)
	if err != nil {
		return domain.Team{}, mapNotFound(err)
	}
	return t, nil
}

func (r *teamsRepo) ListTeamsForUser(ctx context.Context, userID string) ([]store.TeamWithRole, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.owner_id, t.created_at, t.updated_at, m.role
		 FROM teams t
		 JOIN team_memberships m ON m.team_id = t.id
		 WHERE m.user_id = ?
		 ORDER BY t.created_at, t.id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []store.TeamWithRole
	for rows.Next() {
		var tr store.TeamWithRole
		if err := rows.Scan(
			&tr.Team.ID,
			&tr.Team.Name,
			&tr.Team.Description,
			&tr.Team.OwnerID,
			&tr.Team.CreatedAt,
			&tr.Team.UpdatedAt,
			&tr.Role,
		); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (r *teamsRepo) UpdateTeam(ctx context.Context, id, name, description string) (domain.Team, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, time.Now().UTC(), id)
	if err != nil {
		return domain.Team{}, err
	}
	if err := requireRow(res); err != nil {
		return domain.Team{}, err
	}
	return r.GetTeamByID(ctx, id)
}

func (r *teamsRepo) DeleteTeam(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
