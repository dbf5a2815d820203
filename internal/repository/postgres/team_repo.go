package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironai/api/internal/model"
)

// TeamRepo handles team and team_season database operations.
type TeamRepo struct {
	db *sql.DB
}

// NewTeamRepo creates a TeamRepo.
func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{db: db}
}

// Upsert inserts a team or updates the existing row keyed by external ID.
func (r *TeamRepo) Upsert(ctx context.Context, t *model.Team) (*model.Team, error) {
	var out model.Team
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO teams (name, abbreviation, external_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (external_id) DO UPDATE SET
		   name = EXCLUDED.name, abbreviation = EXCLUDED.abbreviation
		 RETURNING id, name, abbreviation, external_id, created_at`,
		t.Name, t.Abbreviation, t.ExternalID,
	).Scan(&out.ID, &out.Name, &out.Abbreviation, &out.ExternalID, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert team: %w", err)
	}
	return &out, nil
}

// FindByID returns a team by database ID, or nil if not found.
func (r *TeamRepo) FindByID(ctx context.Context, id int64) (*model.Team, error) {
	var t model.Team
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, abbreviation, external_id, created_at FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Abbreviation, &t.ExternalID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	return &t, nil
}

// FindByExternalID returns a team by external ID, or nil if not found.
func (r *TeamRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Team, error) {
	var t model.Team
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, abbreviation, external_id, created_at FROM teams WHERE external_id = $1`, externalID,
	).Scan(&t.ID, &t.Name, &t.Abbreviation, &t.ExternalID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team by external id: %w", err)
	}
	return &t, nil
}

// List returns every team, ordered by ID.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, abbreviation, external_id, created_at FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Abbreviation, &t.ExternalID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ListRecords returns every team-season record row.
func (r *TeamRepo) ListRecords(ctx context.Context) ([]model.TeamSeason, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, team_id, season_id, wins, losses, ties FROM team_seasons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list team records: %w", err)
	}
	defer rows.Close()

	var records []model.TeamSeason
	for rows.Next() {
		var ts model.TeamSeason
		if err := rows.Scan(&ts.ID, &ts.TeamID, &ts.SeasonID, &ts.Wins, &ts.Losses, &ts.Ties); err != nil {
			return nil, fmt.Errorf("scan team record: %w", err)
		}
		records = append(records, ts)
	}
	return records, rows.Err()
}

// Record returns a team's win-loss record for a season, or nil if no
// record row exists yet.
func (r *TeamRepo) Record(ctx context.Context, teamID, seasonID int64) (*model.TeamSeason, error) {
	var ts model.TeamSeason
	err := r.db.QueryRowContext(ctx,
		`SELECT id, team_id, season_id, wins, losses, ties
		 FROM team_seasons WHERE team_id = $1 AND season_id = $2`, teamID, seasonID,
	).Scan(&ts.ID, &ts.TeamID, &ts.SeasonID, &ts.Wins, &ts.Losses, &ts.Ties)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team record: %w", err)
	}
	return &ts, nil
}

// UpsertRecord inserts or updates a team's season record.
func (r *TeamRepo) UpsertRecord(ctx context.Context, ts *model.TeamSeason) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_seasons (team_id, season_id, wins, losses, ties)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (team_id, season_id) DO UPDATE SET
		   wins = EXCLUDED.wins, losses = EXCLUDED.losses, ties = EXCLUDED.ties`,
		ts.TeamID, ts.SeasonID, ts.Wins, ts.Losses, ts.Ties)
	if err != nil {
		return fmt.Errorf("upsert team record: %w", err)
	}
	return nil
}
