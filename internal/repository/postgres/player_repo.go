package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironai/api/internal/model"
)

// PlayerRepo handles player and player_season database operations.
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo creates a PlayerRepo.
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

const playerColumns = `id, external_id, name, position, draft_team, draft_year, draft_pick,
	birth_date, college, current_team, combine_stats, college_stats, career_stats,
	created_at, updated_at`

// Upsert inserts a player or updates the existing row keyed by external ID.
func (r *PlayerRepo) Upsert(ctx context.Context, p *model.Player) (*model.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO players (external_id, name, position, draft_team, draft_year, draft_pick,
		                      birth_date, college, current_team, combine_stats, college_stats, career_stats)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (external_id) DO UPDATE SET
		   name = EXCLUDED.name, position = EXCLUDED.position,
		   draft_team = EXCLUDED.draft_team, draft_year = EXCLUDED.draft_year,
		   draft_pick = EXCLUDED.draft_pick, birth_date = EXCLUDED.birth_date,
		   college = EXCLUDED.college, current_team = EXCLUDED.current_team,
		   combine_stats = EXCLUDED.combine_stats, college_stats = EXCLUDED.college_stats,
		   career_stats = EXCLUDED.career_stats, updated_at = now()
		 RETURNING `+playerColumns,
		p.ExternalID, p.Name, p.Position, p.DraftTeam, p.DraftYear, p.DraftPick,
		p.BirthDate, p.College, p.CurrentTeam, p.CombineStats, p.CollegeStats, p.CareerStats,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return nil, fmt.Errorf("upsert player: %w", err)
	}
	return out, nil
}

// FindByID returns a player by database ID, or nil if not found.
func (r *PlayerRepo) FindByID(ctx context.Context, id int64) (*model.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find player: %w", err)
	}
	return p, nil
}

// FindByExternalID returns a player by external ID, or nil if not found.
func (r *PlayerRepo) FindByExternalID(ctx context.Context, externalID string) (*model.Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE external_id = $1`, externalID)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find player by external id: %w", err)
	}
	return p, nil
}

// ListByTeamSeason returns the players rostered for a team-season, in
// roster insertion order. That order is what roster encoding preserves.
func (r *PlayerRepo) ListByTeamSeason(ctx context.Context, teamID, seasonID int64) ([]model.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.external_id, p.name, p.position, p.draft_team, p.draft_year, p.draft_pick,
		        p.birth_date, p.college, p.current_team, p.combine_stats, p.college_stats, p.career_stats,
		        p.created_at, p.updated_at
		 FROM players p
		 JOIN player_seasons ps ON ps.player_id = p.id
		 WHERE ps.team_id = $1 AND ps.season_id = $2
		 ORDER BY ps.id`, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// ListByPosition returns players at a position, ordered by name for
// stable results.
func (r *PlayerRepo) ListByPosition(ctx context.Context, position string, limit int) ([]model.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE position = $1 ORDER BY name LIMIT $2`,
		position, limit)
	if err != nil {
		return nil, fmt.Errorf("list players by position: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// List returns every player, ordered by ID.
func (r *PlayerRepo) List(ctx context.Context) ([]model.Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// ListSeasons returns a player's seasons, oldest first, with the season
// year and team abbreviation joined in.
func (r *PlayerRepo) ListSeasons(ctx context.Context, playerID int64) ([]model.PlayerSeason, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ps.id, ps.player_id, ps.season_id, ps.team_id, t.abbreviation, s.year,
		        ps.games_played, ps.games_started,
		        ps.individual_stats, ps.team_stats, ps.opponent_stats
		 FROM player_seasons ps
		 JOIN seasons s ON s.id = ps.season_id
		 JOIN teams t ON t.id = ps.team_id
		 WHERE ps.player_id = $1
		 ORDER BY s.year`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.PlayerSeason
	for rows.Next() {
		var ps model.PlayerSeason
		if err := rows.Scan(&ps.ID, &ps.PlayerID, &ps.SeasonID, &ps.TeamID, &ps.Team, &ps.Year,
			&ps.GamesPlayed, &ps.GamesStarted,
			&ps.IndividualStats, &ps.TeamStats, &ps.OpponentStats); err != nil {
			return nil, fmt.Errorf("scan player season: %w", err)
		}
		seasons = append(seasons, ps)
	}
	return seasons, rows.Err()
}

// UpsertSeason inserts or updates a player's team-season membership.
func (r *PlayerRepo) UpsertSeason(ctx context.Context, ps *model.PlayerSeason) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO player_seasons (player_id, season_id, team_id, games_played, games_started,
		                             individual_stats, team_stats, opponent_stats)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (player_id, season_id, team_id) DO UPDATE SET
		   games_played = EXCLUDED.games_played, games_started = EXCLUDED.games_started,
		   individual_stats = EXCLUDED.individual_stats, team_stats = EXCLUDED.team_stats,
		   opponent_stats = EXCLUDED.opponent_stats`,
		ps.PlayerID, ps.SeasonID, ps.TeamID, ps.GamesPlayed, ps.GamesStarted,
		ps.IndividualStats, ps.TeamStats, ps.OpponentStats)
	if err != nil {
		return fmt.Errorf("upsert player season: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(s scanner) (*model.Player, error) {
	var p model.Player
	var birthDate sql.NullTime
	err := s.Scan(&p.ID, &p.ExternalID, &p.Name, &p.Position, &p.DraftTeam, &p.DraftYear, &p.DraftPick,
		&birthDate, &p.College, &p.CurrentTeam, &p.CombineStats, &p.CollegeStats, &p.CareerStats,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	return &p, nil
}
