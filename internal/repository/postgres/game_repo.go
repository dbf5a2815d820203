package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironai/api/internal/model"
)

// GameRepo handles game database operations.
type GameRepo struct {
	db *sql.DB
}

// NewGameRepo creates a GameRepo.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Upsert inserts a game or updates the existing row keyed by external ID.
func (r *GameRepo) Upsert(ctx context.Context, g *model.Game) (*model.Game, error) {
	var out model.Game
	var gameDate sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO games (season_id, week, game_date, home_team_id, away_team_id,
		                    home_score, away_score, is_complete, external_id, game_info)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (external_id) DO UPDATE SET
		   season_id = EXCLUDED.season_id, week = EXCLUDED.week, game_date = EXCLUDED.game_date,
		   home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id,
		   home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score,
		   is_complete = EXCLUDED.is_complete, game_info = EXCLUDED.game_info
		 RETURNING id, season_id, week, game_date, home_team_id, away_team_id,
		           home_score, away_score, is_complete, external_id, game_info`,
		g.SeasonID, g.Week, g.GameDate, g.HomeTeamID, g.AwayTeamID,
		g.HomeScore, g.AwayScore, g.IsComplete, g.ExternalID, g.GameInfo,
	).Scan(&out.ID, &out.SeasonID, &out.Week, &gameDate, &out.HomeTeamID, &out.AwayTeamID,
		&out.HomeScore, &out.AwayScore, &out.IsComplete, &out.ExternalID, &out.GameInfo)
	if err != nil {
		return nil, fmt.Errorf("upsert game: %w", err)
	}
	if gameDate.Valid {
		out.GameDate = &gameDate.Time
	}
	return &out, nil
}

// FindByID returns a game by ID with team names and season year joined
// in, or nil if not found.
func (r *GameRepo) FindByID(ctx context.Context, id int64) (*model.Game, error) {
	var g model.Game
	var gameDate sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT g.id, g.season_id, s.year, g.week, g.game_date, g.home_team_id, g.away_team_id,
		        ht.abbreviation, at.abbreviation,
		        g.home_score, g.away_score, g.is_complete, g.external_id, g.game_info
		 FROM games g
		 JOIN seasons s ON s.id = g.season_id
		 JOIN teams ht ON ht.id = g.home_team_id
		 JOIN teams at ON at.id = g.away_team_id
		 WHERE g.id = $1`, id,
	).Scan(&g.ID, &g.SeasonID, &g.SeasonYear, &g.Week, &gameDate, &g.HomeTeamID, &g.AwayTeamID,
		&g.HomeTeam, &g.AwayTeam,
		&g.HomeScore, &g.AwayScore, &g.IsComplete, &g.ExternalID, &g.GameInfo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	if gameDate.Valid {
		g.GameDate = &gameDate.Time
	}
	return &g, nil
}

// List returns every game with team names and season year joined in,
// ordered by ID.
func (r *GameRepo) List(ctx context.Context) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.season_id, s.year, g.week, g.game_date, g.home_team_id, g.away_team_id,
		        ht.abbreviation, at.abbreviation,
		        g.home_score, g.away_score, g.is_complete, g.external_id, g.game_info
		 FROM games g
		 JOIN seasons s ON s.id = g.season_id
		 JOIN teams ht ON ht.id = g.home_team_id
		 JOIN teams at ON at.id = g.away_team_id
		 ORDER BY g.id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		var gameDate sql.NullTime
		if err := rows.Scan(&g.ID, &g.SeasonID, &g.SeasonYear, &g.Week, &gameDate, &g.HomeTeamID, &g.AwayTeamID,
			&g.HomeTeam, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.IsComplete, &g.ExternalID, &g.GameInfo); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if gameDate.Valid {
			g.GameDate = &gameDate.Time
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListByWeek returns all games for one week of a season, in kickoff
// order.
func (r *GameRepo) ListByWeek(ctx context.Context, seasonYear, week int) ([]model.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.season_id, s.year, g.week, g.game_date, g.home_team_id, g.away_team_id,
		        ht.abbreviation, at.abbreviation,
		        g.home_score, g.away_score, g.is_complete, g.external_id, g.game_info
		 FROM games g
		 JOIN seasons s ON s.id = g.season_id
		 JOIN teams ht ON ht.id = g.home_team_id
		 JOIN teams at ON at.id = g.away_team_id
		 WHERE s.year = $1 AND g.week = $2
		 ORDER BY g.game_date, g.id`, seasonYear, week)
	if err != nil {
		return nil, fmt.Errorf("list games by week: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		var gameDate sql.NullTime
		if err := rows.Scan(&g.ID, &g.SeasonID, &g.SeasonYear, &g.Week, &gameDate, &g.HomeTeamID, &g.AwayTeamID,
			&g.HomeTeam, &g.AwayTeam,
			&g.HomeScore, &g.AwayScore, &g.IsComplete, &g.ExternalID, &g.GameInfo); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		if gameDate.Valid {
			g.GameDate = &gameDate.Time
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
