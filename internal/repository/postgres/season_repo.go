package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironai/api/internal/model"
)

// SeasonRepo handles season database operations.
type SeasonRepo struct {
	db *sql.DB
}

// NewSeasonRepo creates a SeasonRepo.
func NewSeasonRepo(db *sql.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

// Ensure returns the season for a year, creating it if absent.
func (r *SeasonRepo) Ensure(ctx context.Context, year int) (*model.Season, error) {
	var s model.Season
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO seasons (year) VALUES ($1)
		 ON CONFLICT (year) DO UPDATE SET year = EXCLUDED.year
		 RETURNING id, year, is_complete`, year,
	).Scan(&s.ID, &s.Year, &s.IsComplete)
	if err != nil {
		return nil, fmt.Errorf("ensure season: %w", err)
	}
	return &s, nil
}

// SetComplete flags a season as finished.
func (r *SeasonRepo) SetComplete(ctx context.Context, year int, complete bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE seasons SET is_complete = $2 WHERE year = $1`, year, complete)
	if err != nil {
		return fmt.Errorf("set season complete: %w", err)
	}
	return nil
}

// List returns every season, oldest first.
func (r *SeasonRepo) List(ctx context.Context) ([]model.Season, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, year, is_complete FROM seasons ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []model.Season
	for rows.Next() {
		var s model.Season
		if err := rows.Scan(&s.ID, &s.Year, &s.IsComplete); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// FindByYear returns the season for a year, or nil if not found.
func (r *SeasonRepo) FindByYear(ctx context.Context, year int) (*model.Season, error) {
	var s model.Season
	err := r.db.QueryRowContext(ctx,
		`SELECT id, year, is_complete FROM seasons WHERE year = $1`, year,
	).Scan(&s.ID, &s.Year, &s.IsComplete)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find season: %w", err)
	}
	return &s, nil
}
