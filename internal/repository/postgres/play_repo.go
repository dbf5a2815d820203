package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/gridironai/api/internal/model"
)

// PlayRepo handles play-by-play database operations. Play inserts arrive
// in bulk per game, so writes go through COPY rather than row-at-a-time
// INSERTs.
type PlayRepo struct {
	db *sql.DB
}

// NewPlayRepo creates a PlayRepo.
func NewPlayRepo(db *sql.DB) *PlayRepo {
	return &PlayRepo{db: db}
}

// BulkCreate inserts plays in one COPY transaction.
func (r *PlayRepo) BulkCreate(ctx context.Context, plays []model.Play) error {
	if len(plays) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("plays",
		"game_id", "play_number", "quarter", "clock", "down", "distance", "yard_line",
		"play_type", "yards_gained", "touchdown", "field_goal", "safety", "state_tensor"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}

	for _, p := range plays {
		tensor, err := p.StateTensor.Value()
		if err != nil {
			return fmt.Errorf("marshal state tensor: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, p.GameID, p.PlayNumber, p.Quarter, p.Clock,
			p.Down, p.Distance, p.YardLine, p.PlayType, p.YardsGained,
			p.Touchdown, p.FieldGoal, p.Safety, tensor); err != nil {
			return fmt.Errorf("copy play: %w", err)
		}
	}
	// Flush the COPY buffer.
	if _, err := stmt.ExecContext(ctx); err != nil {
		return fmt.Errorf("flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	return tx.Commit()
}

// ListByGame returns a game's plays in play-number order.
func (r *PlayRepo) ListByGame(ctx context.Context, gameID int64) ([]model.Play, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, play_number, quarter, clock, down, distance, yard_line,
		        play_type, yards_gained, touchdown, field_goal, safety, state_tensor
		 FROM plays WHERE game_id = $1 ORDER BY play_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list plays: %w", err)
	}
	defer rows.Close()

	var plays []model.Play
	for rows.Next() {
		var p model.Play
		if err := rows.Scan(&p.ID, &p.GameID, &p.PlayNumber, &p.Quarter, &p.Clock,
			&p.Down, &p.Distance, &p.YardLine, &p.PlayType, &p.YardsGained,
			&p.Touchdown, &p.FieldGoal, &p.Safety, &p.StateTensor); err != nil {
			return nil, fmt.Errorf("scan play: %w", err)
		}
		plays = append(plays, p)
	}
	return plays, rows.Err()
}
