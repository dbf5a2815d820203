// Package repository defines the data-access interfaces consumed by the
// service layer. Implementations live in the postgres and redis
// subpackages; tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/gridironai/api/internal/model"
)

// PlayerRepository defines player data operations.
type PlayerRepository interface {
	Upsert(ctx context.Context, p *model.Player) (*model.Player, error)
	FindByID(ctx context.Context, id int64) (*model.Player, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.Player, error)
	ListByTeamSeason(ctx context.Context, teamID, seasonID int64) ([]model.Player, error)
	ListByPosition(ctx context.Context, position string, limit int) ([]model.Player, error)
	ListSeasons(ctx context.Context, playerID int64) ([]model.PlayerSeason, error)
	UpsertSeason(ctx context.Context, ps *model.PlayerSeason) error
}

// TeamRepository defines team and team-season data operations.
type TeamRepository interface {
	Upsert(ctx context.Context, t *model.Team) (*model.Team, error)
	FindByID(ctx context.Context, id int64) (*model.Team, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.Team, error)
	Record(ctx context.Context, teamID, seasonID int64) (*model.TeamSeason, error)
	UpsertRecord(ctx context.Context, ts *model.TeamSeason) error
}

// SeasonRepository defines season data operations.
type SeasonRepository interface {
	Ensure(ctx context.Context, year int) (*model.Season, error)
	FindByYear(ctx context.Context, year int) (*model.Season, error)
}

// GameRepository defines game data operations.
type GameRepository interface {
	Upsert(ctx context.Context, g *model.Game) (*model.Game, error)
	FindByID(ctx context.Context, id int64) (*model.Game, error)
	ListByWeek(ctx context.Context, seasonYear, week int) ([]model.Game, error)
}

// PlayRepository defines play data operations.
type PlayRepository interface {
	BulkCreate(ctx context.Context, plays []model.Play) error
	ListByGame(ctx context.Context, gameID int64) ([]model.Play, error)
}

// TensorCache caches encoded feature vectors between requests.
type TensorCache interface {
	GetRosterTensor(ctx context.Context, teamID, seasonID int64) ([]float32, error)
	SetRosterTensor(ctx context.Context, teamID, seasonID int64, vec []float32) error
	GetGameTensor(ctx context.Context, gameID int64) ([]float32, error)
	SetGameTensor(ctx context.Context, gameID int64, vec []float32) error
	InvalidateRoster(ctx context.Context, teamID, seasonID int64) error
	InvalidateGame(ctx context.Context, gameID int64) error
}
