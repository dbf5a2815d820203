package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/gridironai/api/internal/model"
	"github.com/gridironai/api/internal/predict"
	"github.com/gridironai/api/internal/repository"
)

// PredictionService runs models over encoded tensors and shapes the
// results for the API.
type PredictionService struct {
	tensors *TensorService
	model   predict.Model
	games   repository.GameRepository
	players repository.PlayerRepository
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(tensors *TensorService, m predict.Model,
	games repository.GameRepository, players repository.PlayerRepository) *PredictionService {
	return &PredictionService{tensors: tensors, model: m, games: games, players: players}
}

// PredictGame predicts the outcome of one game.
func (s *PredictionService) PredictGame(ctx context.Context, gameID int64) (*model.GamePrediction, error) {
	g, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	vec, err := s.tensors.GameTensor(ctx, gameID)
	if err != nil {
		return nil, err
	}
	out, err := s.model.PredictGame(vec)
	if err != nil {
		return nil, err
	}

	winner := g.HomeTeam
	if out.AwayScore > out.HomeScore {
		winner = g.AwayTeam
	}
	return &model.GamePrediction{
		GameID:     g.ID,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		HomeScore:  out.HomeScore,
		AwayScore:  out.AwayScore,
		Winner:     winner,
		Confidence: out.Confidence,
	}, nil
}

// PredictWeek predicts every game in one week of a season. Games whose
// prediction fails are skipped with a warning rather than failing the
// whole slate.
func (s *PredictionService) PredictWeek(ctx context.Context, seasonYear, week int) ([]model.GamePrediction, error) {
	games, err := s.games.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return nil, err
	}

	preds := make([]model.GamePrediction, 0, len(games))
	for _, g := range games {
		p, err := s.PredictGame(ctx, g.ID)
		if err != nil {
			log.Warn().Err(err).Int64("game_id", g.ID).Msg("game prediction skipped")
			continue
		}
		preds = append(preds, *p)
	}
	return preds, nil
}

// PredictPlayerStats predicts one player's stat line for a game.
func (s *PredictionService) PredictPlayerStats(ctx context.Context, playerID, gameID int64) (*model.PlayerPrediction, error) {
	p, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	vec, err := s.tensors.PlayerTensor(ctx, playerID)
	if err != nil {
		return nil, err
	}
	stats, err := s.model.PredictPlayerStats(vec, p.Position)
	if err != nil {
		return nil, err
	}
	return &model.PlayerPrediction{
		PlayerID: p.ID,
		Name:     p.Name,
		Position: p.Position,
		GameID:   gameID,
		Stats:    stats,
	}, nil
}

// leaderStat maps a position to the stat that ranks its leaders.
func leaderStat(position string) string {
	switch position {
	case "QB":
		return "passing_yards"
	case "RB":
		return "rushing_yards"
	case "WR", "TE":
		return "receiving_yards"
	case "K":
		return "field_goals"
	default:
		return "tackles"
	}
}

// PredictSeasonLeaders predicts stat lines for players at a position and
// returns the top performers by that position's headline stat.
func (s *PredictionService) PredictSeasonLeaders(ctx context.Context, position string, limit int) ([]model.PlayerPrediction, error) {
	if limit <= 0 {
		limit = 10
	}
	// Rank from a wider candidate pool than the requested cut.
	players, err := s.players.ListByPosition(ctx, position, limit*5)
	if err != nil {
		return nil, err
	}

	var preds []model.PlayerPrediction
	for _, p := range players {
		pred, err := s.PredictPlayerStats(ctx, p.ID, 0)
		if err != nil {
			log.Warn().Err(err).Int64("player_id", p.ID).Msg("leader prediction skipped")
			continue
		}
		preds = append(preds, *pred)
	}

	stat := leaderStat(position)
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Stats[stat] > preds[j].Stats[stat]
	})
	if len(preds) > limit {
		preds = preds[:limit]
	}
	return preds, nil
}
