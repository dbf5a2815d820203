package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gridironai/api/internal/encoding"
	"github.com/gridironai/api/internal/model"
	"github.com/gridironai/api/internal/repository"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrSeasonNotFound = errors.New("season not found")
)

// TensorService assembles database rows into encoder input records and
// produces the fixed-width feature vectors the models consume. Roster and
// game vectors are cached; the cache may be nil, which disables caching.
type TensorService struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	seasons repository.SeasonRepository
	games   repository.GameRepository
	cache   repository.TensorCache
}

// NewTensorService creates a TensorService.
func NewTensorService(players repository.PlayerRepository, teams repository.TeamRepository,
	seasons repository.SeasonRepository, games repository.GameRepository,
	cache repository.TensorCache) *TensorService {
	return &TensorService{players: players, teams: teams, seasons: seasons, games: games, cache: cache}
}

// PlayerRecord builds the encoder input record for a player from their
// row and season history.
func (s *TensorService) PlayerRecord(p *model.Player, seasons []model.PlayerSeason, rosterSeason int) encoding.Record {
	rec := encoding.Record{
		"identity":      p.ExternalID,
		"name":          p.Name,
		"position":      p.Position,
		"roster_season": rosterSeason,
		"current_team":  p.CurrentTeam,
	}
	if p.DraftTeam != "" || p.DraftYear != 0 {
		rec["draft_info"] = map[string]any{
			"team": p.DraftTeam, "year": p.DraftYear, "pick": p.DraftPick,
		}
	}
	if p.BirthDate != nil && rosterSeason > 0 {
		rec["age"] = rosterSeason - p.BirthDate.Year()
	}
	if p.CombineStats != nil {
		rec["combine"] = map[string]any(p.CombineStats)
	}
	if p.CollegeStats != nil {
		rec["college"] = map[string]any(p.CollegeStats)
	}
	if p.CareerStats != nil {
		rec["nfl_career"] = map[string]any(p.CareerStats)
	}
	if splits := seasonalSplits(seasons); splits != nil {
		rec["seasonal"] = splits
	}
	return rec
}

// seasonalSplits reduces a player's season history to the four seasonal
// views the encoder consumes. Last is the most recent year; best and
// worst rank by games started; average is the mean across all seasons.
func seasonalSplits(seasons []model.PlayerSeason) map[string]any {
	if len(seasons) == 0 {
		return nil
	}
	last, best, worst := seasons[0], seasons[0], seasons[0]
	totalPlayed, totalStarted := 0, 0
	for _, ps := range seasons {
		if ps.Year > last.Year {
			last = ps
		}
		if ps.GamesStarted > best.GamesStarted {
			best = ps
		}
		if ps.GamesStarted < worst.GamesStarted {
			worst = ps
		}
		totalPlayed += ps.GamesPlayed
		totalStarted += ps.GamesStarted
	}
	n := float64(len(seasons))
	return map[string]any{
		"last":  seasonRecord(last),
		"best":  seasonRecord(best),
		"worst": seasonRecord(worst),
		"average": map[string]any{
			"games_played":  float64(totalPlayed) / n,
			"games_started": float64(totalStarted) / n,
		},
	}
}

func seasonRecord(ps model.PlayerSeason) map[string]any {
	return map[string]any{
		"team":          ps.Team,
		"games_played":  ps.GamesPlayed,
		"games_started": ps.GamesStarted,
	}
}

// PlayerTensor encodes one player's feature vector.
func (s *TensorService) PlayerTensor(ctx context.Context, playerID int64) ([]float32, error) {
	p, err := s.players.FindByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	seasons, err := s.players.ListSeasons(ctx, playerID)
	if err != nil {
		return nil, err
	}
	rosterSeason := 0
	if len(seasons) > 0 {
		rosterSeason = seasons[len(seasons)-1].Year
	}
	vec, err := encoding.EncodePlayer(s.PlayerRecord(p, seasons, rosterSeason))
	if err != nil {
		log.Warn().Err(err).Int64("player_id", playerID).Msg("player encoded with defaults")
	}
	return vec, nil
}

// RosterTensor encodes a team's roster grid for one season, serving from
// cache when possible.
func (s *TensorService) RosterTensor(ctx context.Context, teamID, seasonID int64) ([]float32, error) {
	if s.cache != nil {
		if vec, err := s.cache.GetRosterTensor(ctx, teamID, seasonID); err != nil {
			log.Warn().Err(err).Msg("roster cache read failed")
		} else if vec != nil {
			return vec, nil
		}
	}

	players, err := s.players.ListByTeamSeason(ctx, teamID, seasonID)
	if err != nil {
		return nil, err
	}
	recs := make([]encoding.Record, len(players))
	for i := range players {
		seasons, err := s.players.ListSeasons(ctx, players[i].ID)
		if err != nil {
			return nil, err
		}
		rosterSeason := 0
		if len(seasons) > 0 {
			rosterSeason = seasons[len(seasons)-1].Year
		}
		recs[i] = s.PlayerRecord(&players[i], seasons, rosterSeason)
	}
	vec := encoding.EncodeRoster(recs)

	if s.cache != nil {
		if err := s.cache.SetRosterTensor(ctx, teamID, seasonID, vec); err != nil {
			log.Warn().Err(err).Msg("roster cache write failed")
		}
	}
	return vec, nil
}

// GameTensor encodes the full game vector: both rosters plus game
// context, served from cache when possible.
func (s *TensorService) GameTensor(ctx context.Context, gameID int64) ([]float32, error) {
	if s.cache != nil {
		if vec, err := s.cache.GetGameTensor(ctx, gameID); err != nil {
			log.Warn().Err(err).Msg("game cache read failed")
		} else if vec != nil {
			return vec, nil
		}
	}

	g, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	home, err := s.RosterTensor(ctx, g.HomeTeamID, g.SeasonID)
	if err != nil {
		return nil, err
	}
	away, err := s.RosterTensor(ctx, g.AwayTeamID, g.SeasonID)
	if err != nil {
		return nil, err
	}

	ctxVec, err := encoding.EncodeContext(s.contextRecord(ctx, g))
	if err != nil {
		log.Warn().Err(err).Int64("game_id", gameID).Msg("context encoded with defaults")
	}

	vec, err := encoding.ComposeGame(home, away, ctxVec)
	if err != nil {
		return nil, fmt.Errorf("compose game %d: %w", gameID, err)
	}

	if s.cache != nil {
		if err := s.cache.SetGameTensor(ctx, gameID, vec); err != nil {
			log.Warn().Err(err).Msg("game cache write failed")
		}
	}
	return vec, nil
}

// PlayTensor encodes a game vector extended with one play's situation.
func (s *TensorService) PlayTensor(ctx context.Context, gameID int64, state encoding.Record) ([]float32, error) {
	game, err := s.GameTensor(ctx, gameID)
	if err != nil {
		return nil, err
	}
	stateVec, err := encoding.EncodePlayState(state)
	if err != nil {
		log.Warn().Err(err).Int64("game_id", gameID).Msg("play state encoded with defaults")
	}
	vec, err := encoding.ComposePlay(game, stateVec)
	if err != nil {
		return nil, fmt.Errorf("compose play for game %d: %w", gameID, err)
	}
	return vec, nil
}

// PlayStateRecord converts a stored play row into the encoder's play
// state record shape.
func PlayStateRecord(p model.Play) encoding.Record {
	return encoding.Record{
		"quarter":   p.Quarter,
		"clock":     p.Clock,
		"down":      p.Down,
		"distance":  p.Distance,
		"yard_line": p.YardLine,
	}
}

// contextRecord merges stored game info with the schedule row and both
// teams' season records.
func (s *TensorService) contextRecord(ctx context.Context, g *model.Game) encoding.Record {
	rec := encoding.Record{}
	for k, v := range g.GameInfo {
		rec[k] = v
	}
	rec["week"] = g.Week
	if g.SeasonYear != 0 {
		rec["season"] = g.SeasonYear
	}
	if home, err := s.teams.Record(ctx, g.HomeTeamID, g.SeasonID); err == nil && home != nil {
		rec["home_wins"] = home.Wins
		rec["home_losses"] = home.Losses
	}
	if away, err := s.teams.Record(ctx, g.AwayTeamID, g.SeasonID); err == nil && away != nil {
		rec["away_wins"] = away.Wins
		rec["away_losses"] = away.Losses
	}
	return rec
}
