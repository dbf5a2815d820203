package handler

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/gridironai/api/internal/encoding"
	"github.com/gridironai/api/internal/model"
	"github.com/gridironai/api/internal/repository"
	"github.com/gridironai/api/internal/service"
)

// IngestHandler accepts scraped data pushes from ingest jobs: teams,
// players, season rows, games, and play-by-play. Writes invalidate the
// affected cached tensors.
type IngestHandler struct {
	players repository.PlayerRepository
	teams   repository.TeamRepository
	seasons repository.SeasonRepository
	games   repository.GameRepository
	plays   repository.PlayRepository
	cache   repository.TensorCache
}

// NewIngestHandler creates an IngestHandler. cache may be nil.
func NewIngestHandler(players repository.PlayerRepository, teams repository.TeamRepository,
	seasons repository.SeasonRepository, games repository.GameRepository,
	plays repository.PlayRepository, cache repository.TensorCache) *IngestHandler {
	return &IngestHandler{players: players, teams: teams, seasons: seasons, games: games, plays: plays, cache: cache}
}

// UpsertTeam handles POST /api/v1/teams
func (h *IngestHandler) UpsertTeam(w http.ResponseWriter, r *http.Request) {
	var t model.Team
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if t.ExternalID == "" || t.Name == "" {
		writeError(w, http.StatusBadRequest, "external_id and name are required")
		return
	}

	saved, err := h.teams.Upsert(r.Context(), &t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// UpsertTeamRecord handles PUT /api/v1/teams/{id}/seasons/{year}/record
func (h *IngestHandler) UpsertTeamRecord(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid team id")
		return
	}
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid season year")
		return
	}

	var req struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Ties   int `json:"ties"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	season, err := h.seasons.Ensure(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rec := &model.TeamSeason{
		TeamID: teamID, SeasonID: season.ID,
		Wins: req.Wins, Losses: req.Losses, Ties: req.Ties,
	}
	if err := h.teams.UpsertRecord(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpsertPlayer handles POST /api/v1/players
func (h *IngestHandler) UpsertPlayer(w http.ResponseWriter, r *http.Request) {
	var p model.Player
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.ExternalID == "" || p.Name == "" {
		writeError(w, http.StatusBadRequest, "external_id and name are required")
		return
	}

	saved, err := h.players.Upsert(r.Context(), &p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// UpsertPlayerSeason handles POST /api/v1/players/{id}/seasons
func (h *IngestHandler) UpsertPlayerSeason(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req struct {
		Year            int           `json:"year"`
		TeamID          int64         `json:"team_id"`
		GamesPlayed     int           `json:"games_played"`
		GamesStarted    int           `json:"games_started"`
		IndividualStats model.StatMap `json:"individual_stats"`
		TeamStats       model.StatMap `json:"team_stats"`
		OpponentStats   model.StatMap `json:"opponent_stats"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Year == 0 || req.TeamID == 0 {
		writeError(w, http.StatusBadRequest, "year and team_id are required")
		return
	}

	p, err := h.players.FindByID(r.Context(), playerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}

	season, err := h.seasons.Ensure(r.Context(), req.Year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	ps := &model.PlayerSeason{
		PlayerID: playerID, SeasonID: season.ID, TeamID: req.TeamID,
		Year: req.Year, GamesPlayed: req.GamesPlayed, GamesStarted: req.GamesStarted,
		IndividualStats: req.IndividualStats, TeamStats: req.TeamStats, OpponentStats: req.OpponentStats,
	}
	if err := h.players.UpsertSeason(r.Context(), ps); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateRoster(r.Context(), req.TeamID, season.ID); err != nil {
			log.Warn().Err(err).Msg("roster cache invalidation failed")
		}
	}
	writeJSON(w, http.StatusOK, ps)
}

// UpsertGame handles POST /api/v1/games
func (h *IngestHandler) UpsertGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExternalID string        `json:"external_id"`
		SeasonYear int           `json:"season_year"`
		Week       int           `json:"week"`
		HomeTeamID int64         `json:"home_team_id"`
		AwayTeamID int64         `json:"away_team_id"`
		HomeScore  int           `json:"home_score"`
		AwayScore  int           `json:"away_score"`
		IsComplete bool          `json:"is_complete"`
		GameInfo   model.StatMap `json:"game_info"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExternalID == "" || req.SeasonYear == 0 || req.Week < 1 {
		writeError(w, http.StatusBadRequest, "external_id, season_year and week are required")
		return
	}
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 {
		writeError(w, http.StatusBadRequest, "home_team_id and away_team_id are required")
		return
	}

	season, err := h.seasons.Ensure(r.Context(), req.SeasonYear)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	g := &model.Game{
		ExternalID: req.ExternalID, SeasonID: season.ID, Week: req.Week,
		HomeTeamID: req.HomeTeamID, AwayTeamID: req.AwayTeamID,
		HomeScore: req.HomeScore, AwayScore: req.AwayScore,
		IsComplete: req.IsComplete, GameInfo: req.GameInfo,
	}
	saved, err := h.games.Upsert(r.Context(), g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateGame(r.Context(), saved.ID); err != nil {
			log.Warn().Err(err).Msg("game cache invalidation failed")
		}
	}
	writeJSON(w, http.StatusOK, saved)
}

// IngestPlays handles POST /api/v1/games/{id}/plays. Each play's
// situational tensor is encoded at ingest time and stored with the row.
func (h *IngestHandler) IngestPlays(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	g, err := h.games.FindByID(r.Context(), gameID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if g == nil {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}

	var plays []model.Play
	if err := decodeJSON(r, &plays); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(plays) == 0 {
		writeError(w, http.StatusBadRequest, "no plays in request")
		return
	}

	for i := range plays {
		plays[i].GameID = gameID
		if plays[i].StateTensor != nil {
			continue
		}
		vec, err := encoding.EncodePlayState(service.PlayStateRecord(plays[i]))
		if err != nil {
			log.Warn().Err(err).Int("play_number", plays[i].PlayNumber).Msg("play state encoded with defaults")
		}
		plays[i].StateTensor = vec
	}

	if err := h.plays.BulkCreate(r.Context(), plays); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"game_id": gameID, "ingested": len(plays)})
}
