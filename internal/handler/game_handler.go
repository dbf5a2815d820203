package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gridironai/api/internal/repository"
	"github.com/gridironai/api/internal/service"
)

// GameHandler handles game lookup and tensor endpoints.
type GameHandler struct {
	games   repository.GameRepository
	plays   repository.PlayRepository
	tensors *service.TensorService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(games repository.GameRepository, plays repository.PlayRepository, tensors *service.TensorService) *GameHandler {
	return &GameHandler{games: games, plays: plays, tensors: tensors}
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, g)
}

// ListWeekGames handles GET /api/v1/seasons/{year}/weeks/{week}/games
func (h *GameHandler) ListWeekGames(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid season year")
		return
	}
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}

	games, err := h.games.ListByWeek(r.Context(), year, week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if games == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// ListPlays handles GET /api/v1/games/{id}/plays
func (h *GameHandler) ListPlays(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	plays, err := h.plays.ListByGame(r.Context(), gameID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if plays == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, plays)
}

// GetGameTensor handles GET /api/v1/games/{id}/tensor
func (h *GameHandler) GetGameTensor(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	vec, err := h.tensors.GameTensor(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id":  gameID,
		"features": len(vec),
		"tensor":   vec,
	})
}
