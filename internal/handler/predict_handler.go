package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gridironai/api/internal/service"
)

// PredictHandler handles prediction endpoints.
type PredictHandler struct {
	predictions *service.PredictionService
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(predictions *service.PredictionService) *PredictHandler {
	return &PredictHandler{predictions: predictions}
}

// PredictGame handles GET /api/v1/predict/games/{id}
func (h *PredictHandler) PredictGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	pred, err := h.predictions.PredictGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// PredictWeek handles GET /api/v1/predict/seasons/{year}/weeks/{week}
func (h *PredictHandler) PredictWeek(w http.ResponseWriter, r *http.Request) {
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

	preds, err := h.predictions.PredictWeek(r.Context(), year, week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if preds == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, preds)
}

// PredictPlayer handles GET /api/v1/predict/players/{id}
func (h *PredictHandler) PredictPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}
	var gameID int64
	if raw := r.URL.Query().Get("game_id"); raw != "" {
		gameID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid game_id")
			return
		}
	}

	pred, err := h.predictions.PredictPlayerStats(r.Context(), playerID, gameID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// PredictLeaders handles GET /api/v1/predict/leaders/{position}
func (h *PredictHandler) PredictLeaders(w http.ResponseWriter, r *http.Request) {
	position := r.PathValue("position")
	if position == "" {
		writeError(w, http.StatusBadRequest, "position is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	leaders, err := h.predictions.PredictSeasonLeaders(r.Context(), position, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if leaders == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, leaders)
}
