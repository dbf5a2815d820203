package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gridironai/api/internal/repository"
	"github.com/gridironai/api/internal/service"
)

// PlayerHandler handles player lookup and tensor endpoints.
type PlayerHandler struct {
	players repository.PlayerRepository
	tensors *service.TensorService
}

// NewPlayerHandler creates a PlayerHandler.
func NewPlayerHandler(players repository.PlayerRepository, tensors *service.TensorService) *PlayerHandler {
	return &PlayerHandler{players: players, tensors: tensors}
}

// GetPlayer handles GET /api/v1/players/{id}
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
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
	writeJSON(w, http.StatusOK, p)
}

// GetPlayerSeasons handles GET /api/v1/players/{id}/seasons
func (h *PlayerHandler) GetPlayerSeasons(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
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

	seasons, err := h.players.ListSeasons(r.Context(), playerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if seasons == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

// GetPlayerTensor handles GET /api/v1/players/{id}/tensor
func (h *PlayerHandler) GetPlayerTensor(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	vec, err := h.tensors.PlayerTensor(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": playerID,
		"features":  len(vec),
		"tensor":    vec,
	})
}
