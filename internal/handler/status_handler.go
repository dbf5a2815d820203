package handler

import (
	"net/http"
)

// StatusHandler reports service health and which model is serving
// predictions.
type StatusHandler struct {
	modelName string
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(modelName string) *StatusHandler {
	return &StatusHandler{modelName: modelName}
}

// Status handles GET /api/v1/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.modelName,
	})
}
