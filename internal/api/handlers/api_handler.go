package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// APIHandler serves the small JSON surface: health and countdown.
type APIHandler struct {
	db        *sql.DB
	countdown services.CountdownServiceProvider
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(db *sql.DB, countdown services.CountdownServiceProvider) *APIHandler {
	return &APIHandler{db: db, countdown: countdown}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Health reports whether the local database answers.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Countdown returns the current countdown as JSON.
func (h *APIHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.countdown.Current(time.Now()))
}
