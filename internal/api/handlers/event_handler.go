package handlers

import (
	"net/http"
	"strconv"

	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
)

// EventHandler serves the admin activity log.
type EventHandler struct {
	*Responder
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(rs *Responder, service services.EventServiceProvider) *EventHandler {
	return &EventHandler{Responder: rs, service: service}
}

type activityPage struct {
	Events []models.Event
}

// GetRecent shows the most recent audit events.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = services.DefaultEventLimit
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		h.serverError(w, r, err, "Failed to retrieve events")
		return
	}
	h.render(w, r, http.StatusOK, "activity", "Activity", views.Page{Data: activityPage{Events: events}})
}
