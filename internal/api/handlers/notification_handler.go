package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/staff-portal/internal/api/views"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/isdelr/staff-portal/internal/services"
	"github.com/rs/zerolog/log"
)

// NotificationHandler serves the notification list and its actions.
type NotificationHandler struct {
	*Responder
	service services.NotificationServiceProvider
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(rs *Responder, service services.NotificationServiceProvider) *NotificationHandler {
	return &NotificationHandler{Responder: rs, service: service}
}

type notificationsPage struct {
	Items   []models.Notification
	IsAdmin bool
}

var notificationErrors = map[string]string{
	"read":    "Failed to mark notification as read",
	"unblock": "Failed to unblock user",
}

// List shows the viewer's notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := viewer(r)
	page := views.Page{Error: notificationErrors[r.URL.Query().Get("error")]}
	if r.URL.Query().Get("notice") == "unblocked" {
		page.Notice = "User unblocked successfully"
	}

	items, err := h.service.List(r.Context(), user)
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		log.Error().Err(err).Int("user_id", user.ID).Msg("Failed to load notifications")
		page.Error = "Failed to load notifications"
	}
	page.Data = notificationsPage{Items: items, IsAdmin: user.IsAdmin()}
	h.render(w, r, http.StatusOK, "notifications", "Notifications", page)
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Notification not found")
		return
	}
	if err := h.service.MarkRead(r.Context(), id); err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		log.Error().Err(err).Int("notification_id", id).Msg("Failed to mark notification as read")
		http.Redirect(w, r, "/notifications?error=read", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/notifications", http.StatusSeeOther)
}

// Unblock reactivates the account a notification reports as blocked. Admin only.
func (h *NotificationHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r, "Notification not found")
		return
	}

	userID, err := h.service.Unblock(r.Context(), viewer(r), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrForbidden):
			h.forbidden(w, r, "Only administrators can unblock users")
		case errors.Is(err, services.ErrNotificationNotFound):
			h.notFound(w, r, "Notification not found")
		case h.sessionExpired(w, r, err):
		default:
			log.Error().Err(err).Int("notification_id", id).Msg("Failed to unblock user")
			http.Redirect(w, r, "/notifications?error=unblock", http.StatusSeeOther)
		}
		return
	}

	log.Info().Int("user_id", userID).Int("notification_id", id).Msg("User unblocked")
	http.Redirect(w, r, "/notifications?notice=unblocked", http.StatusSeeOther)
}
