package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/isdelr/staff-portal/internal/services"
	ws "github.com/isdelr/staff-portal/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades connections and subscribes them to the countdown topic.
type WebSocketHandler struct {
	hub       *ws.Hub
	countdown services.CountdownServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, countdown services.CountdownServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, countdown: countdown}
}

// The zero CheckOrigin only accepts same-host origins, which the session cookie requires anyway.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Countdown streams countdown updates. The current value is sent right away so the page does
// not wait for the next tick.
func (h *WebSocketHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, ws.TopicCountdown)
	if msg := ws.NewMessage("countdown", h.countdown.Current(time.Now())); msg != nil {
		client.Send <- msg
	}
	if !h.hub.Add(client) {
		log.Debug().Str("client_id", client.ID).Msg("Hub stopped, closing websocket connection")
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
