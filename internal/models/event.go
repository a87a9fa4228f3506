package models

import "time"

// Event represents an audited action performed through the portal.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "news.create", "user.unblock"
	Level     string    `json:"level"` // e.g., "info", "warn", "error"
	Message   string    `json:"message"`
	ActorID   *int      `json:"actorId,omitempty"` // Nullable for system events
	CreatedAt time.Time `json:"createdAt"`
}
