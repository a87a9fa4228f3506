package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/staff-portal/internal/models"
)

// DefaultEventLimit is used when the caller does not ask for a specific number of events.
const DefaultEventLimit = 20

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, actorID *int) error
	GetRecentEvents(limit int) ([]models.Event, error)
}

// EventService keeps the audit trail of admin actions taken through the portal.
type EventService struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db, now: time.Now}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string, actorID *int) error {
	event := models.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Level:     level,
		Message:   message,
		ActorID:   actorID,
		CreatedAt: s.now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, actor_id, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.ActorID, event.CreatedAt)
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	rows, err := s.db.Query("SELECT id, type, level, message, actor_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var actorID sql.NullInt64
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &actorID, &event.CreatedAt); err != nil {
			return nil, err
		}
		if actorID.Valid {
			id := int(actorID.Int64)
			event.ActorID = &id
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
