package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrForbidden            = errors.New("not enough permissions")
	ErrAccountLocked        = errors.New("account locked due to too many attempts")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotBlockNotification = errors.New("notification does not reference a blocked user")
	ErrInvalidProfileID     = errors.New("invalid profile id")
)

// ValidationError collects per-field problems with submitted form data.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// recordEvent writes an audit event. Failures are logged and otherwise ignored.
func recordEvent(events EventServiceProvider, eventType, message string, actorID int) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(eventType, "info", message, &actorID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
