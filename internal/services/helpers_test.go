package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/isdelr/staff-portal/internal/backend"
	"github.com/isdelr/staff-portal/internal/database"
	"github.com/isdelr/staff-portal/internal/models"
	"github.com/stretchr/testify/require"
)

var (
	adminUser   = models.User{ID: 1, FullName: "Olga Admin", Role: models.RoleAdmin}
	regularUser = models.User{ID: 2, FullName: "Ivan User", Role: models.RoleUser}
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestBackend serves mux as the staff backend.
func newTestBackend(t *testing.T, mux *http.ServeMux) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client, err := backend.New(backend.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func authedContext() context.Context {
	return backend.ContextWithToken(context.Background(), "test-token")
}

// recordingEvents keeps audit events in memory.
type recordingEvents struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *recordingEvents) CreateEvent(eventType, level, message string, actorID *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, models.Event{Type: eventType, Level: level, Message: message, ActorID: actorID})
	return nil
}

func (r *recordingEvents) GetRecentEvents(limit int) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Event(nil), r.events...), nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
