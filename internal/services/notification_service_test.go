package services

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/staff-portal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationBackend struct {
	mu        sync.Mutex
	read      map[string]bool
	unblocked []string
}

func (b *notificationBackend) mux() *http.ServeMux {
	blocked := 7
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Notification{
			{ID: 1, Message: "User Petr was blocked after failed logins", CreatedAt: time.Now(), Data: &models.NotificationData{BlockedUserID: &blocked}},
			{ID: 2, Message: "Welcome aboard", CreatedAt: time.Now()},
		})
	})
	mux.HandleFunc("PUT /users/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.read[r.PathValue("id")] = true
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /users/unblock/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.unblocked = append(b.unblocked, r.PathValue("id"))
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "User unblocked"})
	})
	return mux
}

func newNotifications(t *testing.T) (*NotificationService, *notificationBackend, *recordingEvents) {
	fake := &notificationBackend{read: map[string]bool{}}
	events := &recordingEvents{}
	return NewNotificationService(newTestBackend(t, fake.mux()), newTestDB(t), events), fake, events
}

func TestNotificationService_Unblock(t *testing.T) {
	svc, fake, events := newNotifications(t)
	ctx := authedContext()

	userID, err := svc.Unblock(ctx, adminUser, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
	assert.Equal(t, []string{"7"}, fake.unblocked)
	assert.True(t, fake.read["1"])
	assert.Equal(t, []string{"user.unblock"}, events.types())

	items, err := svc.List(ctx, adminUser)
	require.NoError(t, err)
	require.Len(t, items, 1, "resolved notification is hidden for the admin")
	assert.Equal(t, 2, items[0].ID)

	others, err := svc.List(ctx, regularUser)
	require.NoError(t, err)
	assert.Len(t, others, 2, "hiding is per viewer")
}

func TestNotificationService_UnblockRejections(t *testing.T) {
	svc, fake, _ := newNotifications(t)
	ctx := authedContext()

	_, err := svc.Unblock(ctx, regularUser, 1)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Unblock(ctx, adminUser, 99)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = svc.Unblock(ctx, adminUser, 2)
	assert.ErrorIs(t, err, ErrNotBlockNotification)

	assert.Empty(t, fake.unblocked)
}

func TestNotificationService_MarkRead(t *testing.T) {
	svc, fake, _ := newNotifications(t)

	require.NoError(t, svc.MarkRead(authedContext(), 2))
	assert.True(t, fake.read["2"])
}
