package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_RecentFirst(t *testing.T) {
	svc := NewEventService(newTestDB(t))
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	actor := 1
	require.NoError(t, svc.CreateEvent("news.create", "info", "first", &actor))
	now = now.Add(time.Minute)
	require.NoError(t, svc.CreateEvent("system.start", "info", "second", nil))
	now = now.Add(time.Minute)
	require.NoError(t, svc.CreateEvent("user.unblock", "warn", "third", &actor))

	events, err := svc.GetRecentEvents(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Message)
	assert.Equal(t, "second", events[1].Message)
	assert.Nil(t, events[1].ActorID)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, 1, *events[0].ActorID)
	assert.NotEmpty(t, events[0].ID)
}

func TestEventService_DefaultLimit(t *testing.T) {
	svc := NewEventService(newTestDB(t))
	for i := 0; i < DefaultEventLimit+5; i++ {
		require.NoError(t, svc.CreateEvent("user.update", "info", "edit", nil))
	}

	events, err := svc.GetRecentEvents(0)
	require.NoError(t, err)
	assert.Len(t, events, DefaultEventLimit)
}
