package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownService_FixedTarget(t *testing.T) {
	target := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	svc, err := NewCountdownService("Anniversary", target, "")
	require.NoError(t, err)

	c := svc.Current(target.Add(-(49*time.Hour + 2*time.Minute + 3*time.Second)))
	assert.Equal(t, "Anniversary", c.Title)
	assert.Equal(t, 2, c.Days)
	assert.Equal(t, 1, c.Hours)
	assert.Equal(t, 2, c.Minutes)
	assert.Equal(t, 3, c.Seconds)
	assert.False(t, c.Expired)

	past := svc.Current(target.Add(time.Second))
	assert.True(t, past.Expired)
	assert.Zero(t, past.Days+past.Hours+past.Minutes+past.Seconds)
}

func TestCountdownService_Schedule(t *testing.T) {
	svc, err := NewCountdownService("Friday", time.Time{}, "0 18 * * 5")
	require.NoError(t, err)

	// Wednesday 18:00 UTC, two days before the next Friday 18:00.
	now := time.Date(2025, 1, 8, 18, 0, 0, 0, time.UTC)
	c := svc.Current(now)
	assert.Equal(t, time.Date(2025, 1, 10, 18, 0, 0, 0, time.UTC), c.Target)
	assert.Equal(t, 2, c.Days)
	assert.Zero(t, c.Hours)
	assert.False(t, c.Expired)
}

func TestCountdownService_InvalidSchedule(t *testing.T) {
	_, err := NewCountdownService("x", time.Time{}, "whenever")
	assert.Error(t, err)
}
