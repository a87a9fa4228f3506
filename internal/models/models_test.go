package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRole("root")
	assert.Error(t, err)
	assert.Equal(t, "Manager", RoleManager.Label())
}

func TestUserFilterQuery(t *testing.T) {
	assert.Empty(t, UserFilter{}.Query())
	q := UserFilter{FullName: "Anna", Sex: SexFemale}.Query()
	assert.Equal(t, "full_name=Anna&sex=%D0%96", q.Encode())
}

func TestUserUpdateOmitsUnsetFields(t *testing.T) {
	name := "Anna"
	b, err := json.Marshal(UserUpdate{FullName: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name":"Anna"}`, string(b))
}

func TestNotificationBlockedUserID(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"message":"m","data":{"blocked_user_id":5}}`), &n))
	id, ok := n.BlockedUserID()
	assert.True(t, ok)
	assert.Equal(t, 5, id)

	_, ok = Notification{ID: 2}.BlockedUserID()
	assert.False(t, ok)
}

func TestCountdownUntil(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 59, 30, 0, time.UTC)

	c := CountdownUntil("Launch", now.Add(30*time.Second+500*time.Millisecond), now)
	assert.Equal(t, 30, c.Seconds, "partial seconds are truncated")
	assert.False(t, c.Expired)

	c = CountdownUntil("Launch", now, now)
	assert.True(t, c.Expired)
}
