package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	for _, table := range []string{"login_attempts", "hidden_notifications", "events"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestHiddenNotifications_PrimaryKey(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(db))

	_, err = db.Exec("INSERT INTO hidden_notifications(user_id, notification_id) VALUES (1, 7)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO hidden_notifications(user_id, notification_id) VALUES (1, 7)")
	assert.Error(t, err)
}
