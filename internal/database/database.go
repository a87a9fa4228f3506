package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New opens the portal's local state database.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY between pooled conns.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS login_attempts (
		email TEXT NOT NULL PRIMARY KEY,
		failures INTEGER NOT NULL DEFAULT 0,
		locked_until DATETIME,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS hidden_notifications (
		user_id INTEGER NOT NULL,
		notification_id INTEGER NOT NULL,
		hidden_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, notification_id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		actor_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
