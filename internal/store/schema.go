package store

import (
	"database/sql"
	"fmt"
)

const (
	goalEventsTable    = "goal_events"
	sessionEventsTable = "session_events"
	llmEventsTable     = "llm_request_events"
	snapshotsTable     = "snapshots"
)

// Timestamps are stored as Unix milliseconds so they sort and compare as
// plain integers.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS goal_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		goal_index INTEGER NOT NULL,
		goal_name TEXT NOT NULL,
		goal_kind TEXT NOT NULL,
		points INTEGER NOT NULL,
		score INTEGER NOT NULL,
		level INTEGER NOT NULL,
		level_up INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS goal_events_session ON goal_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS goal_events_timestamp ON goal_events (timestamp)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		score INTEGER NOT NULL DEFAULT 0,
		goal_count INTEGER NOT NULL DEFAULT 0,
		detail TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session ON session_events (session_id)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,

	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
}

// migrate creates every table and index the repos need.
func migrate(db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
