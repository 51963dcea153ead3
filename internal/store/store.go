// Package store persists local state in a single SQLite database: seen job
// IDs for watch mode, saved jobs, submitted applications and settings.
package store

import (
	"database/sql"
	"fmt"

	"github.com/amishk599/jobboard/internal/model"

	_ "modernc.org/sqlite"
)

// Ensure SQLiteStore implements every local store interface.
var (
	_ model.JobStore         = (*SQLiteStore)(nil)
	_ model.SavedJobStore    = (*SQLiteStore)(nil)
	_ model.ApplicationStore = (*SQLiteStore)(nil)
	_ model.SettingsStore    = (*SQLiteStore)(nil)
)

// Timestamps are stored as unix seconds so range deletes compare integers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS seen_jobs (
		job_id     TEXT PRIMARY KEY,
		first_seen INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS saved_jobs (
		job_id   TEXT PRIMARY KEY,
		saved_at INTEGER NOT NULL,
		payload  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id              TEXT PRIMARY KEY,
		job_id          TEXT NOT NULL UNIQUE,
		job_title       TEXT NOT NULL,
		company         TEXT NOT NULL,
		applicant_name  TEXT NOT NULL,
		applicant_email TEXT NOT NULL,
		applicant_phone TEXT NOT NULL,
		why_hire_you    TEXT NOT NULL,
		applied_at      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// SQLiteStore implements the local stores on top of one SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// all tables exist. Use ":memory:" for a throwaway database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
