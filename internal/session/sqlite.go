// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps snapshots and history in a SQLite database. Each CLI
// invocation is one action, so the store is what carries results from one
// command to the next.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the session database at path and creates the
// schema if it does not exist.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			session_id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			query TEXT,
			page INTEGER,
			total INTEGER,
			returned INTEGER,
			error_kind TEXT,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id, rowid)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load returns the saved snapshot for id, or Empty(id) when the session
// has never been saved.
func (s *SQLiteStore) Load(ctx context.Context, id string) (Snapshot, error) {
	var state string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM snapshots WHERE session_id = ?`, id,
	).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return Empty(id), nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading session %s: %w", id, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(state), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding session %s: %w", id, err)
	}
	snap.ID = id
	return snap, nil
}

// Save replaces the stored snapshot for snap.ID in one statement.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	if snap.ID == "" {
		return errors.New("saving session: empty session id")
	}
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", snap.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (session_id, mode, state, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET mode = excluded.mode, state = excluded.state, updated_at = excluded.updated_at`,
		snap.ID, string(snap.Mode), string(state), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", snap.ID, err)
	}
	return nil
}

// Record appends a history entry.
func (s *SQLiteStore) Record(ctx context.Context, e HistoryEntry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (session_id, mode, query, page, total, returned, error_kind, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, string(e.Mode), e.Query, e.Page, e.Total, e.Returned, e.ErrorKind,
		at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording history for %s: %w", e.SessionID, err)
	}
	return nil
}

// History returns up to n entries for id, newest first. n <= 0 returns all.
func (s *SQLiteStore) History(ctx context.Context, id string, n int) ([]HistoryEntry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, mode, query, page, total, returned, error_kind, at
		 FROM history WHERE session_id = ? ORDER BY rowid DESC LIMIT ?`, id, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e    HistoryEntry
			mode string
			at   string
		)
		if err := rows.Scan(&e.SessionID, &mode, &e.Query, &e.Page, &e.Total, &e.Returned, &e.ErrorKind, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Mode = Mode(mode)
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parsing history time %q: %w", at, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
