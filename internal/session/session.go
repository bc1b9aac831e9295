// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds per-user search state as immutable snapshots and
// persists them between actions.
package session

import (
	"context"
	"time"

	"github.com/pdiddy/scholar-search/pkg/types"
)

// Mode names the kind of action that produced a snapshot.
type Mode string

const (
	ModeNone      Mode = ""
	ModeSearch    Mode = "search"
	ModeBulk      Mode = "bulk"
	ModePaper     Mode = "paper"
	ModeRecommend Mode = "recommend"
)

// Snapshot is the state left behind by the last successful action. It is
// treated as a value: actions build a new Snapshot rather than changing
// the one they were given.
type Snapshot struct {
	ID   string `json:"id"`
	Mode Mode   `json:"mode"`

	// Exactly one of Bulk, Keyword or PaperID describes the request that
	// produced Results, according to Mode.
	Bulk    *types.SearchRequest  `json:"bulk,omitempty"`
	Keyword *types.KeywordRequest `json:"keyword,omitempty"`
	PaperID string                `json:"paper_id,omitempty"`

	// Limit is the page size used for numbering and page arithmetic.
	Limit int `json:"limit,omitempty"`

	// Page is the 1-based page held in Results. Offset is the number of
	// results that precede it.
	Page   int `json:"page,omitempty"`
	Offset int `json:"offset,omitempty"`

	Results *types.ResultEnvelope `json:"results,omitempty"`

	// Highlight is the query to emphasize when rendering Results. Only
	// keyword search sets it.
	Highlight string `json:"highlight,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Empty returns the snapshot of a session with no results yet.
func Empty(id string) Snapshot {
	return Snapshot{ID: id}
}

// HasResults reports whether the snapshot holds an envelope.
func (s Snapshot) HasResults() bool {
	return s.Results != nil
}

// WithID returns a copy of s belonging to session id.
func (s Snapshot) WithID(id string) Snapshot {
	s.ID = id
	return s
}

// Query returns the text query behind the snapshot, or the paper ID for
// lookups.
func (s Snapshot) Query() string {
	switch {
	case s.Bulk != nil:
		return s.Bulk.Query
	case s.Keyword != nil:
		return s.Keyword.Query
	default:
		return s.PaperID
	}
}

// HistoryEntry records one action against a session, whether it
// succeeded or not.
type HistoryEntry struct {
	SessionID string    `json:"session_id"`
	Mode      Mode      `json:"mode"`
	Query     string    `json:"query"`
	Page      int       `json:"page,omitempty"`
	Total     int       `json:"total"`
	Returned  int       `json:"returned"`
	ErrorKind string    `json:"error_kind,omitempty"`
	At        time.Time `json:"at"`
}

// Store persists snapshots and action history.
type Store interface {
	// Load returns the saved snapshot for id, or Empty(id) when none exists.
	Load(ctx context.Context, id string) (Snapshot, error)

	// Save replaces the snapshot for s.ID.
	Save(ctx context.Context, s Snapshot) error

	// Record appends one history entry.
	Record(ctx context.Context, e HistoryEntry) error

	// History returns up to n entries for id, newest first.
	History(ctx context.Context, id string, n int) ([]HistoryEntry, error)
}
