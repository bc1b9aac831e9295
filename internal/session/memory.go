// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a Store that lives only as long as the process. The HTTP
// front end uses it when no database is wanted.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	history   map[string][]HistoryEntry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
		history:   make(map[string][]HistoryEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if snap, ok := m.snapshots[id]; ok {
		return snap, nil
	}
	return Empty(id), nil
}

func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.ID] = snap
	return nil
}

func (m *MemoryStore) Record(_ context.Context, e HistoryEntry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[e.SessionID] = append(m.history[e.SessionID], e)
	return nil
}

func (m *MemoryStore) History(_ context.Context, id string, n int) ([]HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := m.history[id]
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(all) - 1; i >= len(all)-n; i-- {
		out = append(out, all[i])
	}
	return out, nil
}
