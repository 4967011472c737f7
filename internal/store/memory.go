package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Repository.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	order     []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
	}
}

// Save stores the snapshot, replacing any snapshot with the same ID.
func (m *MemoryStore) Save(_ context.Context, snapshot Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.snapshots[snapshot.ID]; !exists {
		m.order = append(m.order, snapshot.ID)
	}
	m.snapshots[snapshot.ID] = snapshot
	return nil
}

// Get returns the snapshot with the given ID.
func (m *MemoryStore) Get(_ context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot, ok := m.snapshots[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snapshot, nil
}

// List returns all snapshots in insertion order.
func (m *MemoryStore) List(_ context.Context) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Snapshot, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.snapshots[id])
	}
	return out, nil
}
