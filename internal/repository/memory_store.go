package repository

import (
	"context"
	"sync"
)

// MemoryStore keeps every map in process memory. It backs tests and the
// development profile.
type MemoryStore struct {
	mu   sync.RWMutex
	maps map[Map]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{maps: make(map[Map]map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(_ context.Context, m Map, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.maps[m][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Commit applies every write under one lock.
func (s *MemoryStore) Commit(ctx context.Context, writes []Write) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		entries, ok := s.maps[w.Map]
		if !ok {
			entries = make(map[string][]byte)
			s.maps[w.Map] = entries
		}
		entries[w.Key] = append([]byte(nil), w.Value...)
	}
	return nil
}

// Len returns the number of keys held in m.
func (s *MemoryStore) Len(m Map) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.maps[m])
}

// Close satisfies the Store interface; there is nothing to release.
func (s *MemoryStore) Close() error { return nil }
