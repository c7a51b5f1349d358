package auditlog

import (
	"context"
	"sync"
)

// Store is a bounded, keyed append store for audit entries. It mirrors the
// in-memory ring buffer to durable storage so diagnostics survive a page
// reload or process restart. Implementations bound the number of entries
// retained per key.
type Store interface {
	// Append persists an entry under the given key.
	Append(ctx context.Context, key string, e Entry) error

	// Load returns up to limit entries for the key, newest first.
	// A non-positive limit returns all retained entries.
	Load(ctx context.Context, key string, limit int) ([]Entry, error)
}

// MemoryStore is an in-memory Store implementation.
// Suitable for development and testing.
type MemoryStore struct {
	entries   map[string][]Entry // newest first
	maxPerKey int
	mu        sync.RWMutex
}

// NewMemoryStore creates an in-memory store retaining at most maxPerKey
// entries per key. Non-positive values fall back to DefaultCapacity.
func NewMemoryStore(maxPerKey int) *MemoryStore {
	if maxPerKey <= 0 {
		maxPerKey = DefaultCapacity
	}
	return &MemoryStore{
		entries:   make(map[string][]Entry),
		maxPerKey: maxPerKey,
	}
}

func (s *MemoryStore) Append(ctx context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append([]Entry{e}, s.entries[key]...)
	if len(entries) > s.maxPerKey {
		entries = entries[:s.maxPerKey]
	}
	s.entries[key] = entries
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[key]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}

	out := make([]Entry, limit)
	copy(out, entries[:limit])
	return out, nil
}
