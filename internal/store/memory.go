package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	longURL   string
	createdAt time.Time
}

// MemoryStore is an in-process implementation of Store. It is the fallback
// target when a durable backend is unreachable; its contents live only for
// the process lifetime.
type MemoryStore struct {
	mu   sync.RWMutex
	urls map[string]memoryEntry
}

// NewMemoryStore creates a new in-memory URL store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Put(_ context.Context, code, longURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.urls[code]; ok {
		if existing.longURL == longURL {
			return nil
		}

		return ErrCodeTaken
	}

	m.urls[code] = memoryEntry{
		longURL:   longURL,
		createdAt: time.Now().UTC(),
	}

	return nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.urls[code]
	if !ok {
		return "", ErrNotFound
	}

	return entry.longURL, nil
}

func (m *MemoryStore) Exists(_ context.Context, code string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.urls[code]

	return ok, nil
}

// Ping always succeeds; the in-process store has no connection to lose.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Len reports the number of stored mappings.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.urls)
}
