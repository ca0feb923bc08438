// Package cache provides the quote result cache. The cache is an
// optimization layer, never a correctness dependency: when no backing
// store is configured every operation is a silent no-op.
package cache

import (
	"context"
	"sync"
	"time"
)

// TTLQuoteResult is how long an external calculator result stays cached.
const TTLQuoteResult = 24 * time.Hour

// Store is the minimal get/set-with-TTL contract the adapters depend on.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Noop is the absent-backing-store implementation.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (Noop) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

type memoryEntry struct {
	value   string
	expires time.Time
}

// Memory is an in-process store with per-entry expiry. Expired entries are
// dropped lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if m.now().After(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expires: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}
