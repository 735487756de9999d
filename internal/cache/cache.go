// Package cache provides the TTL key-value store the catalog client and
// modifier resolver cache into. The backend is replaceable; the engine
// only relies on get/set-with-TTL semantics.
package cache

import (
	"sync"
	"time"
)

// Key namespaces. Attribute and modifier entries may share one backing
// store because their key spaces never collide.
const (
	PokemonKeyPrefix = "pokemon:"
	StatKeyPrefix    = "stat:"
)

// Store is a key-value cache with per-entry expiry. Implementations must
// be safe for concurrent use; writes are idempotent, so duplicate stores
// of the same key under a concurrent miss are harmless.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Purge()
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is an in-process Store. Expired entries are dropped lazily on
// read, so there is no background sweeper to manage.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

// Get returns the live value for key, or false if absent or expired.
func (m *Memory) Get(key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry.
		if cur, ok := m.entries[key]; ok && time.Now().After(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
}

// Purge drops every entry.
func (m *Memory) Purge() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Len reports the number of entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
