package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a Memory cache created with maxEntries <= 0.
const DefaultMaxEntries = 1024

type memoryEntry struct {
	val     []byte
	stored  time.Time
	expires time.Time
}

// Memory is an in-process Cache. When full, the oldest entry is evicted.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory creates a Memory cache holding at most maxEntries values for ttl.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value for key unless it is missing or expired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, false
	}
	return e.val, true
}

// Set stores val under key, evicting expired entries and then the oldest
// entry if the cache is full.
func (m *Memory) Set(_ context.Context, key string, val []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evict(now)
	}
	m.entries[key] = memoryEntry{
		val:     append([]byte(nil), val...),
		stored:  now,
		expires: now.Add(m.ttl),
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evict drops expired entries, or the oldest one if none had expired.
// Callers hold m.mu.
func (m *Memory) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	removed := false
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
			removed = true
			continue
		}
		if oldestKey == "" || e.stored.Before(oldest) {
			oldestKey, oldest = k, e.stored
		}
	}
	if !removed && oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}
