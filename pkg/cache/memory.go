package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process cache bounded by entry count. When full, the
// entry closest to expiry is evicted first.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache returns a cache holding at most max entries. A max of zero
// or less means unbounded.
func NewMemoryCache(max int) *MemoryCache {
	return &MemoryCache{max: max, entries: make(map[string]memoryEntry)}
}

// Get returns a copy-free view of the stored bytes; callers must not modify it.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := memoryEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	if _, exists := c.entries[key]; !exists && c.max > 0 && len(c.entries) >= c.max {
		c.evictLocked()
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// evictLocked drops the entry that expires soonest. Entries without expiry
// are evicted only when nothing else remains.
func (c *MemoryCache) evictLocked() {
	var victim string
	var victimAt time.Time
	found := false
	for k, e := range c.entries {
		at := e.expiresAt
		if at.IsZero() {
			at = time.Unix(1<<62, 0)
		}
		if !found || at.Before(victimAt) {
			victim, victimAt, found = k, at, true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

var _ Cache = (*MemoryCache)(nil)
