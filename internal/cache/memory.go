package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	resource string
	value    []byte
	storedAt time.Time
}

// MemoryCache keeps query results in process.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	staleTime time.Duration
	now       func() time.Time
}

func NewMemoryCache(staleTime time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:   make(map[string]memoryEntry),
		staleTime: staleTime,
		now:       time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key Key) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key.String()]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.staleTime > 0 && c.now().Sub(entry.storedAt) >= c.staleTime {
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key Key, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = memoryEntry{resource: key.Resource, value: value, storedAt: c.now()}
}

func (c *MemoryCache) Invalidate(_ context.Context, resources ...string) error {
	drop := make(map[string]struct{}, len(resources))
	for _, r := range resources {
		drop[r] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, entry := range c.entries {
		if _, ok := drop[entry.resource]; ok {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *MemoryCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}

func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}
