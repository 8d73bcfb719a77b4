package cache

import (
	"context"
	"sync"
	"time"

	"groupassign/internal/driver"
)

// memoryCache implements ResultCache with an in-process map, used when no
// Redis instance is configured.
type memoryCache struct {
	mu   sync.Mutex
	data map[string]memoryEntry
}

type memoryEntry struct {
	result    *driver.Result
	expiresAt time.Time
}

// NewMemoryCache returns an in-memory ResultCache.
func NewMemoryCache() ResultCache {
	return &memoryCache{data: make(map[string]memoryEntry)}
}

func (c *memoryCache) Set(_ context.Context, key string, result *driver.Result, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryEntry{result: result, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (*driver.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.data, key)
		return nil, nil
	}
	return entry.result, nil
}

func (c *memoryCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]memoryEntry)
	return nil
}
