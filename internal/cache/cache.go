// Package cache holds the Driver result cache: a TTL-bounded key/value
// store keyed by driver.CacheKey, with a Redis-backed and an in-memory
// implementation sharing one interface.
package cache

import (
	"context"
	"time"

	"groupassign/internal/driver"
)

// ResultCache stores a Driver result under a cache key for up to ttl.
type ResultCache interface {
	Set(ctx context.Context, key string, result *driver.Result, ttl time.Duration) error
	Get(ctx context.Context, key string) (*driver.Result, error)
	Invalidate(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
