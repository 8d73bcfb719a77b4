// Package api exposes the driver over HTTP: one handler compiles a request
// body into a driver.Input, checks the result cache, runs the driver on a
// miss, and records an audit.Record of the invocation.
package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"groupassign/internal/audit"
	"groupassign/internal/cache"
	"groupassign/internal/driver"
)

// Service wires the driver to the cache and audit store.
type Service struct {
	driver  *driver.Driver
	cache   cache.ResultCache
	audit   *audit.Store
	log     *zap.Logger
	cacheTTL time.Duration
}

// NewService returns a Service. audit may be nil to disable invocation
// logging.
func NewService(d *driver.Driver, c cache.ResultCache, a *audit.Store, log *zap.Logger, cacheTTL time.Duration) *Service {
	return &Service{driver: d, cache: c, audit: a, log: log, cacheTTL: cacheTTL}
}

// Solve runs one assignment request, serving from cache when the same
// students/groups/goal-set-names were solved before.
func (s *Service) Solve(ctx context.Context, in driver.Input) (*driver.Result, error) {
	key := driver.CacheKey(in)
	invocationID := uuid.NewString()

	if key != "" && s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err != nil {
			s.log.Warn("cache lookup failed", zap.Error(err))
		} else if cached != nil {
			s.log.Debug("cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	start := time.Now()
	result, err := s.driver.Run(in)
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}

	if key != "" && s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.log.Warn("cache write failed", zap.Error(err))
		}
	}

	if s.audit != nil {
		s.audit.Save(invocationID, in, result, duration)
	}

	return result, nil
}
