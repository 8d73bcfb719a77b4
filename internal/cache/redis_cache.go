package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"groupassign/internal/driver"
)

// redisCache implements ResultCache using Redis, namespacing keys under a
// fixed prefix so the assignment cache can share a Redis instance.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache returns a Redis-backed ResultCache.
func NewRedisCache(client *redis.Client) ResultCache {
	return &redisCache{client: client, prefix: "groupassign:cache:"}
}

func (c *redisCache) Set(ctx context.Context, key string, result *driver.Result, ttl time.Duration) error {
	if c.client == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set cache: %w", err)
	}
	return nil
}

func (c *redisCache) Get(ctx context.Context, key string) (*driver.Result, error) {
	if c.client == nil {
		return nil, errors.New("redis client is nil")
	}
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cache: %w", err)
	}
	var result driver.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

func (c *redisCache) Invalidate(ctx context.Context, key string) error {
	if c.client == nil {
		return errors.New("redis client is nil")
	}
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("invalidate cache: %w", err)
	}
	return nil
}

func (c *redisCache) Clear(ctx context.Context) error {
	if c.client == nil {
		return errors.New("redis client is nil")
	}
	pattern := c.prefix + "*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan keys: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("delete keys: %w", err)
		}
	}
	return nil
}
