package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const detailsKeyPrefix = "recipe:details:"

// RedisDetailsCache stores generated recipe details with a TTL
type RedisDetailsCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisDetailsCache returns a cache whose entries expire after ttl (24h when zero).
func NewRedisDetailsCache(client *redis.Client, ttl time.Duration) *RedisDetailsCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDetailsCache{redis: client, ttl: ttl}
}

// Get returns the cached value for key. A miss is not an error.
func (c *RedisDetailsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.redis.Get(ctx, detailsKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read details from Redis: %w", err)
	}
	return data, true, nil
}

// Set stores value under key
func (c *RedisDetailsCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.redis.Set(ctx, detailsKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save details to Redis: %w", err)
	}
	return nil
}

// Delete removes the entry for key
func (c *RedisDetailsCache) Delete(ctx context.Context, key string) error {
	if err := c.redis.Del(ctx, detailsKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete details from Redis: %w", err)
	}
	return nil
}
