// Package cache provides the volatile similarity cache backed by Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis wraps a Redis client as a TTL-bounded float score cache. It satisfies
// the similarity fast-tier interface.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis instance at url (redis:// form) and verifies the
// connection with a ping. Entries written through Set expire after ttl.
func New(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Get returns the cached score for key. The second return value is false when
// the key is absent or expired.
func (r *Redis) Get(ctx context.Context, key string) (float64, bool, error) {
	score, err := r.client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return score, true, nil
}

// Set stores score under key with the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, score float64) error {
	if err := r.client.Set(ctx, key, score, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
