package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/loantrack/internal/infrastructure/metrics"
)

// Cache implements usecase.Cache using Redis. It holds serialized
// schedules keyed per loan.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		prefix: "cache:",
	}
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	metrics.RedisOperations.WithLabelValues("get").Inc()

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ScheduleCacheMisses.Inc()
		} else {
			metrics.RedisErrors.WithLabelValues("get").Inc()
		}

		return nil, err
	}

	metrics.ScheduleCacheHits.Inc()

	return data, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	metrics.RedisOperations.WithLabelValues("set").Inc()

	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		metrics.RedisErrors.WithLabelValues("set").Inc()
		return err
	}

	return nil
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	metrics.RedisOperations.WithLabelValues("del").Inc()

	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		metrics.RedisErrors.WithLabelValues("del").Inc()
		return err
	}

	return nil
}
