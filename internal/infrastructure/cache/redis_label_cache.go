package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLabelCache implements LabelCache using Redis. Suitable for
// distributed deployments where multiple instances share the lookup
// cache and invalidations must be visible to all of them.
type RedisLabelCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisLabelCache creates a new Redis-based label cache
func NewRedisLabelCache(cfg RedisConfig) (*RedisLabelCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLabelCache{
		client: client,
		ttl:    defaultLabelTTL,
	}, nil
}

// NewRedisLabelCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisLabelCacheWithClient(client *redis.Client) *RedisLabelCache {
	return &RedisLabelCache{
		client: client,
		ttl:    defaultLabelTTL,
	}
}

// Get retrieves a cached label
func (c *RedisLabelCache) Get(ctx context.Context, kind string, id uuid.UUID) (string, bool, error) {
	label, err := c.client.Get(ctx, labelKey(kind, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached label: %w", err)
	}
	return label, true, nil
}

// Set stores a label with the given TTL
func (c *RedisLabelCache) Set(ctx context.Context, kind string, id uuid.UUID, label string, ttl time.Duration) error {
	if label == "" {
		return nil
	}

	if ttl == 0 {
		ttl = c.ttl
	}

	if err := c.client.Set(ctx, labelKey(kind, id), label, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache label: %w", err)
	}
	return nil
}

// Delete removes a cached label
func (c *RedisLabelCache) Delete(ctx context.Context, kind string, id uuid.UUID) error {
	if err := c.client.Del(ctx, labelKey(kind, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached label: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisLabelCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisLabelCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisLabelCache implements LabelCache
var _ LabelCache = (*RedisLabelCache)(nil)
