package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"
)

// Cache wraps the redis client used for availability response caching.
// A cache miss or a redis outage is never an error for the caller; the
// engine simply recomputes.
type Cache struct {
	client *redis.Client
}

func InitCache(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:InitCache:Ping", "error", err, "addr", cfg.Addr)
		return nil, err
	}

	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &Cache{client: client}, nil
}

// Get returns the cached payload for key, or "" on miss or error.
func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil || c.client == nil {
		return ""
	}
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Cache:Get", "error", err, "key", key)
		}
		return ""
	}
	return val
}

// Set stores payload under key with the given TTL. Failures are logged only.
func (c *Cache) Set(ctx context.Context, key, payload string, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Warn("Cache:Set", "error", err, "key", key)
	}
}

// Incr bumps a version counter and returns the new value. Returns 0 on error
// so callers fall through to uncached computation.
func (c *Cache) Incr(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	val, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		logger.Warn("Cache:Incr", "error", err, "key", key)
		return 0
	}
	return val
}

// GetInt returns the integer value stored at key, or 0 when absent.
func (c *Cache) GetInt(ctx context.Context, key string) int64 {
	if c == nil || c.client == nil {
		return 0
	}
	val, err := c.client.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return val
}
