package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sunumarche/pkg/logger"
)

// Cache is an optional read-through JSON cache. A nil *Cache (or one whose
// connection failed at startup) is valid and simply misses on every lookup,
// so callers never branch on availability.
type Cache struct {
	client *redis.Client
}

// New connects to redis at addr. An empty addr or a failed ping yields a nil
// cache; the service keeps running without memoization.
func New(addr string) *Cache {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable at %s, continuing without cache: %v", addr, err)
		return nil
	}

	logger.Info("Redis connected at %s", addr)
	return &Cache{client: client}
}

// GetJSON reports whether key was found and unmarshaled into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c == nil {
		return false, nil
	}
	s, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key with a TTL. Failures are the caller's to ignore.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
