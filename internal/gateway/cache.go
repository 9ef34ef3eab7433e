package gateway

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Cache is a nil-safe wrapper over redis used to memoize search responses.
// A nil *Cache (redis disabled in config) turns every operation into a no-op.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached response body, or nil on a miss. Redis failures are
// logged and treated as misses.
func (c *Cache) Get(ctx context.Context, key string) []byte {
	if c == nil {
		return nil
	}

	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return nil
	}
	return value
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}
