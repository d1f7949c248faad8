package sentiment

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache stores gateway results as JSON under hashed keys so arbitrary
// free text never ends up in a Redis key. Redis errors degrade to cache
// misses.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger zerolog.Logger
}

func NewRedisCache(client *redis.Client, logger zerolog.Logger) *RedisCache {
	return &RedisCache{Client: client, TTL: 24 * time.Hour, Logger: logger}
}

func (c *RedisCache) key(text string) string {
	sum := sha1.Sum([]byte(text))
	return "sentiment:" + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, text string) (Result, bool) {
	raw, err := c.Client.Get(ctx, c.key(text)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn().Err(err).Msg("sentiment cache get failed")
		}
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return Result{}, false
	}
	return res, true
}

func (c *RedisCache) Put(ctx context.Context, text string, res Result) {
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, c.key(text), raw, c.TTL).Err(); err != nil {
		c.Logger.Warn().Err(err).Msg("sentiment cache put failed")
	}
}
