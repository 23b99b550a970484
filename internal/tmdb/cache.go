package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m3rciful/moviebot/internal/logger"
)

// Cache is the read-through cache attached via WithCache. Implementations
// must be safe for concurrent use and must fail open: a broken backend
// turns every lookup into a miss, never into an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// ConnectRedis dials the cache backend and verifies the connection.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("tmdb: redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisCache wraps a connected redis client as a Cache.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

type redisCache struct {
	client *redis.Client
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Debug(ctx, "tmdb", "tmdb.cache.get",
				slog.String("status", "fail"),
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}
	return raw, true
}

func (r *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Debug(ctx, "tmdb", "tmdb.cache.set",
			slog.String("status", "fail"),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

// cachedJSON resolves out from the cache when possible and refreshes the
// entry from upstream on a miss. Corrupt entries count as misses.
func (c *Client) cachedJSON(ctx context.Context, key, rawURL string, out any) error {
	if c.cache == nil {
		return c.doJSON(ctx, rawURL, out)
	}

	if raw, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(raw, out); err == nil {
			if logger.ShouldSampleDebug() {
				logger.Debug(ctx, "tmdb", "tmdb.cache",
					slog.String("cache", "hit"),
					slog.String("key", key),
				)
			}
			return nil
		}
	}

	if err := c.doJSON(ctx, rawURL, out); err != nil {
		return err
	}
	if raw, err := json.Marshal(out); err == nil {
		c.cache.Set(ctx, key, raw, c.cacheTTL)
	}
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "tmdb", "tmdb.cache",
			slog.String("cache", "miss"),
			slog.String("key", key),
		)
	}
	return nil
}
