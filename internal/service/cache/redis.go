package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "balance:result:"
	defaultOpTimeout = 200 * time.Millisecond
	scanBatchSize    = 100
)

// RedisCache stores optimization results as JSON in Redis with a TTL.
// Redis failures degrade to cache misses; the optimizer never depends on Redis being up.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	prefix    string
	opTimeout time.Duration
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithKeyPrefix overrides the namespace used for result keys.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithOpTimeout bounds every Redis round trip.
func WithOpTimeout(d time.Duration) RedisOption {
	return func(c *RedisCache) {
		if d > 0 {
			c.opTimeout = d
		}
	}
}

// NewRedisCache creates a Redis-backed result cache.
func NewRedisCache(client *redis.Client, ttl time.Duration, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client:    client,
		ttl:       ttl,
		prefix:    defaultKeyPrefix,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Get returns the cached result for key, if present and decodable.
func (c *RedisCache) Get(key string) (model.OptimizationResult, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheOperation("get", "miss")
		} else {
			log := logger.Component("redis-cache")
			log.Warn().Err(err).Msg("redis cache get failed")
			metrics.RecordCacheOperation("get", "error")
		}
		return model.OptimizationResult{}, false
	}

	var result model.OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		metrics.RecordCacheOperation("get", "corrupt")
		c.Invalidate(key)
		return model.OptimizationResult{}, false
	}

	metrics.RecordCacheOperation("get", "hit")
	return result, true
}

// Set stores the result under key with the configured TTL.
func (c *RedisCache) Set(key string, value model.OptimizationResult) {
	data, err := json.Marshal(value)
	if err != nil {
		metrics.RecordCacheOperation("set", "error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		log := logger.Component("redis-cache")
		log.Warn().Err(err).Msg("redis cache set failed")
		metrics.RecordCacheOperation("set", "error")
		return
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes a single key.
func (c *RedisCache) Invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.opTimeout)
	defer cancel()

	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		metrics.RecordCacheOperation("invalidate", "error")
		return
	}
	metrics.RecordCacheOperation("invalidate", "success")
}

// Clear removes every key under the cache prefix. Other keys in the database are left alone.
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*c.opTimeout)
	defer cancel()

	if err := c.deleteByPrefix(ctx); err != nil {
		log := logger.Component("redis-cache")
		log.Warn().Err(err).Str("prefix", c.prefix).Msg("redis cache clear failed")
		metrics.RecordCacheOperation("clear", "error")
		return
	}
	metrics.RecordCacheOperation("clear", "success")
}

func (c *RedisCache) deleteByPrefix(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", scanBatchSize).Iterator()
	keys := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatchSize {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// Stop is a no-op; the client is owned and closed by the caller.
func (c *RedisCache) Stop() {}

// Check pings Redis within the cache's op timeout. It serves as the readiness
// checker for the Redis backend.
func (c *RedisCache) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	return c.client.Ping(ctx).Err()
}
