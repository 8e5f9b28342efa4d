package app

import (
	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/guttosm/balance-service/internal/service/cache"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Optimizer service.BalanceOptimizer
	// Cache is nil when result caching is disabled.
	Cache cache.Cache
	// Redis is set only for the redis cache backend; the rate limiter shares it.
	Redis *redis.Client
}

// InitializeServices builds the optimizer and its result cache.
func InitializeServices(cfg config.Config) *ServiceComponents {
	components := &ServiceComponents{}
	opts := []service.Option{service.WithMaxBudget(cfg.Optimizer.MaxBudgetMinorUnits)}

	if cfg.Cache.Enabled && cfg.Cache.Size > 0 {
		switch cfg.Cache.Backend {
		case config.CacheBackendRedis:
			components.Redis = redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.RedisAddr,
				Password: cfg.Cache.RedisPassword,
				DB:       cfg.Cache.RedisDB,
			})
			components.Cache = cache.NewRedisCache(components.Redis, cfg.Cache.TTL,
				cache.WithOpTimeout(cfg.Cache.RedisTimeout),
				cache.WithKeyPrefix(cfg.Cache.RedisKeyPrefix),
			)
			log.Info().Str("addr", cfg.Cache.RedisAddr).Str("prefix", cfg.Cache.RedisKeyPrefix).Msg("Using Redis result cache")
		default:
			sharded := service.NewShardedCache(cfg.Cache.Size, cfg.Cache.TTL, 0)
			exportCacheStats(sharded)
			components.Cache = sharded
		}
		opts = append(opts, service.WithCacheInterface(components.Cache))
	}

	components.Optimizer = service.NewBalanceOptimizerService(opts...)
	if components.Cache != nil && cfg.Cache.FlushOnStart {
		components.Optimizer.InvalidateCache()
		log.Info().Str("backend", cfg.Cache.Backend).Msg("Result cache flushed on start")
	}
	return components
}

// exportCacheStats publishes the cache counters as Prometheus gauges.
func exportCacheStats(c cache.CacheWithMetrics) {
	metrics.SetCacheStatsSource(func() metrics.CacheStats {
		m := c.Metrics()
		return metrics.CacheStats{
			Hits:      m.Hits,
			Misses:    m.Misses,
			Evictions: m.Evictions,
			Size:      m.Size,
			Capacity:  m.Capacity,
		}
	})
}

// Close stops the cache janitors and closes the Redis client.
func (s *ServiceComponents) Close() error {
	if _, ok := s.Cache.(cache.CacheWithMetrics); ok {
		metrics.SetCacheStatsSource(nil)
	}
	if s.Cache != nil {
		s.Cache.Stop()
	}
	if s.Redis != nil {
		return s.Redis.Close()
	}
	return nil
}
