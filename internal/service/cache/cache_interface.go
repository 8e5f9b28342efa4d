// Package cache defines the result cache contract and its Redis backend.
package cache

import "github.com/guttosm/balance-service/internal/domain/model"

// Cache defines the interface for cache operations. Keys are input fingerprints.
type Cache interface {
	Get(key string) (model.OptimizationResult, bool)
	Set(key string, value model.OptimizationResult)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
