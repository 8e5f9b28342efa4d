//go:build !integration

package app

import (
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/guttosm/balance-service/internal/service/cache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "0",
			RequestTimeout: 5 * time.Second,
			RateLimit:      100,
			RateWindow:     time.Minute,
		},
		Optimizer: config.OptimizerConfig{
			MaxBudgetMinorUnits: 99_999,
			MaxCatalogItems:     200,
			CurrencySymbol:      "$",
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Backend: config.CacheBackendMemory,
			Size:    100,
			TTL:     time.Minute,
		},
	}
}

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantCache bool
	}{
		{name: "memory cache", wantCache: true},
		{name: "cache disabled", mutate: func(c *config.Config) { c.Cache.Enabled = false }},
		{name: "zero cache size", mutate: func(c *config.Config) { c.Cache.Size = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			components := InitializeServices(cfg)
			t.Cleanup(func() { _ = components.Close() })

			require.NotNil(t, components.Optimizer)
			assert.Nil(t, components.Redis)
			if tt.wantCache {
				assert.IsType(t, &service.ShardedCache{}, components.Cache)
			} else {
				assert.Nil(t, components.Cache)
			}
		})
	}
}

func TestInitializeServices_MaxBudget(t *testing.T) {
	cfg := testConfig()
	cfg.Optimizer.MaxBudgetMinorUnits = 500

	components := InitializeServices(cfg)
	t.Cleanup(func() { _ = components.Close() })

	assert.Equal(t, 500, components.Optimizer.MaxBudgetMinorUnits())
	assert.Equal(t, service.RejectionBudgetTooLarge, components.Optimizer.Validate(model.OptimizationInput{BudgetMinorUnits: 501}))
}

func TestInitializeServices_RedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Cache.RedisAddr = mr.Addr()
	cfg.Cache.RedisTimeout = time.Second

	components := InitializeServices(cfg)
	require.NotNil(t, components.Redis)
	assert.IsType(t, &cache.RedisCache{}, components.Cache)

	input := model.OptimizationInput{
		BudgetMinorUnits: 856,
		Items:            []model.CatalogItem{{ID: "latte", Name: "Latte", UnitPriceMinorUnits: 428}},
	}
	result, ok := components.Optimizer.Optimize(input)
	require.True(t, ok)
	assert.Equal(t, 856, result.TotalSpentMinorUnits())
	assert.NotEmpty(t, mr.Keys(), "result should be cached in redis")

	require.NoError(t, components.Close())
}

var latteInput = model.OptimizationInput{
	BudgetMinorUnits: 856,
	Items:            []model.CatalogItem{{ID: "latte", Name: "Latte", UnitPriceMinorUnits: 428}},
}

func TestInitializeServices_RedisKeyPrefix(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		wantPrefix string
	}{
		{name: "configured prefix", prefix: "tenant-a:", wantPrefix: "tenant-a:"},
		{name: "empty prefix keeps default", prefix: "", wantPrefix: "balance:result:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := miniredis.RunT(t)

			cfg := testConfig()
			cfg.Cache.Backend = config.CacheBackendRedis
			cfg.Cache.RedisAddr = mr.Addr()
			cfg.Cache.RedisKeyPrefix = tt.prefix

			components := InitializeServices(cfg)
			t.Cleanup(func() { _ = components.Close() })

			_, ok := components.Optimizer.Optimize(latteInput)
			require.True(t, ok)

			keys := mr.Keys()
			require.Len(t, keys, 1)
			assert.True(t, strings.HasPrefix(keys[0], tt.wantPrefix), "key %q", keys[0])
		})
	}
}

func TestInitializeServices_ExportsCacheStats(t *testing.T) {
	cfg := testConfig()
	components := InitializeServices(cfg)

	_, ok := components.Optimizer.Optimize(latteInput)
	require.True(t, ok)
	_, ok = components.Optimizer.Optimize(latteInput)
	require.True(t, ok)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ResultCacheEntries))
	// 16 shards of 100/16 entries each
	assert.Equal(t, float64(96), testutil.ToFloat64(metrics.ResultCacheCapacity))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ResultCacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ResultCacheMisses))

	require.NoError(t, components.Close())
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.ResultCacheEntries), "closing detaches the gauges")
}

func TestInitializeServices_FlushOnStart(t *testing.T) {
	tests := []struct {
		name      string
		flush     bool
		wantStale bool
	}{
		{name: "flush removes earlier results", flush: true, wantStale: false},
		{name: "no flush keeps earlier results", flush: false, wantStale: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := miniredis.RunT(t)
			require.NoError(t, mr.Set("balance:result:stale", `{}`))
			require.NoError(t, mr.Set("other:key", "kept"))

			cfg := testConfig()
			cfg.Cache.Backend = config.CacheBackendRedis
			cfg.Cache.RedisAddr = mr.Addr()
			cfg.Cache.FlushOnStart = tt.flush

			components := InitializeServices(cfg)
			t.Cleanup(func() { _ = components.Close() })

			assert.Equal(t, tt.wantStale, mr.Exists("balance:result:stale"))
			assert.True(t, mr.Exists("other:key"))
		})
	}
}
