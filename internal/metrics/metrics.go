// Package metrics provides Prometheus metrics collection for the balance service.
package metrics

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OptimizationsTotal counts optimizer calls by outcome
	// (perfect, partial, no_solution, rejected).
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "balance_optimizations_total",
			Help: "Total number of balance optimizations by outcome",
		},
		[]string{"outcome"},
	)

	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "balance_optimization_duration_seconds",
			Help:    "Balance optimization duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	// OptimizationTableCells tracks the DP work per call: (remaining budget + 1) * candidates.
	OptimizationTableCells = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "balance_optimization_table_cells",
			Help:    "Number of DP cells evaluated per optimization",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// SavedListOperationsTotal tracks saved list CRUD by operation and result.
	SavedListOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saved_list_operations_total",
			Help: "Total number of saved list operations",
		},
		[]string{"operation", "result"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// ResultCacheEntries and the gauges below read the in-process result
	// cache through SetCacheStatsSource. They stay at 0 for the Redis backend.
	ResultCacheEntries = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Entries held by the in-process result cache",
		},
		cacheStat(func(s CacheStats) int64 { return int64(s.Size) }),
	)

	ResultCacheCapacity = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "result_cache_capacity",
			Help: "Capacity of the in-process result cache",
		},
		cacheStat(func(s CacheStats) int64 { return int64(s.Capacity) }),
	)

	// ResultCacheHits, ResultCacheMisses and ResultCacheEvictions are gauges
	// because a cache clear resets them.
	ResultCacheHits = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "result_cache_hits",
			Help: "Hits since the in-process result cache was last cleared",
		},
		cacheStat(func(s CacheStats) int64 { return s.Hits }),
	)

	ResultCacheMisses = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "result_cache_misses",
			Help: "Misses since the in-process result cache was last cleared",
		},
		cacheStat(func(s CacheStats) int64 { return s.Misses }),
	)

	ResultCacheEvictions = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "result_cache_evictions",
			Help: "Capacity evictions since the in-process result cache was last cleared",
		},
		cacheStat(func(s CacheStats) int64 { return s.Evictions }),
	)

	// LogEntriesTotal tracks persisted request/audit log entries by result
	// (written, dropped, error).
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_total",
			Help: "Total number of log entries handled by the async log writer",
		},
		[]string{"result"},
	)
)

// CacheStats is a snapshot of the in-process result cache.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

var cacheStatsSource atomic.Pointer[func() CacheStats]

// SetCacheStatsSource makes the result cache gauges read from fn. nil detaches
// the current source.
func SetCacheStatsSource(fn func() CacheStats) {
	if fn == nil {
		cacheStatsSource.Store(nil)
		return
	}
	cacheStatsSource.Store(&fn)
}

func cacheStat(pick func(CacheStats) int64) func() float64 {
	return func() float64 {
		fn := cacheStatsSource.Load()
		if fn == nil {
			return 0
		}
		return float64(pick((*fn)()))
	}
}

// SetCircuitBreakerState records the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOptimization records metrics for one optimizer call.
func RecordOptimization(duration time.Duration, outcome string, cells int) {
	OptimizationDuration.Observe(duration.Seconds())
	OptimizationsTotal.WithLabelValues(outcome).Inc()
	if cells > 0 {
		OptimizationTableCells.Observe(float64(cells))
	}
}

// RecordRejection counts an input the optimizer refused to run on.
func RecordRejection(reason string) {
	OptimizationsTotal.WithLabelValues("rejected_" + reason).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordSavedListOperation records metrics for a saved list operation.
func RecordSavedListOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	SavedListOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordLogEntries adds n log entries with the given result.
func RecordLogEntries(result string, n int) {
	if n > 0 {
		LogEntriesTotal.WithLabelValues(result).Add(float64(n))
	}
}
