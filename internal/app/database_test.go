//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(config.DatabaseConfig{Enabled: false}))
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NoError(t, components.Close(context.Background()))
}

func TestNewCircuitBreaker_ReportsState(t *testing.T) {
	cfg := config.DatabaseConfig{
		CircuitBreakerFailureThreshold: 2,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Hour,
	}
	name := "test-" + t.Name()
	gauge := metrics.CircuitBreakerState.WithLabelValues(name)

	cb := newCircuitBreaker(cfg, name)
	assert.Equal(t, name, cb.Name())
	assert.Equal(t, float64(circuitbreaker.StateClosed), testutil.ToFloat64(gauge))

	fail := func() error { return errors.New("mongo down") }
	for i := 0; i < 2; i++ {
		require.Error(t, cb.Execute(context.Background(), fail))
	}

	assert.True(t, cb.IsOpen())
	assert.Equal(t, float64(circuitbreaker.StateOpen), testutil.ToFloat64(gauge))
	assert.ErrorIs(t, cb.Execute(context.Background(), fail), circuitbreaker.ErrCircuitOpen)
}
