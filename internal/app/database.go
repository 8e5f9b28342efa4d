package app

import (
	"context"
	"time"

	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	savedListsBreakerName = "mongodb-saved-lists"
	logsBreakerName       = "mongodb-logs"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                       *repository.MongoDB
	SavedListsRepo           repository.SavedListsRepositoryInterface
	UserRepo                 repository.UserRepositoryInterface
	LoggingService           service.LoggingService
	SavedListsCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker       *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// saved lists, users and request logs.
// Returns nil if database is disabled or connection fails.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if ttlDays := int(cfg.LogsTTL.Hours() / 24); ttlDays > 0 {
		if err := db.SetLogsTTL(ctx, ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index")
		}
	}

	savedListsCB := newCircuitBreaker(cfg, savedListsBreakerName)
	logsCB := newCircuitBreaker(cfg, logsBreakerName)

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	return &DatabaseComponents{
		DB:                       db,
		SavedListsRepo:           repository.NewSavedListsRepositoryWithCircuitBreaker(repository.NewSavedListsRepository(db), savedListsCB),
		UserRepo:                 repository.NewUserRepository(db),
		LoggingService:           service.NewLoggingService(logsRepo),
		SavedListsCircuitBreaker: savedListsCB,
		LogsCircuitBreaker:       logsCB,
	}
}

// newCircuitBreaker builds a breaker that reports its state to Prometheus.
func newCircuitBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, int(circuitbreaker.StateClosed))

	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		OnStateChange:    onBreakerStateChange,
	})
}

func onBreakerStateChange(name string, from, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, int(to))
	log.Warn().
		Str("circuit_breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
