// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/http"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/rs/zerolog/log"
)

// App is the wired service: the router plus everything that must be released
// on shutdown.
type App struct {
	Router *gin.Engine

	services *ServiceComponents
	database *DatabaseComponents
	audit    *middleware.AsyncLogger
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger()

	services := InitializeServices(cfg)
	database := InitializeDatabase(cfg.Database)

	var audit *middleware.AsyncLogger
	if database != nil {
		audit = middleware.NewAsyncLogger(database.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	components := InitializeRouter(services, database, audit, cfg)

	return &App{
		Router:   http.NewRouter(components.Handler, components.HealthHandler, components.Config),
		services: services,
		database: database,
		audit:    audit,
	}
}

// Close flushes queued log entries and releases the cache and connections.
// The audit logger stops before MongoDB disconnects so pending entries are written.
func (a *App) Close(ctx context.Context) error {
	a.audit.Stop()

	var errs []error
	if a.services != nil {
		errs = append(errs, a.services.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close(ctx))
	}

	err := errors.Join(errs...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}
	return err
}
