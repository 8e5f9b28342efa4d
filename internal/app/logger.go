package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitializeLogger configures zerolog from LOG_LEVEL and LOG_PRETTY and sends
// gin's route table to the debug log. Gin runs in release mode unless debug
// logging is on or GIN_MODE says otherwise.
func InitializeLogger() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.Init(level, os.Getenv("LOG_PRETTY") == "true")

	gin.DebugPrintRouteFunc = logRoute
	if os.Getenv(gin.EnvGinMode) == "" && zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
}

func logRoute(method, path, handler string, handlers int) {
	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("handler", handler).
		Int("handlers", handlers).
		Msg("Route registered")
}
