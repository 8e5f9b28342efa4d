package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/middleware"
)

// LogRoutes registers the log reading endpoint. It is only served behind JWT
// auth since entries are filtered by user.
type LogRoutes struct {
	handler *LogsHandler
	timeout time.Duration
}

// NewLogRoutes creates a new LogRoutes instance.
func NewLogRoutes(handler *LogsHandler, timeout time.Duration) *LogRoutes {
	return &LogRoutes{handler: handler, timeout: timeout}
}

// RegisterProtectedRoutes registers GET /logs.
func (r *LogRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/logs", middleware.Timeout(r.timeout), r.handler.List)
}
