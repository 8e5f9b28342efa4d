package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/middleware"
)

// OptimizeRoutes registers the stateless optimize endpoint.
type OptimizeRoutes struct {
	handler *Handler
	timeout time.Duration
}

// NewOptimizeRoutes creates a new OptimizeRoutes instance.
func NewOptimizeRoutes(handler *Handler, timeout time.Duration) *OptimizeRoutes {
	return &OptimizeRoutes{handler: handler, timeout: timeout}
}

// RegisterPublicRoutes registers POST /optimize.
func (r *OptimizeRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/optimize", middleware.Timeout(r.timeout), r.handler.Optimize)
}
