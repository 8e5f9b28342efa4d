package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/middleware"
)

// ListRoutes registers the saved item list endpoints.
type ListRoutes struct {
	handler *SavedListsHandler
	timeout time.Duration
}

// NewListRoutes creates a new ListRoutes instance.
func NewListRoutes(handler *SavedListsHandler, timeout time.Duration) *ListRoutes {
	return &ListRoutes{handler: handler, timeout: timeout}
}

func (r *ListRoutes) register(rg *gin.RouterGroup) {
	lists := rg.Group("/lists", middleware.Timeout(r.timeout))
	lists.POST("", r.handler.Create)
	lists.GET("", r.handler.List)
	lists.GET("/:id", r.handler.Get)
	lists.PUT("/:id", r.handler.Update)
	lists.DELETE("/:id", r.handler.Delete)
	lists.POST("/:id/optimize", r.handler.Optimize)
}

// RegisterPublicRoutes registers the lists for the anonymous owner.
func (r *ListRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	r.register(rg)
}

// RegisterProtectedRoutes registers the lists scoped to the JWT user.
func (r *ListRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	r.register(protected)
}
