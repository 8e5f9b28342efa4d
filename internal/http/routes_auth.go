package http

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/service"
)

// AuthRoutes handles authentication route registration.
type AuthRoutes struct {
	handler     *AuthHandler
	authService service.AuthService
}

// NewAuthRoutes creates a new AuthRoutes instance.
func NewAuthRoutes(authService service.AuthService, audit *middleware.AsyncLogger) *AuthRoutes {
	return &AuthRoutes{
		handler:     NewAuthHandler(authService, audit),
		authService: authService,
	}
}

// RegisterPublicRoutes registers login and registration.
func (r *AuthRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", r.handler.Login)
	auth.POST("/register", r.handler.Register)
}

// ProtectedGroup returns a group requiring a valid JWT, rate limited per
// user when limiter is non-nil.
func (r *AuthRoutes) ProtectedGroup(rg *gin.RouterGroup, limiter *middleware.RateLimiter) *gin.RouterGroup {
	protected := rg.Group("")
	protected.Use(middleware.JWTAuth(r.authService))
	if limiter != nil {
		protected.Use(limiter.UserRateLimit())
	}
	return protected
}
