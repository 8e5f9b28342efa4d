package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes registered behind JWT authentication.
type ProtectedRouteGroup interface {
	RegisterProtectedRoutes(protected *gin.RouterGroup)
}
