package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/service"
)

// Context keys set by JWTAuth.
const (
	UserIDKey     = "user_id"
	UserEmailKey  = "user_email"
	UserClaimsKey = "user_claims"
)

const bearerPrefix = "Bearer "

// JWTAuth rejects requests without a valid bearer token and stores the
// token's claims in the context.
func JWTAuth(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserClaimsKey, claims)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID, or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetClaims returns the claims stored by JWTAuth.
func GetClaims(c *gin.Context) (*dto.Claims, bool) {
	v, ok := c.Get(UserClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*dto.Claims)
	return claims, ok
}
