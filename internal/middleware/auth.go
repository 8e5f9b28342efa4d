package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth checks the X-API-Key header, then the api_key query parameter.
// An empty key set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		switch {
		case key == "":
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyAPIKeyRequired)
		case !validKeys[key]:
			AbortWithError(c, http.StatusUnauthorized, i18n.ErrKeyInvalidAPIKey)
		default:
			c.Next()
		}
	}
}
