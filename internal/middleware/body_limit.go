package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/i18n"
)

// DefaultMaxBodyBytes is used when BodyLimit is given a non-positive limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit caps request bodies at limit bytes. A declared Content-Length
// over the limit is refused with 413 straight away; otherwise the body is
// wrapped so reads past the limit fail with *http.MaxBytesError.
func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			AbortWithError(c, http.StatusRequestEntityTooLarge, i18n.ErrKeyBodyTooLarge)
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
