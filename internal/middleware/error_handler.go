package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/logger"
)

// AbortWithError writes a localized error body for status and stops the chain.
func AbortWithError(c *gin.Context, status int, messageKey string) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
	resp := dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(status, resp)
}

// ErrorHandler logs errors attached to the gin context and, if the handler
// has not written a response yet, replies with a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logger.Logger().Error().
			Str("request_id", GetRequestID(c)).
			Err(err.Err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request error")

		if !c.Writer.Written() {
			AbortWithError(c, http.StatusInternalServerError, i18n.ErrKeyInternalError)
		}
	}
}
