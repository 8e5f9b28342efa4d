package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/logger"
)

// RequestLogger writes one structured line per request to the console and,
// when sink is non-nil, queues a matching entry for persistence.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		entry := newLogEntry(c, model.LevelForStatus(status), "HTTP request")
		entry.StatusCode = status
		entry.Duration = latency.Milliseconds()

		log := logger.Logger()
		event := log.Info()
		switch entry.Level {
		case model.LogLevelError:
			event = log.Error()
		case model.LogLevelWarn:
			event = log.Warn()
		}
		event.
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Str("user_id", entry.UserID).
			Msg("HTTP request")

		sink.Log(entry)
	}
}

func newLogEntry(c *gin.Context, level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		UserID:    GetUserID(c),
		UserEmail: c.GetString(UserEmailKey),
	}
}
