package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingSink returns an AsyncLogger whose persisted entries are collected
// in the returned slice once the logger is stopped.
func recordingSink(t *testing.T) (*AsyncLogger, *[]*model.LogEntry) {
	t.Helper()
	var entries []*model.LogEntry
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			entries = append(entries, args.Get(1).([]*model.LogEntry)...)
		}).
		Return(nil)
	return NewAsyncLogger(svc, AsyncLoggerConfig{FlushInterval: time.Hour}), &entries
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{name: "success is info", status: http.StatusOK, expectedLevel: model.LogLevelInfo},
		{name: "rejection is warn", status: http.StatusUnprocessableEntity, expectedLevel: model.LogLevelWarn},
		{name: "server error is error", status: http.StatusServiceUnavailable, expectedLevel: model.LogLevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, entries := recordingSink(t)

			router := gin.New()
			router.Use(RequestID(), RequestLogger(sink))
			router.POST("/api/optimize", func(c *gin.Context) {
				c.Set(UserIDKey, "user-1")
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/optimize", nil)
			req.Header.Set(RequestIDHeader, "req-1")
			req.Header.Set("User-Agent", "balance-test")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			sink.Stop()

			require.Len(t, *entries, 1)
			entry := (*entries)[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, tt.status, entry.StatusCode)
			assert.Equal(t, "req-1", entry.RequestID)
			assert.Equal(t, http.MethodPost, entry.Method)
			assert.Equal(t, "/api/optimize", entry.Path)
			assert.Equal(t, "balance-test", entry.UserAgent)
			assert.Equal(t, "user-1", entry.UserID)
		})
	}
}

func TestRequestLogger_NilSink(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(nil))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
