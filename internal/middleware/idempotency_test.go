package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func idempotentRouter(calls *int, status int) *gin.Engine {
	router := gin.New()
	router.Use(NewIdempotency(0, 0).Handler())
	handler := func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	}
	router.POST("/api/lists", handler)
	router.GET("/api/lists", handler)
	return router
}

func send(router *gin.Engine, method, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/lists", strings.NewReader(body))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccess(t *testing.T) {
	calls := 0
	router := idempotentRouter(&calls, http.StatusCreated)

	first := send(router, http.MethodPost, "k-1", `{"name":"coffee"}`)
	second := send(router, http.MethodPost, "k-1", `{"name":"coffee"}`)

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(IdempotencyReplayedHeader))
	assert.Contains(t, second.Header().Get("Content-Type"), "application/json")
}

func TestIdempotency_DistinguishesRequests(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		firstKey  string
		secondKey string
		body2     string
	}{
		{name: "no key", method: http.MethodPost},
		{name: "different key", method: http.MethodPost, firstKey: "a", secondKey: "b"},
		{name: "same key different body", method: http.MethodPost, firstKey: "a", secondKey: "a", body2: `{"name":"tea"}`},
		{name: "GET is never cached", method: http.MethodGet, firstKey: "a", secondKey: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			router := idempotentRouter(&calls, http.StatusOK)
			body2 := tt.body2
			if body2 == "" {
				body2 = `{"name":"coffee"}`
			}

			send(router, tt.method, tt.firstKey, `{"name":"coffee"}`)
			w := send(router, tt.method, tt.secondKey, body2)

			assert.Equal(t, 2, calls)
			assert.Empty(t, w.Header().Get(IdempotencyReplayedHeader))
		})
	}
}

func TestIdempotency_ErrorsAreNotCached(t *testing.T) {
	calls := 0
	router := idempotentRouter(&calls, http.StatusServiceUnavailable)

	send(router, http.MethodPost, "k", `{}`)
	send(router, http.MethodPost, "k", `{}`)

	assert.Equal(t, 2, calls)
}

func TestIdempotency_ScopedToUser(t *testing.T) {
	calls := 0
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(UserIDKey, c.GetHeader("X-Test-User"))
		c.Next()
	}, NewIdempotency(0, 0).Handler())
	router.POST("/api/lists", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"owner": GetUserID(c)})
	})

	for _, user := range []string{"alice", "bob"} {
		req := httptest.NewRequest(http.MethodPost, "/api/lists", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "shared")
		req.Header.Set("X-Test-User", user)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestIdempotency_UnreadableBody(t *testing.T) {
	tests := []struct {
		name       string
		body       func(w http.ResponseWriter) io.ReadCloser
		wantStatus int
	}{
		{
			name: "body over the size limit",
			body: func(w http.ResponseWriter) io.ReadCloser {
				return http.MaxBytesReader(w, io.NopCloser(strings.NewReader(`{"name":"coffee"}`)), 4)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "read failure",
			body:       func(http.ResponseWriter) io.ReadCloser { return io.NopCloser(failingReader{}) },
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			router := idempotentRouter(&calls, http.StatusCreated)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/lists", nil)
			req.Header.Set(IdempotencyKeyHeader, "k-1")
			req.Body = tt.body(w)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, 0, calls)
		})
	}
}
