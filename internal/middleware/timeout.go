package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/i18n"
)

// DefaultRequestTimeout is used when Timeout is given a non-positive duration.
const DefaultRequestTimeout = 5 * time.Second

// Timeout puts a deadline on the request context. Handlers stop waiting for
// their work when the context is done and return without writing; this
// middleware then answers 504. Work already started is not interrupted.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() {
			return
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			AbortWithError(c, http.StatusGatewayTimeout, i18n.ErrKeyTimeout)
		}
	}
}

// WaitFor runs fn in its own goroutine and waits for it or for ctx, whichever
// finishes first. fn must not touch the gin context.
func WaitFor[T any](ctx context.Context, fn func() T) (T, error) {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()

	select {
	case v := <-ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
