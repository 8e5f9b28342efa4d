package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the request header carrying the client's key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long successful responses are replayed.
	IdempotencyKeyTTL = 5 * time.Minute
	// DefaultIdempotencyMaxEntries bounds the replay cache.
	DefaultIdempotencyMaxEntries = 10_000
)

// Idempotency replays the first successful response of a POST or PUT that
// carries an Idempotency-Key. The replay key covers the client key, the
// authenticated user, the method, the path and the body, so the same key
// with a different payload is treated as a new request.
type Idempotency struct {
	cache *idempotencyCache
}

// NewIdempotency creates the middleware with its own replay cache.
func NewIdempotency(ttl time.Duration, maxEntries int) *Idempotency {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &Idempotency{cache: newIdempotencyCache(ttl, maxEntries)}
}

// Handler returns the gin middleware.
func (i *Idempotency) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut {
			c.Next()
			return
		}
		clientKey := c.GetHeader(IdempotencyKeyHeader)
		if clientKey == "" {
			c.Next()
			return
		}

		key, err := replayKey(clientKey, GetUserID(c), c.Request)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				AbortWithError(c, http.StatusRequestEntityTooLarge, i18n.ErrKeyBodyTooLarge)
				return
			}
			AbortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		if cached, ok := i.cache.Get(key); ok {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 && writer.body.Len() > 0 {
			i.cache.Set(key, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        bytes.Clone(writer.body.Bytes()),
			})
		}
	}
}

func replayKey(clientKey, userID string, req *http.Request) (string, error) {
	h := sha256.New()
	for _, part := range []string{clientKey, userID, req.Method, req.URL.Path} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// captureWriter tees the response body into a buffer.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
