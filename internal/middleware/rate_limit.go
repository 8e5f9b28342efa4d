package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitKeyPrefix = "balance:ratelimit"

// RateLimiter is a fixed-window request limiter keyed by client IP or user.
type RateLimiter struct {
	limiter *limiter.Limiter
}

// NewRateLimiter limits each identifier to rate requests per window using store.
func NewRateLimiter(store limiter.Store, rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiter: limiter.New(store, limiter.Rate{Period: window, Limit: int64(rate)}),
	}
}

// NewMemoryRateLimiter keeps counters in process memory.
func NewMemoryRateLimiter(rate int, window time.Duration) *RateLimiter {
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          rateLimitKeyPrefix,
		CleanUpInterval: time.Minute,
	})
	return NewRateLimiter(store, rate, window)
}

// NewRedisRateLimiter shares counters between instances through Redis.
func NewRedisRateLimiter(client *redis.Client, rate int, window time.Duration) (*RateLimiter, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: rateLimitKeyPrefix,
	})
	if err != nil {
		return nil, err
	}
	return NewRateLimiter(store, rate, window), nil
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

// UserRateLimit limits requests per authenticated user, falling back to the
// client IP for anonymous requests.
func (rl *RateLimiter) UserRateLimit() gin.HandlerFunc {
	return rl.handler(func(c *gin.Context) string {
		if id := GetUserID(c); id != "" {
			return "user:" + id
		}
		return "user-ip:" + c.ClientIP()
	})
}

func (rl *RateLimiter) handler(identify func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lctx, err := rl.limiter.Get(c.Request.Context(), identify(c))
		if err != nil {
			// fail open
			logger.Logger().Warn().Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("rate limiter store unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			retry := time.Until(time.Unix(lctx.Reset, 0))
			if retry < time.Second {
				retry = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(retry.Seconds())))
			AbortWithError(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
			return
		}
		c.Next()
	}
}
