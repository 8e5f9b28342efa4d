package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/guttosm/balance-service/internal/metrics"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimitRedis shares rate limit counters between instances; nil keeps
	// them in memory.
	RateLimitRedis *redis.Client
	RequestTimeout time.Duration
	// MaxBodyBytes caps /api request bodies; 0 means 1 MiB.
	MaxBodyBytes      int64
	APIKeys           map[string]bool
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	AuditLogger       *middleware.AsyncLogger
	// AuthService enables JWT login and scopes saved lists per user.
	AuthService service.AuthService
	// SavedListsHandler is nil when saved lists are not served.
	SavedListsHandler *SavedListsHandler
	// LogsHandler serves GET /api/logs. It is registered only with AuthService.
	LogsHandler *LogsHandler
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		MaxBodyBytes:      middleware.DefaultMaxBodyBytes,
		EnableIdempotency: true,
		CORSOrigins:       []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

// RegisterValidators installs the custom binding rules on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation(dto.MoneyTextTag, dto.ValidateMoneyText)
}

// NewRouter creates and configures the Gin router for the balance service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	if err := RegisterValidators(); err != nil {
		logger.Logger().Error().Err(err).Msg("failed to register binding validators")
	}

	router := gin.New()
	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	// idempotency must follow authentication; replay keys include the user
	idempotent := api.Group("", idempotencyMiddleware(&cfg)...)
	NewOptimizeRoutes(handler, cfg.RequestTimeout).RegisterPublicRoutes(idempotent)

	if cfg.AuthService != nil {
		registerAuthenticatedRoutes(api, &cfg)
	} else if cfg.SavedListsHandler != nil {
		NewListRoutes(cfg.SavedListsHandler, cfg.RequestTimeout).RegisterPublicRoutes(idempotent)
	}

	return router
}

func newRateLimiter(cfg *RouterConfig) *middleware.RateLimiter {
	if cfg.RateLimit <= 0 {
		return nil
	}
	if cfg.RateLimitRedis != nil {
		rl, err := middleware.NewRedisRateLimiter(cfg.RateLimitRedis, cfg.RateLimit, cfg.RateWindow)
		if err == nil {
			return rl
		}
		logger.Logger().Warn().Err(err).Msg("redis rate limiter unavailable, using in-memory counters")
	}
	return middleware.NewMemoryRateLimiter(cfg.RateLimit, cfg.RateWindow)
}

func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditLogger),
		middleware.ErrorHandler(),
	)

	if limiter := newRateLimiter(cfg); limiter != nil {
		router.Use(limiter.RateLimit())
	}
}

func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

func idempotencyMiddleware(cfg *RouterConfig) []gin.HandlerFunc {
	if !cfg.EnableIdempotency {
		return nil
	}
	return []gin.HandlerFunc{
		middleware.NewIdempotency(middleware.IdempotencyKeyTTL, middleware.DefaultIdempotencyMaxEntries).Handler(),
	}
}

func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	api.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	// API keys guard the API when JWT auth is off
	if cfg.AuthService == nil && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.AuthService, cfg.AuditLogger)
	authRoutes.RegisterPublicRoutes(api)

	if cfg.SavedListsHandler == nil && cfg.LogsHandler == nil {
		return
	}
	protected := authRoutes.ProtectedGroup(api, newRateLimiter(cfg))
	if cfg.LogsHandler != nil {
		NewLogRoutes(cfg.LogsHandler, cfg.RequestTimeout).RegisterProtectedRoutes(protected)
	}
	if cfg.SavedListsHandler != nil {
		lists := protected.Group("", idempotencyMiddleware(cfg)...)
		NewListRoutes(cfg.SavedListsHandler, cfg.RequestTimeout).RegisterProtectedRoutes(lists)
	}
}
