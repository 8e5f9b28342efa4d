package app

import (
	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/http"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/guttosm/balance-service/internal/service/cache"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, readiness checks and router configuration.
// dbComponents and audit may be nil; saved list routes then answer 503.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	audit *middleware.AsyncLogger,
	cfg config.Config,
) *RouterComponents {
	handlerOpts := []http.HandlerOption{
		http.WithCurrencySymbol(cfg.Optimizer.CurrencySymbol),
		http.WithMaxCatalogItems(cfg.Optimizer.MaxCatalogItems),
		http.WithAuditLogger(audit),
	}

	var (
		listsRepo repository.SavedListsRepositoryInterface
		userRepo  repository.UserRepositoryInterface
	)
	if dbComponents != nil {
		listsRepo = dbComponents.SavedListsRepo
		userRepo = dbComponents.UserRepo
	}
	lists := service.NewSavedListsService(listsRepo, services.Optimizer)

	var logsHandler *http.LogsHandler
	if dbComponents != nil && dbComponents.LoggingService != nil {
		logsHandler = http.NewLogsHandler(dbComponents.LoggingService)
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services.Optimizer, handlerOpts...),
		HealthHandler: newHealthHandler(services, dbComponents),
		Config: http.RouterConfig{
			RateLimit:         cfg.Server.RateLimit,
			RateWindow:        cfg.Server.RateWindow,
			RateLimitRedis:    services.Redis,
			RequestTimeout:    cfg.Server.RequestTimeout,
			MaxBodyBytes:      cfg.Server.MaxBodyBytes,
			APIKeys:           cfg.Auth.APIKeys,
			EnableIdempotency: true,
			CORSOrigins:       cfg.Server.CORSOrigins,
			SwaggerUser:       cfg.Server.SwaggerUser,
			SwaggerPass:       cfg.Server.SwaggerPass,
			AuditLogger:       audit,
			AuthService:       initializeAuth(cfg.Auth, userRepo),
			SavedListsHandler: http.NewSavedListsHandler(lists, services.Optimizer, handlerOpts...),
			LogsHandler:       logsHandler,
		},
	}
}

func newHealthHandler(services *ServiceComponents, dbComponents *DatabaseComponents) *http.HealthHandler {
	health := http.NewHealthHandler()

	if dbComponents != nil {
		health.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.DB.HealthCheck))
		health.RegisterCircuitBreaker(dbComponents.SavedListsCircuitBreaker)
		health.RegisterCircuitBreaker(dbComponents.LogsCircuitBreaker)
	}
	if redisCache, ok := services.Cache.(*cache.RedisCache); ok {
		health.RegisterChecker("redis", redisCache)
	}

	return health
}
