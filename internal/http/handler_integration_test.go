//go:build integration

package http

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/circuitbreaker"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type integrationStack struct {
	router *gin.Engine
	logs   service.LoggingService
	audit  *middleware.AsyncLogger
}

// setupIntegrationStack wires the router to MongoDB-backed services, with
// JWT auth when withAuth is set.
func setupIntegrationStack(t *testing.T, withAuth bool) *integrationStack {
	t.Helper()
	db := setupIntegrationDB(t)

	optimizer := service.NewBalanceOptimizerService(service.WithCache(100, 5*time.Minute))
	breaker := circuitbreaker.New(circuitbreaker.Config{FailureThreshold: 3, SuccessThreshold: 1, Timeout: time.Second, Name: "saved-lists"})
	lists := service.NewSavedListsService(
		repository.NewSavedListsRepositoryWithCircuitBreaker(repository.NewSavedListsRepository(db), breaker),
		optimizer,
	)
	logs := service.NewLoggingService(repository.NewLogsRepository(db))
	audit := middleware.NewAsyncLogger(logs, middleware.AsyncLoggerConfig{FlushInterval: 50 * time.Millisecond})
	t.Cleanup(audit.Stop)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))
	health.RegisterCircuitBreaker(breaker)

	cfg := DefaultRouterConfig()
	cfg.AuditLogger = audit
	cfg.SavedListsHandler = NewSavedListsHandler(lists, optimizer, WithAuditLogger(audit))
	if withAuth {
		cfg.AuthService = service.NewAuthService(repository.NewUserRepository(db), config.AuthConfig{
			Enabled:        true,
			JWTSecretKey:   "integration-secret-key-with-enough-bytes",
			AccessTokenTTL: 15 * time.Minute,
		})
	}

	return &integrationStack{
		router: NewRouter(NewHandler(optimizer, WithAuditLogger(audit)), health, cfg),
		logs:   logs,
		audit:  audit,
	}
}

func TestIntegration_Optimize_Examples(t *testing.T) {
	stack := setupIntegrationStack(t, false)

	tests := []struct {
		name      string
		budget    int
		items     string
		wantKind  model.MatchKind
		wantSpent int
	}{
		{name: "mandatory overflow", budget: 100, items: `[{"id": "m", "name": "M", "unit_price_minor_units": 50, "mandatory_quantity": 3}]`, wantKind: model.MatchNoSolution},
		{name: "exact single item", budget: 428, items: `[{"id": "c", "name": "C", "unit_price_minor_units": 428}]`, wantKind: model.MatchPerfect, wantSpent: 428},
		{name: "exact multi unit", budget: 1284, items: `[{"id": "c", "name": "C", "unit_price_minor_units": 428}]`, wantKind: model.MatchPerfect, wantSpent: 1284},
		{name: "partial", budget: 500, items: `[{"id": "s", "name": "S", "unit_price_minor_units": 323}]`, wantKind: model.MatchPartial, wantSpent: 323},
		{name: "too expensive", budget: 100, items: `[{"id": "a", "name": "A", "unit_price_minor_units": 410}, {"id": "b", "name": "B", "unit_price_minor_units": 323}]`, wantKind: model.MatchNoSolution},
		{name: "zero priced ignored", budget: 300, items: `[{"id": "z", "name": "Z", "unit_price_minor_units": 0}, {"id": "p", "name": "P", "unit_price_minor_units": 300}]`, wantKind: model.MatchPerfect, wantSpent: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"budget_minor_units": ` + strconv.Itoa(tt.budget) + `, "items": ` + tt.items + `}`
			w := serve(stack.router, http.MethodPost, "/api/optimize", body, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decodeData[dto.OptimizationResponse](t, w)
			assert.Equal(t, tt.wantKind, resp.Match.Kind)
			assert.Equal(t, tt.wantSpent, resp.TotalSpentMinorUnits)
			assert.Equal(t, tt.budget-tt.wantSpent, resp.RemainingMinorUnits)
		})
	}
}

func TestIntegration_SavedListsLifecycle(t *testing.T) {
	stack := setupIntegrationStack(t, false)
	router := stack.router

	w := serve(router, http.MethodPost, "/api/lists", `{"name": "Coffee shop", "items": [
		{"id": "latte", "name": "Latte", "price": "4.28"},
		{"id": "tip", "name": "Tip", "price": "1.00", "mandatory_quantity": 1}]}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeData[dto.SavedListResponse](t, w)
	require.NotEmpty(t, created.ID)
	path := "/api/lists/" + created.ID

	t.Run("get", func(t *testing.T) {
		w := serve(router, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[dto.SavedListResponse](t, w)
		assert.Equal(t, "Coffee shop", got.Name)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "latte", got.Items[0].ID)
	})

	t.Run("list", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/lists", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, decodeData[dto.SavedListsResponse](t, w).Count)
	})

	t.Run("optimize", func(t *testing.T) {
		// 100 mandatory + 2 * 428 = 956 of 1000
		w := serve(router, http.MethodPost, path+"/optimize", `{"budget": "10.00"}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeData[dto.OptimizationResponse](t, w)
		assert.Equal(t, model.MatchPartial, resp.Match.Kind)
		assert.Equal(t, 956, resp.TotalSpentMinorUnits)
	})

	t.Run("optimize rejection", func(t *testing.T) {
		w := serve(router, http.MethodPost, path+"/optimize", `{"budget_minor_units": 0}`, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := serve(router, http.MethodPut, path, `{"name": "Bakery", "items": [{"id": "bread", "name": "Bread", "price": "2.50"}]}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decodeData[dto.SavedListResponse](t, w)
		assert.Equal(t, "Bakery", got.Name)
		require.Len(t, got.Items, 1)
	})

	t.Run("delete", func(t *testing.T) {
		w := serve(router, http.MethodDelete, path, "", nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = serve(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = serve(router, http.MethodDelete, path, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/lists/not-an-object-id", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("audit entries are stored", func(t *testing.T) {
		stack.audit.Stop()
		ctx := context.Background()

		for _, action := range []string{model.ActionCreateList, model.ActionOptimizeList, model.ActionUpdateList, model.ActionDeleteList} {
			n, err := stack.logs.CountLogs(ctx, model.LogQueryOptions{ActionType: action})
			require.NoError(t, err)
			assert.Positive(t, n, action)
		}

		requests, err := stack.logs.QueryLogs(ctx, model.LogQueryOptions{Path: "/api/lists"})
		require.NoError(t, err)
		assert.NotEmpty(t, requests)
	})
}

func TestIntegration_Readiness(t *testing.T) {
	stack := setupIntegrationStack(t, false)

	w := serve(stack.router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
	assert.Contains(t, w.Body.String(), `"saved-lists_circuit":"closed"`)
}
