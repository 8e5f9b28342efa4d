package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/logger"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/service"
)

const (
	// DefaultMaxCatalogItems bounds the items accepted in one request.
	DefaultMaxCatalogItems = 200
	// DefaultCurrencySymbol prefixes formatted amounts.
	DefaultCurrencySymbol = "$"
)

// Handler serves the stateless optimize endpoint.
type Handler struct {
	optimizer service.BalanceOptimizer
	symbol    string
	maxItems  int
	audit     *middleware.AsyncLogger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCurrencySymbol sets the symbol used in formatted amounts.
func WithCurrencySymbol(symbol string) HandlerOption {
	return func(h *Handler) {
		h.symbol = symbol
	}
}

// WithMaxCatalogItems bounds the number of items per request.
func WithMaxCatalogItems(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxItems = n
		}
	}
}

// WithAuditLogger records optimize calls in the audit log.
func WithAuditLogger(al *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.audit = al
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(optimizer service.BalanceOptimizer, opts ...HandlerOption) *Handler {
	h := &Handler{
		optimizer: optimizer,
		symbol:    DefaultCurrencySymbol,
		maxItems:  DefaultMaxCatalogItems,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Optimize handles POST /api/optimize requests.
//
// @Summary      Spend a balance
// @Description  Picks item quantities whose total is as close as possible to the budget without exceeding it. Mandatory quantities are bought first; the rest of the budget goes to the remaining items. Items with a zero price never appear in the result. Supports idempotency via Idempotency-Key header.
// @Tags         Optimize
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Accept-Language header string false "Response language (en, pt, nl)"
// @Param        request body dto.OptimizeRequest true "Budget and catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.OptimizationResponse} "Optimization result, including no_solution"
// @Failure      400 {object} dto.ErrorResponse "Malformed body, bad amount text, duplicate item ids"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid API key"
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      422 {object} dto.ErrorResponse "Invalid balance, balance above maximum or no priced item"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      504 {object} dto.ErrorResponse "Request timeout"
// @Security     ApiKeyAuth
// @Router       /api/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.OptimizeRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	if len(req.Items) > h.maxItems {
		builder.Errorf(http.StatusBadRequest, i18n.ErrKeyTooManyItems, nil, h.maxItems)
		return
	}

	input, err := req.ToInput()
	if err != nil {
		builder.CatalogError(err)
		return
	}

	type outcome struct {
		result model.OptimizationResult
		ok     bool
	}
	start := time.Now()
	out, err := middleware.WaitFor(c.Request.Context(), func() outcome {
		r, ok := h.optimizer.Optimize(input)
		return outcome{r, ok}
	})
	if err != nil {
		// Timeout middleware answers
		return
	}

	if !out.ok {
		rejection := h.optimizer.Validate(input)
		middleware.AuditLog(h.audit, c, model.ActionOptimize, "optimization rejected", map[string]any{
			"budget_minor_units": input.BudgetMinorUnits,
			"items":              len(input.Items),
			"rejection":          string(rejection),
		})
		writeRejection(builder, rejection, h.optimizer.MaxBudgetMinorUnits(), h.symbol)
		return
	}

	logger.Logger().Debug().
		Str("request_id", middleware.GetRequestID(c)).
		Int("budget_minor_units", input.BudgetMinorUnits).
		Int("items", len(input.Items)).
		Str("match", string(out.result.MatchQuality.Kind)).
		Dur("duration", time.Since(start)).
		Msg("optimization finished")

	middleware.AuditLog(h.audit, c, model.ActionOptimize, "optimization finished", map[string]any{
		"budget_minor_units":    input.BudgetMinorUnits,
		"items":                 len(input.Items),
		"match":                 string(out.result.MatchQuality.Kind),
		"remaining_minor_units": out.result.RemainingMinorUnits(),
	})

	builder.SuccessOK(dto.NewOptimizationResponse(out.result, h.symbol, i18n.GetLocale(c)))
}

// writeRejection answers 422 with the reason-specific message.
func writeRejection(builder *ResponseBuilder, rejection service.Rejection, ceiling int, symbol string) {
	switch rejection {
	case service.RejectionBudgetTooLarge:
		builder.Errorf(http.StatusUnprocessableEntity, i18n.ErrKeyBalanceTooLarge, nil,
			currency.FormatCurrency(ceiling, symbol))
	case service.RejectionNoPricedItems:
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyNoPricedItems, nil)
	default:
		builder.Error(http.StatusUnprocessableEntity, i18n.ErrKeyInvalidBalance, nil)
	}
}
