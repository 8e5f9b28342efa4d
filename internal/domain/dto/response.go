package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/i18n"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeUnprocessable indicates the optimizer refused the input.
	ErrCodeUnprocessable = "unprocessable_input"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency is not available.
	ErrCodeUnavailable = "service_unavailable"
	// ErrCodePayloadTooLarge indicates a request body over the size limit.
	ErrCodePayloadTooLarge = "payload_too_large"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"unprocessable_input"`
	Message string `json:"message,omitempty" example:"Please enter a valid card balance."`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	default:
		return ErrCodeInternal
	}
}

// MatchResponse describes how closely the result exhausts the budget.
type MatchResponse struct {
	Kind                model.MatchKind `json:"kind" example:"partial"`
	RemainingMinorUnits int             `json:"remaining_minor_units" example:"177"`
	Label               string          `json:"label" example:"Best Possible"`
	Summary             string          `json:"summary" example:"This is the closest combination. Your card will still have $1.77 remaining."`
} // @name MatchResponse

// AllocationResponse is one purchase line.
type AllocationResponse struct {
	ItemID              string `json:"item_id" example:"coffee"`
	Name                string `json:"name" example:"Coffee"`
	UnitPriceMinorUnits int    `json:"unit_price_minor_units" example:"428"`
	UnitPrice           string `json:"unit_price" example:"$4.28"`
	Quantity            int    `json:"quantity" example:"3"`
	TotalMinorUnits     int    `json:"total_minor_units" example:"1284"`
	Total               string `json:"total" example:"$12.84"`
	Mandatory           bool   `json:"mandatory" example:"false"`
} // @name AllocationResponse

// OptimizationResponse is the rendered optimization result.
//
// @Description Optimization result with formatted amounts and a localized summary
type OptimizationResponse struct {
	BudgetMinorUnits     int                  `json:"budget_minor_units" example:"500"`
	Budget               string               `json:"budget" example:"$5.00"`
	TotalSpentMinorUnits int                  `json:"total_spent_minor_units" example:"323"`
	TotalSpent           string               `json:"total_spent" example:"$3.23"`
	RemainingMinorUnits  int                  `json:"remaining_minor_units" example:"177"`
	Remaining            string               `json:"remaining" example:"$1.77"`
	Match                MatchResponse        `json:"match"`
	Allocations          []AllocationResponse `json:"allocations"`
} // @name OptimizationResponse

// NewOptimizationResponse renders result with the currency symbol and the
// locale's label and summary.
func NewOptimizationResponse(result model.OptimizationResult, symbol, locale string) OptimizationResponse {
	tr := i18n.GetTranslator()
	remaining := result.RemainingMinorUnits()
	spent := result.TotalSpentMinorUnits()

	match := MatchResponse{Kind: result.MatchQuality.Kind}
	switch result.MatchQuality.Kind {
	case model.MatchPerfect:
		match.Label = tr.Translate(i18n.LabelKeyPerfect, locale)
		match.Summary = tr.Translatef(i18n.SummaryKeyPerfect, locale, currency.FormatCurrency(0, symbol))
	case model.MatchPartial:
		match.RemainingMinorUnits = result.MatchQuality.RemainingMinorUnits
		match.Label = tr.Translate(i18n.LabelKeyPartial, locale)
		match.Summary = tr.Translatef(i18n.SummaryKeyPartial, locale, currency.FormatCurrency(remaining, symbol))
	default:
		match.RemainingMinorUnits = remaining
		match.Label = tr.Translate(i18n.LabelKeyNoSolution, locale)
		match.Summary = tr.Translate(i18n.SummaryKeyNoSolution, locale)
	}

	allocations := make([]AllocationResponse, 0, len(result.SelectedAllocations))
	for _, a := range result.SelectedAllocations {
		allocations = append(allocations, AllocationResponse{
			ItemID:              a.Item.ID,
			Name:                a.Item.Name,
			UnitPriceMinorUnits: a.Item.UnitPriceMinorUnits,
			UnitPrice:           currency.FormatCurrency(a.Item.UnitPriceMinorUnits, symbol),
			Quantity:            a.Quantity,
			TotalMinorUnits:     a.TotalMinorUnits(),
			Total:               currency.FormatCurrency(a.TotalMinorUnits(), symbol),
			Mandatory:           a.Item.IsMandatory(),
		})
	}

	return OptimizationResponse{
		BudgetMinorUnits:     result.BudgetMinorUnits,
		Budget:               currency.FormatCurrency(result.BudgetMinorUnits, symbol),
		TotalSpentMinorUnits: spent,
		TotalSpent:           currency.FormatCurrency(spent, symbol),
		RemainingMinorUnits:  remaining,
		Remaining:            currency.FormatCurrency(remaining, symbol),
		Match:                match,
		Allocations:          allocations,
	}
}
