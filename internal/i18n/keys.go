// Package i18n provides internationalization support for the balance service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyInvalidCredentials indicates invalid login credentials.
	ErrKeyInvalidCredentials = "error.invalid_credentials"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates storage is not configured or unreachable.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyBodyTooLarge indicates a request body over the configured limit.
	ErrKeyBodyTooLarge = "error.body_too_large"
)

// Optimizer input rejection keys.
const (
	ErrKeyInvalidBalance   = "error.validation.invalid_balance"
	ErrKeyBalanceTooLarge  = "error.validation.balance_too_large"
	ErrKeyNoPricedItems    = "error.validation.no_priced_items"
	ErrKeyInvalidAmount    = "error.validation.invalid_amount"
	ErrKeyDuplicateItemID  = "error.validation.duplicate_item_id"
	ErrKeyTooManyItems     = "error.validation.too_many_items"
	ErrKeyMissingItemPrice = "error.validation.missing_item_price"
)

// Match quality labels and summaries shown with an optimization result.
const (
	LabelKeyPerfect    = "match.perfect.label"
	LabelKeyPartial    = "match.partial.label"
	LabelKeyNoSolution = "match.no_solution.label"

	SummaryKeyPerfect    = "match.perfect.summary"
	SummaryKeyPartial    = "match.partial.summary"
	SummaryKeyNoSolution = "match.no_solution.summary"
)

// Column and total labels of the balancectl text report.
const (
	ReportKeyItem      = "report.item"
	ReportKeyQuantity  = "report.quantity"
	ReportKeyUnit      = "report.unit"
	ReportKeyTotal     = "report.total"
	ReportKeyBudget    = "report.budget"
	ReportKeySpent     = "report.spent"
	ReportKeyRemaining = "report.remaining"
)
