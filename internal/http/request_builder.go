package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/balance-service/internal/currency"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/middleware"
)

var successResponsePool = sync.Pool{
	New: func() any { return &dto.SuccessResponse{} },
}

// BindJSON decodes and validates the request body into a new T.
func BindJSON[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResponseBuilder writes the service's success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data any) {
	resp, _ := successResponsePool.Get().(*dto.SuccessResponse)
	if resp == nil {
		resp = &dto.SuccessResponse{}
	}
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now().UTC()

	// rendering is synchronous, so resp can go back right after
	b.c.JSON(statusCode, resp)

	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data any) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data any) {
	b.Success(http.StatusCreated, data)
}

// NoContent sends a bare 204.
func (b *ResponseBuilder) NoContent() {
	b.c.Status(http.StatusNoContent)
}

// Error sends a translated error for messageKey. err, when non-nil, is
// attached to the context so ErrorHandler logs it.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.ErrorWithMessage(statusCode, i18n.GetTranslator().Translate(messageKey, b.locale()), err)
}

// Errorf is Error for messages with format arguments.
func (b *ResponseBuilder) Errorf(statusCode int, messageKey string, err error, args ...any) {
	b.ErrorWithMessage(statusCode, i18n.GetTranslator().Translatef(messageKey, b.locale(), args...), err)
}

// ErrorWithMessage sends an error response with an already rendered message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, dto.NewError(dto.ErrCodeFromStatus(statusCode), message), err)
}

// BindError answers a failed BindJSON with 400, or 413 when the body hit
// the size limit. Field errors are listed in Details; bad money text gets
// the dedicated amount message.
func (b *ResponseBuilder) BindError(err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyBodyTooLarge, nil)
		return
	}

	key := i18n.ErrKeyInvalidRequestBody
	var details map[string]string

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Namespace()] = fe.Tag()
			if fe.Tag() == dto.MoneyTextTag {
				key = i18n.ErrKeyInvalidAmount
			}
		}
	}

	resp := dto.NewError(dto.ErrCodeInvalidRequest, i18n.GetTranslator().Translate(key, b.locale()))
	resp.Details = details
	b.abort(http.StatusBadRequest, resp, err)
}

// CatalogError answers a failed catalog conversion with 400.
func (b *ResponseBuilder) CatalogError(err error) {
	switch {
	case errors.Is(err, dto.ErrDuplicateItemID):
		b.Error(http.StatusBadRequest, i18n.ErrKeyDuplicateItemID, nil)
	case errors.Is(err, dto.ErrMissingItemPrice):
		b.Error(http.StatusBadRequest, i18n.ErrKeyMissingItemPrice, nil)
	case errors.Is(err, currency.ErrInvalidAmount), errors.Is(err, currency.ErrAmountTooLarge):
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidAmount, nil)
	default:
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
	}
}

func (b *ResponseBuilder) abort(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp.WithRequestID(middleware.GetRequestID(b.c)))
}

func (b *ResponseBuilder) locale() string {
	return i18n.GetLocale(b.c)
}
