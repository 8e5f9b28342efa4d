package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "unhandled error becomes 500",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("mongo exploded"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
		},
		{
			name: "written response is left alone",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("logged only"))
				c.JSON(http.StatusUnprocessableEntity, dto.NewError(dto.ErrCodeUnprocessable, "nope"))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
		},
		{
			name: "no errors",
			handler: func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.GET("/test", tt.handler)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode == "" {
				return
			}
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestAbortWithError_TranslatesMessage(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		AbortWithError(c, http.StatusTooManyRequests, "error.rate_limit_exceeded")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, dto.ErrCodeRateLimit, resp.Error)
	assert.Equal(t, "Muitas requisições, tente novamente mais tarde", resp.Message)
	assert.Equal(t, "req-42", resp.RequestID)
}
