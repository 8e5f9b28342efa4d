package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIKeyAuth(t *testing.T) {
	keys := map[string]bool{"k1": true}

	tests := []struct {
		name           string
		validKeys      map[string]bool
		header         string
		query          string
		expectedStatus int
	}{
		{name: "disabled without keys", validKeys: nil, expectedStatus: http.StatusOK},
		{name: "valid header", validKeys: keys, header: "k1", expectedStatus: http.StatusOK},
		{name: "valid query", validKeys: keys, query: "k1", expectedStatus: http.StatusOK},
		{name: "missing key", validKeys: keys, expectedStatus: http.StatusUnauthorized},
		{name: "unknown key", validKeys: keys, header: "nope", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(APIKeyAuth(tt.validKeys))
			router.GET("/api/optimize", func(c *gin.Context) { c.Status(http.StatusOK) })

			target := "/api/optimize"
			if tt.query != "" {
				target += "?" + APIKeyQuery + "=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
