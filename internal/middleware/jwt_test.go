package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/mocks"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestJWTAuth(t *testing.T) {
	claims := &dto.Claims{UserID: "6650f1c2a1b2c3d4e5f60718", Email: "ana@example.com", Name: "Ana"}

	tests := []struct {
		name           string
		authHeader     string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedUserID string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("ValidateToken", mock.Anything, "good-token").Return(claims, nil)
			},
			expectedStatus: http.StatusOK,
			expectedUserID: claims.UserID,
		},
		{
			name:           "missing header",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic dXNlcjpwYXNz",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty bearer token",
			authHeader:     "Bearer   ",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer expired",
			setupMocks: func(m *mocks.MockAuthService) {
				m.On("ValidateToken", mock.Anything, "expired").Return(nil, service.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(mocks.MockAuthService)
			tt.setupMocks(authService)

			router := gin.New()
			router.Use(JWTAuth(authService))
			var userID string
			var gotClaims bool
			router.GET("/protected", func(c *gin.Context) {
				userID = GetUserID(c)
				_, gotClaims = GetClaims(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedUserID, userID)
			assert.Equal(t, tt.expectedUserID != "", gotClaims)
			authService.AssertExpectations(t)
		})
	}
}

func TestGetUserID_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetUserID(c))
	_, ok := GetClaims(c)
	assert.False(t, ok)
}
