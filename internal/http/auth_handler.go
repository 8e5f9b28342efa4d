package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/balance-service/internal/domain/dto"
	"github.com/guttosm/balance-service/internal/domain/model"
	"github.com/guttosm/balance-service/internal/i18n"
	"github.com/guttosm/balance-service/internal/middleware"
	"github.com/guttosm/balance-service/internal/service"
)

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
	audit       *middleware.AsyncLogger
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService service.AuthService, audit *middleware.AsyncLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
	}
}

func newLoginResponse(s *service.Session) dto.LoginResponse {
	return dto.LoginResponse{
		Token:     s.Token,
		ExpiresIn: int64(s.ExpiresIn.Seconds()),
		User: dto.UserResponse{
			ID:    s.User.ID.Hex(),
			Email: s.User.Email,
			Name:  s.User.Name,
		},
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates a user and returns a JWT access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.LoginRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionLogin, "login failed", err, map[string]any{
			"email": req.Email,
		})
		if errors.Is(err, service.ErrInvalidCredentials) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, nil)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set(middleware.UserIDKey, session.User.ID.Hex())
	c.Set(middleware.UserEmailKey, session.User.Email)
	middleware.AuditLog(h.audit, c, model.ActionLogin, "user logged in", nil)

	builder.SuccessOK(newLoginResponse(session))
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register new user
// @Description  Creates a new user account and returns a JWT access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - user already exists"
// @Failure      413 {object} dto.ErrorResponse "Request body too large"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.RegisterRequest](c)
	if err != nil {
		builder.BindError(err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	session, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			middleware.AuditLogError(h.audit, c, model.ActionRegister, "registration rejected", err, map[string]any{
				"email": req.Email,
			})
			builder.Error(http.StatusConflict, i18n.ErrKeyConflict, nil)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.Set(middleware.UserIDKey, session.User.ID.Hex())
	c.Set(middleware.UserEmailKey, session.User.Email)
	middleware.AuditLog(h.audit, c, model.ActionRegister, "user registered", nil)

	builder.SuccessCreated(newLoginResponse(session))
}
