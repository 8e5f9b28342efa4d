package app

import (
	"errors"
	"fmt"

	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/repository"
	"github.com/guttosm/balance-service/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	placeholderJWTSecret = "your-secret-key-change-in-production"
	minJWTSecretLength   = 32
)

var (
	errPlaceholderJWTSecret = errors.New("JWT_SECRET_KEY is the built-in placeholder")
	errShortJWTSecret       = fmt.Errorf("JWT_SECRET_KEY is shorter than %d bytes", minJWTSecretLength)
)

// initializeAuth returns the JWT auth service, or nil when auth is disabled or
// there is no user store. Without it the router falls back to API keys.
func initializeAuth(cfg config.AuthConfig, users repository.UserRepositoryInterface) service.AuthService {
	if !cfg.Enabled {
		return nil
	}
	if users == nil {
		log.Warn().Msg("AUTH_ENABLED is set but MongoDB is unavailable - JWT routes are disabled")
		return nil
	}
	if err := checkJWTSecret(cfg.JWTSecretKey); err != nil {
		log.Warn().Err(err).Msg("Weak JWT secret; generate one with scripts/generate_keys.go")
	}

	log.Info().Dur("access_token_ttl", cfg.AccessTokenTTL).Msg("JWT authentication enabled")
	return service.NewAuthService(users, cfg)
}

func checkJWTSecret(secret string) error {
	switch {
	case secret == placeholderJWTSecret:
		return errPlaceholderJWTSecret
	case len(secret) < minJWTSecretLength:
		return errShortJWTSecret
	default:
		return nil
	}
}
