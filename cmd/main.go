// Package main is the entry point for the balance-service application.
//
// @title           Balance Service API
// @version         1.0.0
// @description     API for spending a gift card balance as completely as possible on a catalog of items.
//
//	The optimizer buys mandatory items first, then picks the combination of optional items
//	whose total comes closest to the remaining balance without exceeding it.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/balance-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key, required when API_KEYS is set and JWT auth is off.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT access token.
//
// @tag.name        Optimize
// @tag.description Budget optimization
//
// @tag.name        Lists
// @tag.description Saved item lists
//
// @tag.name        Auth
// @tag.description Registration and login
//
// @tag.name        Logs
// @tag.description Request and audit log of the authenticated user
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	_ "github.com/guttosm/balance-service/docs" // swagger docs

	"github.com/guttosm/balance-service/config"
	"github.com/guttosm/balance-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load .env")
	}
	cfg := config.Load()

	a := app.InitializeApp(cfg)
	server := app.NewServer(a.Router, cfg.Server)

	runErr := server.Run(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = a.Close(ctx)

	if runErr != nil {
		log.Fatal().Err(runErr).Msg("Server error")
	}
}
