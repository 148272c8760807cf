// Package main is the entry point for the load-optimizer service.
//
// @title           Load Optimizer API
// @version         1.0.0
// @description     Selects the most profitable set of compatible orders that fits a truck.
//
//	Orders must share a lane, have overlapping time windows and agree on hazmat. The search is exact.
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/guttosm/load-optimizer
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
// @description                 API key. Required when authentication is enabled without a JWT secret.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 "Bearer <token>". Tokens are issued with loadctl token.
//
// @tag.name        Optimization
// @tag.description Truck load optimization
//
// @tag.name        Audit
// @tag.description Stored request and optimization log
//
// @tag.name        Info
// @tag.description Service information
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	_ "github.com/guttosm/load-optimizer/docs" // swagger docs

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/app"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	application, err := app.InitializeApp(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize application")
	}
	if envErr != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}

	server := app.NewServer(application.Router, cfg.Server.Port,
		app.WithWriteTimeout(cfg.Server.RequestTimeout+5*time.Second),
		app.WithShutdownHook(application.Close),
	)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
