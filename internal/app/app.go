// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/http"
)

// App is the wired application: the router plus the resources it holds open.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	auth, err := InitializeAuth(cfg.Auth)
	if err != nil {
		return nil, err
	}

	services := InitializeServices(ctx, cfg)
	database := InitializeDatabase(ctx, cfg.Database)

	routerComponents := InitializeRouter(services, database, auth, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		services: services,
		database: database,
	}, nil
}

// Close releases the caches and the database connection.
func (a *App) Close(ctx context.Context) {
	a.services.Close()
	if err := a.database.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("Error closing MongoDB connection")
	}
}
