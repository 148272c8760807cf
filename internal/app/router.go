// Package app provides router configuration.
package app

import (
	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/http"
	"github.com/guttosm/load-optimizer/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter builds the handlers, readiness checks and router configuration.
// db and auth may be nil.
func InitializeRouter(
	services *ServiceComponents,
	db *DatabaseComponents,
	auth *AuthComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if db != nil {
		loggingService = db.LoggingService
	}

	handlerOpts := []http.HandlerOption{
		http.WithLimits(services.Optimizer.MaxOrders(), cfg.Optimizer.MaxPayloadBytes),
	}
	if loggingService != nil {
		handlerOpts = append(handlerOpts, http.WithAuditLogging(loggingService))
	}
	handler := http.NewHandler(services.Optimizer, handlerOpts...)

	healthHandler := http.NewHealthHandler()
	if db != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}
	if services.Redis != nil {
		healthHandler.RegisterChecker("redis", http.HealthCheckFunc(services.Redis.HealthCheck))
	}

	routerCfg := http.DefaultRouterConfig()
	routerCfg.RateLimit = cfg.Server.RateLimit
	routerCfg.RateWindow = cfg.Server.RateWindow
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.MaxBodyBytes = cfg.Optimizer.MaxPayloadBytes
	routerCfg.CORSOrigins = cfg.Server.CORSOrigins
	routerCfg.SwaggerUser = cfg.Server.SwaggerUser
	routerCfg.SwaggerPass = cfg.Server.SwaggerPass
	routerCfg.LoggingService = loggingService
	if cfg.Auth.RequiredScope != "" {
		routerCfg.RequiredScope = cfg.Auth.RequiredScope
	}
	if auth != nil {
		routerCfg.APIKeyValidator = auth.APIKeyValidator
		routerCfg.TokenVerifier = auth.TokenVerifier
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
