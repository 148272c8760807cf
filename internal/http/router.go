package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/load-optimizer/internal/metrics"
	"github.com/guttosm/load-optimizer/internal/middleware"
	"github.com/guttosm/load-optimizer/internal/service"
)

// Default scopes required from bearer tokens.
const (
	DefaultOptimizeScope = "loads:optimize"
	DefaultAuditScope    = "logs:read"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	MaxBodyBytes      int64
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	// APIKeyValidator enables X-API-Key authentication when TokenVerifier is nil.
	APIKeyValidator service.APIKeyValidator
	// TokenVerifier enables bearer token authentication.
	TokenVerifier service.TokenVerifier
	RequiredScope string
	AuditScope    string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    middleware.DefaultRequestTimeout,
		MaxBodyBytes:      middleware.DefaultMaxBodyBytes,
		EnableIdempotency: true,
		RequiredScope:     DefaultOptimizeScope,
		AuditScope:        DefaultAuditScope,
	}
}

// NewRouter creates and configures the Gin router for the load optimizer.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	if handler != nil {
		api := router.Group(APIBasePath,
			middleware.BodyLimit(cfg.MaxBodyBytes),
			middleware.TimeoutWithDuration(cfg.RequestTimeout),
		)

		var audit *AuditHandler
		if cfg.LoggingService != nil {
			audit = NewAuditHandler(cfg.LoggingService)
		}
		var routes RouteGroup = NewOptimizerRoutes(handler, audit)
		routes.RegisterRoutes(api, &cfg)
	}

	return router
}

func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(
		middleware.CORS(cfg.CORSOrigins),
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)
}

func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
