package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/middleware"
)

// APIBasePath prefixes every business endpoint.
const APIBasePath = "/api/v1/load-optimizer"

// OptimizerRoutes registers the optimize, info and audit endpoints.
type OptimizerRoutes struct {
	handler *Handler
	audit   *AuditHandler
}

// NewOptimizerRoutes creates the route set. audit may be nil when no log store is configured.
func NewOptimizerRoutes(handler *Handler, audit *AuditHandler) *OptimizerRoutes {
	return &OptimizerRoutes{handler: handler, audit: audit}
}

// RegisterRoutes registers routes under rg.
// Info is public and limited per IP; optimize and audit run behind the configured
// authentication and are limited per caller.
func (r *OptimizerRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}

	public := rg.Group("")
	if limiter != nil {
		public.Use(limiter.RateLimit())
	}
	public.GET("/info", r.handler.Info)

	protected := rg.Group("", authChain(cfg)...)
	if limiter != nil {
		protected.Use(limiter.ClientRateLimit())
	}
	if cfg.EnableIdempotency {
		protected.Use(middleware.Idempotency(middleware.DefaultIdempotencyConfig()))
	}

	protected.POST("/optimize", append(scopeCheck(cfg, cfg.RequiredScope), r.handler.Optimize)...)

	if r.audit != nil {
		protected.GET("/audit", append(scopeCheck(cfg, cfg.AuditScope), r.audit.ListLogs)...)
	}
}

// authChain picks bearer tokens over API keys; with neither the routes are public.
func authChain(cfg *RouterConfig) []gin.HandlerFunc {
	switch {
	case cfg.TokenVerifier != nil:
		return []gin.HandlerFunc{middleware.JWTAuth(cfg.TokenVerifier)}
	case cfg.APIKeyValidator != nil:
		return []gin.HandlerFunc{middleware.APIKeyAuth(cfg.APIKeyValidator)}
	default:
		return nil
	}
}

// scopeCheck only applies to bearer tokens; API keys carry no scopes.
func scopeCheck(cfg *RouterConfig, scope string) []gin.HandlerFunc {
	if cfg.TokenVerifier == nil || scope == "" {
		return nil
	}
	return []gin.HandlerFunc{middleware.RequireScope(scope)}
}
