package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/i18n"
	"github.com/guttosm/load-optimizer/internal/metrics"
	"github.com/guttosm/load-optimizer/internal/middleware"
	"github.com/guttosm/load-optimizer/internal/service"
)

// Service metadata reported by the info endpoint.
const (
	ServiceTitle       = "Load Optimizer API"
	ServiceVersion     = "1.0.0"
	ServiceDescription = "Optimal truck load planning for carrier logistics"
	ServiceAlgorithm   = "Branch and bound over compatibility bitmasks"
)

// Handler serves the load optimizer endpoints.
type Handler struct {
	optimizer       service.LoadOptimizer
	loggingService  service.LoggingService
	maxOrders       int
	maxPayloadBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLimits sets the request limits enforced during validation and reported by Info.
func WithLimits(maxOrders int, maxPayloadBytes int64) HandlerOption {
	return func(h *Handler) {
		if maxOrders > 0 {
			h.maxOrders = maxOrders
		}
		if maxPayloadBytes > 0 {
			h.maxPayloadBytes = maxPayloadBytes
		}
	}
}

// WithAuditLogging stores an audit entry for each optimization.
func WithAuditLogging(loggingService service.LoggingService) HandlerOption {
	return func(h *Handler) {
		h.loggingService = loggingService
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(optimizer service.LoadOptimizer, opts ...HandlerOption) *Handler {
	h := &Handler{
		optimizer:       optimizer,
		maxOrders:       service.DefaultMaxOrders,
		maxPayloadBytes: middleware.DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Optimize handles POST /api/v1/load-optimizer/optimize.
//
// @Summary      Optimize truck load
// @Description  Selects the most profitable set of mutually compatible orders that fits the truck. Orders must share origin and destination, have overlapping time windows and agree on hazmat. The search is exact. Supports idempotency via the Idempotency-Key header.
// @Tags         Optimization
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Authorization header string false "Bearer token (required when JWT auth is enabled)"
// @Param        request body dto.OptimizeRequest true "Truck and candidate orders"
// @Success      200 {object} model.LoadPlan "Optimal load plan"
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Token lacks the required scope"
// @Failure      413 {object} dto.ErrorResponse "Payload too large"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      504 {object} dto.ErrorResponse "Optimization timed out"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/v1/load-optimizer/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	body, err := BuildRequest[dto.OptimizeRequest](c)
	if err != nil {
		switch verrs, ok := dto.AsValidationErrors(err); {
		case middleware.IsPayloadTooLarge(err):
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyPayloadTooLarge, err)
		case ok:
			h.validationFailed(builder, verrs)
		default:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	req, err := body.ToLoadRequest(h.maxOrders)
	if err != nil {
		if verrs, ok := dto.AsValidationErrors(err); ok {
			h.validationFailed(builder, verrs)
			return
		}
		metrics.RecordOptimization(0, "validation_error")
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationFailed, err)
		return
	}

	plan, err := h.optimizer.Optimize(c.Request.Context(), req)
	if err != nil {
		h.audit(c, req.Truck.ID, "Load optimization failed", err, map[string]interface{}{
			"orders": len(req.Orders),
		})
		h.optimizeError(builder, err)
		return
	}

	h.audit(c, plan.TruckID, "Load optimized", nil, map[string]interface{}{
		"orders":             len(req.Orders),
		"selected_orders":    len(plan.SelectedOrderIDs),
		"total_payout_cents": plan.TotalPayoutCents,
	})
	builder.SuccessOK(plan)
}

func (h *Handler) validationFailed(builder *ResponseBuilder, verrs dto.ValidationErrors) {
	metrics.RecordOptimization(0, "validation_error")
	builder.ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyValidationFailed, verrs.Details(), verrs)
}

func (h *Handler) optimizeError(builder *ResponseBuilder, err error) {
	switch {
	case errors.Is(err, service.ErrTooManyOrders):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTooManyOrders, err)
	case errors.Is(err, service.ErrOptimizationTimeout):
		builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	case errors.Is(err, context.Canceled):
		builder.Error(http.StatusRequestTimeout, i18n.ErrKeyTimeout, err)
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func (h *Handler) audit(c *gin.Context, truckID, message string, err error, fields map[string]interface{}) {
	middleware.AuditLog(h.loggingService, c, middleware.AuditEvent{
		ActionType: model.ActionOptimize,
		TruckID:    truckID,
		Message:    message,
		Err:        err,
		Fields:     fields,
	})
}

// Info handles GET /api/v1/load-optimizer/info.
//
// @Summary      Service information
// @Description  Returns the service version, request limits and search algorithm.
// @Tags         Info
// @Produce      json
// @Success      200 {object} dto.ServiceInfo
// @Router       /api/v1/load-optimizer/info [get]
func (h *Handler) Info(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(dto.ServiceInfo{
		Service:     ServiceTitle,
		Version:     ServiceVersion,
		Description: ServiceDescription,
		Constraints: dto.ServiceConstraints{
			MaxOrders:       h.maxOrders,
			MaxPayloadBytes: h.maxPayloadBytes,
		},
		Algorithm: ServiceAlgorithm,
	})
}
