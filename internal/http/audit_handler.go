package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/i18n"
	"github.com/guttosm/load-optimizer/internal/service"
)

var errInvalidQueryParam = errors.New("invalid query parameter")

// AuditHandler exposes the stored request and audit trail.
type AuditHandler struct {
	loggingService service.LoggingService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(loggingService service.LoggingService) *AuditHandler {
	return &AuditHandler{loggingService: loggingService}
}

// ListLogs handles GET /api/v1/load-optimizer/audit.
//
// @Summary      Query the audit trail
// @Description  Lists stored request and optimization log entries, newest first.
// @Tags         Audit
// @Produce      json
// @Param        truck_id    query string false "Truck identifier"
// @Param        action_type query string false "Action type" Enums(optimize, info)
// @Param        level       query string false "Log level" Enums(info, warn, error)
// @Param        request_id  query string false "Request ID"
// @Param        start       query string false "Earliest timestamp (RFC 3339)"
// @Param        end         query string false "Latest timestamp (RFC 3339)"
// @Param        limit       query int    false "Page size (default 50, max 500)"
// @Param        skip        query int    false "Entries to skip"
// @Success      200 {object} dto.LogPage
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Token lacks the logs:read scope"
// @Failure      503 {object} dto.ErrorResponse "Log store unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/v1/load-optimizer/audit [get]
func (h *AuditHandler) ListLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := parseLogQuery(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.loggingService.QueryLogs(ctx, opts)
	if err != nil {
		h.queryError(builder, err)
		return
	}
	total, err := h.loggingService.CountLogs(ctx, opts)
	if err != nil {
		h.queryError(builder, err)
		return
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = service.DefaultLogQueryLimit
	}
	builder.SuccessOK(dto.LogPage{
		Entries: entries,
		Total:   total,
		Limit:   min(limit, service.MaxLogQueryLimit),
		Skip:    max(opts.Skip, 0),
	})
}

func (h *AuditHandler) queryError(builder *ResponseBuilder, err error) {
	if errors.Is(err, service.ErrInvalidLogQuery) {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyUnavailable, err)
}

func parseLogQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		TruckID:    c.Query("truck_id"),
		ActionType: c.Query("action_type"),
		Level:      c.Query("level"),
		RequestID:  c.Query("request_id"),
	}

	var err error
	if opts.StartTime, err = parseTimeParam(c, "start"); err != nil {
		return opts, err
	}
	if opts.EndTime, err = parseTimeParam(c, "end"); err != nil {
		return opts, err
	}
	if opts.Limit, err = parseIntParam(c, "limit"); err != nil {
		return opts, err
	}
	if opts.Skip, err = parseIntParam(c, "skip"); err != nil {
		return opts, err
	}
	return opts, nil
}

func parseTimeParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.Join(errInvalidQueryParam, err)
	}
	t = t.UTC()
	return &t, nil
}

func parseIntParam(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errInvalidQueryParam
	}
	return n, nil
}
