package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeInternal        = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeNotFound        = "not_found"
	ErrCodeRateLimit       = "rate_limit_exceeded"
	ErrCodeConflict        = "conflict"
	ErrCodeTimeout         = "timeout"
	ErrCodePayloadTooLarge = "payload_too_large"
	ErrCodeUnavailable     = "service_unavailable"
)

// ErrorResponse is the body of every non-2xx response.
//
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Request validation failed"`
	// Details maps field paths to failure messages
	Details   map[string]string `json:"details,omitempty" example:"orders[2].delivery_date:must be on or after pickup_date"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches field-level details.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// ServiceConstraints are the request limits enforced by the API.
type ServiceConstraints struct {
	MaxOrders       int   `json:"max_orders" example:"25"`
	MaxPayloadBytes int64 `json:"max_payload_bytes" example:"1048576"`
} // @name ServiceConstraints

// ServiceInfo describes the running service.
//
// @Description Service metadata and request limits
type ServiceInfo struct {
	Service     string             `json:"service" example:"Load Optimizer API"`
	Version     string             `json:"version" example:"1.0.0"`
	Description string             `json:"description" example:"Optimal truck load planning for carrier logistics"`
	Constraints ServiceConstraints `json:"constraints"`
	Algorithm   string             `json:"algorithm" example:"Branch and bound over compatibility bitmasks"`
} // @name ServiceInfo

// HealthStatus is the liveness response.
type HealthStatus struct {
	Status  string `json:"status" example:"UP"`
	Service string `json:"service" example:"load-optimizer"`
} // @name HealthStatus

// LogPage is one page of the audit trail.
//
// @Description Stored request and audit log entries, newest first
type LogPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total" example:"42"`
	Limit   int              `json:"limit" example:"50"`
	Skip    int              `json:"skip" example:"0"`
} // @name LogPage
