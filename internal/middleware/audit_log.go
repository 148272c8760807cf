package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/service"
)

// AuditEvent describes one business action worth keeping in the audit trail.
type AuditEvent struct {
	ActionType string
	TruckID    string
	Message    string
	Err        error
	Fields     map[string]interface{}
}

// AuditLog stores an audit entry for the current request. It never blocks the caller.
func AuditLog(loggingService service.LoggingService, c *gin.Context, event AuditEvent) {
	if loggingService == nil {
		return
	}
	persistLog(loggingService, newAuditEntry(c, event))
}

func newAuditEntry(c *gin.Context, event AuditEvent) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      "info",
		Message:    event.Message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Subject:    GetSubject(c),
		TruckID:    event.TruckID,
		ActionType: event.ActionType,
	}
	if event.Err != nil {
		entry.Level = "error"
		entry.Error = event.Err.Error()
	}
	if len(event.Fields) > 0 {
		entry.WithFields(event.Fields)
	}
	return entry
}
