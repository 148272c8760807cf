package repository

import (
	"context"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// LogsRepositoryInterface is the storage contract for request and audit logs.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]*model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// HealthChecker is implemented by stores that can report liveness.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
