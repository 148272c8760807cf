package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/repository"
)

// Query page sizes.
const (
	DefaultLogQueryLimit = 50
	MaxLogQueryLimit     = 500
)

// ErrInvalidLogQuery is returned for inconsistent query options.
var ErrInvalidLogQuery = errors.New("invalid log query")

// LoggingService defines the interface for logging operations.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error

	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error

	// QueryLogs retrieves log entries matching the query options, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)

	// CountLogs returns the count of log entries matching the query options.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements the LoggingService interface.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{
		repo: repo,
	}
}

// CreateLog stores a single log entry.
func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil {
		return nil
	}
	prepare(entry)
	return s.repo.Create(ctx, entry)
}

// CreateLogs stores multiple log entries in bulk. Nil entries are skipped.
func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	batch := make([]*model.LogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry != nil {
			prepare(entry)
			batch = append(batch, entry)
		}
	}
	if len(batch) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, batch)
}

// QueryLogs retrieves log entries matching the query options.
// The limit defaults to DefaultLogQueryLimit and is capped at MaxLogQueryLimit.
func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	if err := validateWindow(opts); err != nil {
		return nil, err
	}
	opts.Limit = clampLimit(opts.Limit)
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	found, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LogEntry, 0, len(found))
	for _, e := range found {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// CountLogs returns the count of log entries matching the query options.
func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	if err := validateWindow(opts); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, opts)
}

// prepare assigns an ID and a UTC timestamp when missing.
func prepare(entry *model.LogEntry) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLogQueryLimit
	case limit > MaxLogQueryLimit:
		return MaxLogQueryLimit
	default:
		return limit
	}
}

func validateWindow(opts model.LogQueryOptions) error {
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return fmt.Errorf("%w: end time before start time", ErrInvalidLogQuery)
	}
	return nil
}
