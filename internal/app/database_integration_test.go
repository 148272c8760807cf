//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/domain/model"
)

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()
	components := InitializeDatabase(ctx, config.DatabaseConfig{
		Enabled:                        true,
		URI:                            getSharedContainerURI(),
		DatabaseName:                   sanitizeDBNameForApp(t.Name()),
		LogsTTL:                        7 * 24 * time.Hour,
		CircuitBreakerFailureThreshold: 3,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Second,
	})
	require.NotNil(t, components)
	defer func() {
		assert.NoError(t, components.Close(ctx))
	}()

	require.NoError(t, components.DB.HealthCheck(ctx))
	assert.Equal(t, "mongodb-logs", components.LogsCircuitBreaker.Name())

	entry := &model.LogEntry{Level: "info", Message: "Load optimized", TruckID: "truck-123", ActionType: model.ActionOptimize}
	require.NoError(t, components.LoggingService.CreateLog(ctx, entry))

	entries, err := components.LoggingService.QueryLogs(ctx, model.LogQueryOptions{TruckID: "truck-123"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Load optimized", entries[0].Message)
}

func TestInitializeDatabase_Unreachable(t *testing.T) {
	components := InitializeDatabase(context.Background(), config.DatabaseConfig{
		Enabled:      true,
		URI:          "mongodb://127.0.0.1:1",
		DatabaseName: "unreachable",
	})

	assert.Nil(t, components)
}

func TestInitializeApp_WithDatabase(t *testing.T) {
	cfg := config.Config{
		Cache: config.CacheConfig{Backend: config.CacheBackendMemory, Size: 10, TTL: time.Minute},
		Database: config.DatabaseConfig{
			Enabled:      true,
			URI:          getSharedContainerURI(),
			DatabaseName: sanitizeDBNameForApp(t.Name()),
		},
	}

	application, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	defer application.Close(context.Background())

	require.NotNil(t, application.database)
	assert.NotNil(t, application.database.LoggingService)
}
