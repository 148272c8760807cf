//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("set logs TTL is repeatable", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30))
		require.NoError(t, db.SetLogsTTL(ctx, 7))
		assert.True(t, hasIndex(t, db, logsTTLIndexName))
	})

	t.Run("zero TTL removes expiry", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 0))
		assert.False(t, hasIndex(t, db, logsTTLIndexName))
	})

	t.Run("lookup indexes exist", func(t *testing.T) {
		assert.True(t, hasIndex(t, db, "request_id_1"))
		assert.True(t, hasIndex(t, db, "truck_id_1_timestamp_-1"))
	})
}

func TestNewMongoDB_InvalidURI(t *testing.T) {
	_, err := NewMongoDB("mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "unreachable")
	assert.Error(t, err)
}

func hasIndex(t *testing.T, db *MongoDB, name string) bool {
	t.Helper()
	cursor, err := db.Logs.Indexes().List(context.Background())
	require.NoError(t, err)

	var specs []bson.M
	require.NoError(t, cursor.All(context.Background(), &specs))
	for _, spec := range specs {
		if spec["name"] == name {
			return true
		}
	}
	return false
}
