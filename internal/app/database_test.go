//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guttosm/load-optimizer/config"
)

func TestInitializeDatabase_Disabled(t *testing.T) {
	assert.Nil(t, InitializeDatabase(context.Background(), config.DatabaseConfig{Enabled: false}))
}

func TestDatabaseComponents_CloseNil(t *testing.T) {
	var components *DatabaseComponents
	assert.NoError(t, components.Close(context.Background()))
}
