// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/logger"
)

// InitializeLogger initializes the JSON logger from the log configuration.
// An empty level means info.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
