//go:build !integration

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_HitRate(t *testing.T) {
	tests := []struct {
		name     string
		metrics  Metrics
		expected float64
	}{
		{name: "no lookups", metrics: Metrics{}, expected: 0},
		{name: "all hits", metrics: Metrics{Hits: 4}, expected: 1},
		{name: "mixed", metrics: Metrics{Hits: 3, Misses: 1}, expected: 0.75},
		{name: "all misses", metrics: Metrics{Misses: 7}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.metrics.HitRate(), 1e-9)
		})
	}
}
