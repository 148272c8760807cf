// Package cache defines the plan cache contract shared by the in-memory and Redis backends.
package cache

import "github.com/guttosm/load-optimizer/internal/domain/model"

// Cache stores computed load plans keyed by request fingerprint.
type Cache interface {
	Get(key string) (model.LoadPlan, bool)
	Set(key string, value model.LoadPlan)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// HitRate returns hits over lookups, or 0 when nothing was looked up.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
