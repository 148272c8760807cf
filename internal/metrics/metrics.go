// Package metrics provides Prometheus metrics collection for the load optimizer.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// OptimizationsTotal counts optimization requests by outcome.
	OptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "load_optimizations_total",
			Help: "Total number of load optimizations",
		},
		[]string{"status"},
	)

	// OptimizationDuration tracks time spent inside the optimizer.
	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_optimization_duration_seconds",
			Help:    "Load optimization duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// CandidateOrders tracks how many orders reach the search after the capacity pre-filter.
	CandidateOrders = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_optimization_candidate_orders",
			Help:    "Number of orders handed to the search",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 22, 25},
		},
	)

	// SelectedOrders tracks how many orders end up in the plan.
	SelectedOrders = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_optimization_selected_orders",
			Help:    "Number of orders selected for the truck",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 25},
		},
	)

	// SearchNodes tracks branch-and-bound frames explored per optimization.
	SearchNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "load_optimization_search_nodes",
			Help:    "Search frames explored per optimization",
			Buckets: prometheus.ExponentialBuckets(1, 4, 13),
		},
	)

	// CacheOperationsTotal tracks plan cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState exposes breaker state per name (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordOptimization records the outcome of an optimization request.
// A zero duration is not observed, so early rejections only bump the counter.
func RecordOptimization(duration time.Duration, status string) {
	if duration > 0 {
		OptimizationDuration.Observe(duration.Seconds())
	}
	OptimizationsTotal.WithLabelValues(status).Inc()
}

// ObserveSearch records the shape of a completed search.
func ObserveSearch(candidates, selected int, nodes int64) {
	CandidateOrders.Observe(float64(candidates))
	SelectedOrders.Observe(float64(selected))
	SearchNodes.Observe(float64(nodes))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
