package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/guttosm/load-optimizer/internal/metrics"
	"github.com/guttosm/load-optimizer/internal/optimizer"
	"github.com/guttosm/load-optimizer/internal/service/cache"
)

// DefaultMaxOrders is the largest order list accepted per request.
const DefaultMaxOrders = 25

var (
	// ErrOptimizationTimeout is returned when the search outlives its deadline.
	ErrOptimizationTimeout = errors.New("optimization timed out")
	// ErrTooManyOrders is returned when a request carries more orders than allowed.
	ErrTooManyOrders = errors.New("too many orders")
)

// Optimization outcomes reported to metrics.
const (
	statusSuccess = "success"
	statusCached  = "cached"
	statusTimeout = "timeout"
	statusError   = "error"
)

// LoadOptimizer plans the most profitable load for a truck.
type LoadOptimizer interface {
	Optimize(ctx context.Context, req model.LoadRequest) (model.LoadPlan, error)
	// InvalidateCache drops every cached plan.
	InvalidateCache()
}

// Option configures a LoadOptimizerService.
type Option func(*LoadOptimizerService)

// LoadOptimizerService runs the exact search and shapes its answer into a LoadPlan.
type LoadOptimizerService struct {
	cache     cache.Cache
	timeout   time.Duration
	maxOrders int
}

// NewLoadOptimizerService creates a new LoadOptimizerService with the given options.
func NewLoadOptimizerService(opts ...Option) *LoadOptimizerService {
	s := &LoadOptimizerService{
		maxOrders: DefaultMaxOrders,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables an in-memory plan cache with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *LoadOptimizerService) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, 0)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *LoadOptimizerService) {
		s.cache = c
	}
}

// WithTimeout bounds each search. Zero leaves only the caller's deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *LoadOptimizerService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMaxOrders sets the order limit; it is capped at optimizer.MaxCandidates.
func WithMaxOrders(n int) Option {
	return func(s *LoadOptimizerService) {
		if n > 0 {
			s.maxOrders = min(n, optimizer.MaxCandidates)
		}
	}
}

// MaxOrders returns the configured order limit.
func (s *LoadOptimizerService) MaxOrders() int {
	return s.maxOrders
}

// Optimize selects the highest-payout feasible subset of req.Orders.
// Orders that cannot fit the truck on their own are dropped before the search.
// Selected IDs keep request order.
func (s *LoadOptimizerService) Optimize(ctx context.Context, req model.LoadRequest) (model.LoadPlan, error) {
	start := time.Now()

	if n := len(req.Orders); n > s.maxOrders {
		metrics.RecordOptimization(time.Since(start), statusError)
		return model.LoadPlan{}, fmt.Errorf("%w: got %d, max %d", ErrTooManyOrders, n, s.maxOrders)
	}

	var key string
	if s.cache != nil {
		key = Fingerprint(req)
		if plan, ok := s.cache.Get(key); ok {
			metrics.RecordOptimization(time.Since(start), statusCached)
			return plan, nil
		}
	}

	capacity := req.Truck.Capacity
	feasible := make([]model.Order, 0, len(req.Orders))
	for _, o := range req.Orders {
		if capacity.Fits(o.Weight, o.Volume) {
			feasible = append(feasible, o)
		}
	}

	candidates := make([]model.Candidate, len(feasible))
	for i := range feasible {
		candidates[i] = feasible[i].Candidate
	}

	solution, err := s.solve(ctx, capacity, candidates)
	if err != nil {
		status := statusError
		if errors.Is(err, ErrOptimizationTimeout) {
			status = statusTimeout
		}
		metrics.RecordOptimization(time.Since(start), status)
		log.Warn().Err(err).
			Str("truck_id", req.Truck.ID).
			Int("orders", len(req.Orders)).
			Msg("Optimization failed")
		return model.LoadPlan{}, err
	}

	plan := buildPlan(req.Truck, feasible, solution)

	duration := time.Since(start)
	metrics.RecordOptimization(duration, statusSuccess)
	metrics.ObserveSearch(len(candidates), len(solution.Positions), solution.NodesExplored)

	log.Debug().
		Str("truck_id", req.Truck.ID).
		Int("orders", len(req.Orders)).
		Int("feasible", len(candidates)).
		Int("selected", len(plan.SelectedOrderIDs)).
		Int64("payout_cents", plan.TotalPayoutCents).
		Int64("nodes", solution.NodesExplored).
		Dur("duration", duration).
		Msg("Optimization completed")

	if s.cache != nil {
		s.cache.Set(key, plan)
		if withMetrics, ok := s.cache.(cache.CacheWithMetrics); ok {
			m := withMetrics.Metrics()
			metrics.UpdateCacheMetrics(m.Size, m.Capacity)
		}
	}

	return plan, nil
}

// solve runs the search on its own goroutine when a deadline applies.
// The search itself cannot be interrupted; an abandoned run finishes in the background.
func (s *LoadOptimizerService) solve(ctx context.Context, capacity model.Capacity, candidates []model.Candidate) (model.Solution, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if ctx.Done() == nil {
		return optimizer.Optimize(capacity, candidates)
	}
	if err := ctx.Err(); err != nil {
		return model.Solution{}, contextError(err)
	}

	type result struct {
		solution model.Solution
		err      error
	}
	done := make(chan result, 1)
	go func() {
		sol, err := optimizer.Optimize(capacity, candidates)
		done <- result{solution: sol, err: err}
	}()

	select {
	case r := <-done:
		return r.solution, r.err
	case <-ctx.Done():
		return model.Solution{}, contextError(ctx.Err())
	}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrOptimizationTimeout, err)
	}
	return err
}

func buildPlan(truck model.Truck, feasible []model.Order, solution model.Solution) model.LoadPlan {
	plan := model.EmptyPlan(truck.ID)
	for _, pos := range solution.Positions {
		plan.SelectedOrderIDs = append(plan.SelectedOrderIDs, feasible[pos].ID)
	}
	plan.TotalPayoutCents = solution.TotalPayout
	plan.TotalWeightLbs = solution.TotalWeight
	plan.TotalVolumeCuft = solution.TotalVolume
	plan.UtilizationWeightPercent = utilization(solution.TotalWeight, truck.Capacity.MaxWeight)
	plan.UtilizationVolumePercent = utilization(solution.TotalVolume, truck.Capacity.MaxVolume)
	return plan
}

// utilization returns used/capacity as a percentage rounded to two decimals.
func utilization(used, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return math.Round(float64(used)/float64(capacity)*100*100) / 100
}

// Fingerprint returns the cache key of a request. Locations are normalized the
// same way the compatibility check does, so equivalent requests share a key.
func Fingerprint(req model.LoadRequest) string {
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%q|%d|%d\n", req.Truck.ID, req.Truck.Capacity.MaxWeight, req.Truck.Capacity.MaxVolume)
	for _, o := range req.Orders {
		_, _ = fmt.Fprintf(h, "%q|%d|%d|%d|%q|%q|%s|%s|%t\n",
			o.ID, o.Payout, o.Weight, o.Volume,
			optimizer.NormalizeLocation(o.Origin),
			optimizer.NormalizeLocation(o.Destination),
			o.PickupDate.Format(time.DateOnly),
			o.DeliveryDate.Format(time.DateOnly),
			o.IsHazmat,
		)
	}
	return "plan:" + hex.EncodeToString(h.Sum(nil))
}

// InvalidateCache clears the plan cache.
func (s *LoadOptimizerService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Close releases cache resources.
func (s *LoadOptimizerService) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}
