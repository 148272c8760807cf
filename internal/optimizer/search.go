package optimizer

import (
	"sort"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// searchState holds everything one optimization needs. It is created per call
// and threaded through the recursion by pointer, so concurrent calls share nothing.
//
// All slices are indexed by sorted position (payout descending).
type searchState struct {
	capacity  model.Capacity
	payouts   []int64
	weights   []int
	volumes   []int
	compat    []Mask
	remaining []int64 // remaining[i] = sum of payouts at sorted positions >= i

	best       Mask
	bestPayout int64
	nodes      int64
}

// sortByPayout returns input positions ordered by payout, highest first.
// Equal payouts keep their input order so the search is reproducible.
func sortByPayout(candidates []model.Candidate) []int {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].Payout > candidates[order[b]].Payout
	})
	return order
}

// newSearchState lays the candidates out in sorted order and precomputes the
// compatibility masks and the payout suffix sums used for pruning.
func newSearchState(capacity model.Capacity, candidates []model.Candidate, order []int) *searchState {
	n := len(order)
	sorted := make([]model.Candidate, n)
	s := &searchState{
		capacity:  capacity,
		payouts:   make([]int64, n),
		weights:   make([]int, n),
		volumes:   make([]int, n),
		remaining: make([]int64, n+1),
	}
	for pos, idx := range order {
		c := candidates[idx]
		sorted[pos] = c
		s.payouts[pos] = c.Payout
		s.weights[pos] = c.Weight
		s.volumes[pos] = c.Volume
	}
	for pos := n - 1; pos >= 0; pos-- {
		s.remaining[pos] = s.remaining[pos+1] + s.payouts[pos]
	}
	s.compat = CompatibilityMasks(sorted)
	return s
}

// explore extends the partial selection chosen with candidates at sorted
// positions >= start. allowed is the intersection of the compatibility masks
// of everything in chosen.
func (s *searchState) explore(start int, chosen Mask, payout int64, weight, volume int, allowed Mask) {
	s.nodes++

	// Stopping here (taking nothing more) is itself a candidate answer.
	if payout > s.bestPayout {
		s.best = chosen
		s.bestPayout = payout
	}

	for pos := start; pos < len(s.payouts); pos++ {
		// Even taking every remaining order cannot beat the incumbent.
		if payout+s.remaining[pos] <= s.bestPayout {
			return
		}
		if !allowed.Has(pos) {
			continue
		}
		nextWeight := weight + s.weights[pos]
		nextVolume := volume + s.volumes[pos]
		if !s.capacity.Fits(nextWeight, nextVolume) {
			continue
		}
		s.explore(pos+1, chosen.With(pos), payout+s.payouts[pos], nextWeight, nextVolume, allowed&s.compat[pos])
	}
}
