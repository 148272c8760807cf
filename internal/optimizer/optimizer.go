// Package optimizer finds the most profitable set of orders a single truck can carry.
//
// The search is exact: it explores subsets of candidates in payout-descending
// order, pruning branches that break capacity, that would mix incompatible
// orders, or whose optimistic payout cannot beat the best selection found so far.
// Callers are expected to bound the number of candidates (the HTTP boundary
// allows 25) and to drop candidates that cannot fit the truck on their own.
package optimizer

import (
	"errors"
	"fmt"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// ErrTooManyCandidates is returned when the candidate set is wider than a Mask.
var ErrTooManyCandidates = errors.New("too many candidates")

// Optimize returns the feasible selection of candidates with the highest total payout.
//
// When several selections tie on payout, the first one reached by the
// payout-descending traversal wins, which makes the result deterministic for a
// given input order. The empty selection is returned when nothing fits.
func Optimize(capacity model.Capacity, candidates []model.Candidate) (model.Solution, error) {
	n := len(candidates)
	if n > MaxCandidates {
		return model.Solution{}, fmt.Errorf("optimize %d candidates (max %d): %w", n, MaxCandidates, ErrTooManyCandidates)
	}
	if n == 0 {
		return model.EmptySolution(), nil
	}

	order := sortByPayout(candidates)
	state := newSearchState(capacity, candidates, order)
	state.explore(0, 0, 0, 0, 0, FullMask(n))

	return assemble(candidates, order, state), nil
}
