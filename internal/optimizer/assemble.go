package optimizer

import (
	"sort"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// assemble translates the winning mask from sorted positions back to input
// positions and totals the selected candidates.
func assemble(candidates []model.Candidate, order []int, s *searchState) model.Solution {
	sol := model.Solution{
		Positions:     make([]int, 0, s.best.Len()),
		NodesExplored: s.nodes,
	}
	for _, pos := range s.best.Positions() {
		sol.Positions = append(sol.Positions, order[pos])
	}
	sort.Ints(sol.Positions)

	for _, idx := range sol.Positions {
		c := candidates[idx]
		sol.TotalPayout += c.Payout
		sol.TotalWeight += c.Weight
		sol.TotalVolume += c.Volume
	}
	return sol
}
