package planner

import "sort"

// Rank sorts candidates in place by ascending cost. The sort is stable, so
// candidates with equal cost keep their discovery order.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Cost < candidates[j].Cost
	})
}
