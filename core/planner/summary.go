package planner

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the cost distribution across a run's candidates.
type Summary struct {
	Candidates int
	BestOrder  []string
	BestCost   float64
	WorstCost  float64
	MeanCost   float64
	MedianCost float64
	StdDev     float64
}

// Summarize computes distribution statistics over ranked candidates. It
// returns the zero Summary when the run produced no feasible ordering.
func Summarize(candidates []Candidate) Summary {
	if len(candidates) == 0 {
		return Summary{}
	}
	costs := make([]float64, len(candidates))
	for i, c := range candidates {
		costs[i] = c.Cost
	}
	sort.Float64s(costs)

	s := Summary{
		Candidates: len(candidates),
		BestOrder:  candidates[0].Order(),
		BestCost:   costs[0],
		WorstCost:  costs[len(costs)-1],
		MeanCost:   stat.Mean(costs, nil),
		MedianCost: stat.Quantile(0.5, stat.Empirical, costs, nil),
	}
	if len(costs) > 1 {
		s.StdDev = stat.StdDev(costs, nil)
	}
	return s
}
