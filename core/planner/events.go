package planner

import "time"

// CandidateFound is published on the event bus when the enumerator records a
// maximal ordering.
type CandidateFound struct {
	RunID string
	Order []string
	Total time.Duration
}

// CandidateScored is published after a candidate receives its cost.
type CandidateScored struct {
	RunID string
	Order []string
	Cost  float64
}

// PlanRanked is published once per run after ranking completes.
type PlanRanked struct {
	RunID      string
	Candidates int
	BestCost   float64
}
