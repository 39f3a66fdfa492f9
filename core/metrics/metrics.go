// Package metrics defines the observability records produced by planning
// runs and the Sink interface that fans them out. Concrete sinks
// (Prometheus, InfluxDB) live in infra/metrics.
package metrics

import "time"

// PlanRecord summarizes one planning run.
type PlanRecord struct {
	RunID      string
	Songs      int
	Candidates int
	BestCost   float64
	WorstCost  float64
	Elapsed    time.Duration
	PlannedAt  time.Time
}

// CandidateRecord describes one scored schedule ordering.
type CandidateRecord struct {
	RunID string
	Order []string
	Cost  float64
}

// Sink records planning results for observability purposes.
type Sink interface {
	RecordPlan(PlanRecord) error
	RecordCandidates([]CandidateRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error              { return nil }
func (NopSink) RecordCandidates([]CandidateRecord) error { return nil }
