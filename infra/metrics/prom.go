package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/groovebot/groover/core/metrics"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs       prometheus.Counter
	candidates prometheus.Counter
	duration   prometheus.Histogram
	bestCost   prometheus.Gauge
	costs      prometheus.Histogram
}

// NewPromSink registers planning metrics on the provided registerer. If reg
// is nil, the default registerer is used. Already registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plan_runs_total",
			Help: "Total number of planning runs",
		}),
		candidates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "plan_candidates_total",
			Help: "Total number of maximal schedule candidates enumerated",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plan_duration_seconds",
			Help:    "Time spent enumerating, scoring and ranking one run",
			Buckets: prometheus.DefBuckets,
		}),
		bestCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_best_cost",
			Help: "Attendance cost of the best candidate from the latest run",
		}),
		costs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "plan_candidate_cost",
			Help:    "Attendance cost distribution across scored candidates",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	collectors := []struct {
		c      prometheus.Collector
		assign func(prometheus.Collector)
	}{
		{s.runs, func(c prometheus.Collector) { s.runs = c.(prometheus.Counter) }},
		{s.candidates, func(c prometheus.Collector) { s.candidates = c.(prometheus.Counter) }},
		{s.duration, func(c prometheus.Collector) { s.duration = c.(prometheus.Histogram) }},
		{s.bestCost, func(c prometheus.Collector) { s.bestCost = c.(prometheus.Gauge) }},
		{s.costs, func(c prometheus.Collector) { s.costs = c.(prometheus.Histogram) }},
	}
	for _, col := range collectors {
		if err := reg.Register(col.c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				col.assign(are.ExistingCollector)
			} else {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordPlan records the run summary.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.runs.Inc()
	s.candidates.Add(float64(rec.Candidates))
	s.duration.Observe(rec.Elapsed.Seconds())
	if rec.Candidates > 0 {
		s.bestCost.Set(rec.BestCost)
	}
	return nil
}

// RecordCandidates records per-candidate costs.
func (s *PromSink) RecordCandidates(recs []coremetrics.CandidateRecord) error {
	for _, r := range recs {
		s.costs.Observe(r.Cost)
	}
	return nil
}
