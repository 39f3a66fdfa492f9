package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/groovebot/groover/core/metrics"
)

func TestPromSinkRecordPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.PlanRecord{
		RunID:      "run-1",
		Songs:      4,
		Candidates: 24,
		BestCost:   2,
		WorstCost:  2500,
		Elapsed:    15 * time.Millisecond,
		PlannedAt:  time.Now(),
	}
	if err := sink.RecordPlan(rec); err != nil {
		t.Fatalf("record plan: %v", err)
	}

	expected := `
# HELP plan_runs_total Total number of planning runs
# TYPE plan_runs_total counter
plan_runs_total 1
`
	if err := testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected runs metric: %v", err)
	}
	if got := testutil.ToFloat64(sink.candidates); got != 24 {
		t.Errorf("candidates counter = %v", got)
	}
	if got := testutil.ToFloat64(sink.bestCost); got != 2 {
		t.Errorf("best cost gauge = %v", got)
	}
}

func TestPromSinkRecordCandidates(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	recs := []coremetrics.CandidateRecord{
		{RunID: "run-1", Order: []string{"a", "b"}, Cost: 0},
		{RunID: "run-1", Order: []string{"b", "a"}, Cost: 2500},
	}
	if err := sink.RecordCandidates(recs); err != nil {
		t.Fatalf("record candidates: %v", err)
	}
	if c := testutil.CollectAndCount(sink.costs); c == 0 {
		t.Errorf("cost histogram not recorded")
	}
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second sink must reuse collectors: %v", err)
	}
}

type failingSink struct{ err error }

func (f failingSink) RecordPlan(coremetrics.PlanRecord) error              { return f.err }
func (f failingSink) RecordCandidates([]coremetrics.CandidateRecord) error { return f.err }

func TestMultiSinkForwards(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	multi := NewMultiSink(coremetrics.NopSink{}, prom)
	if err := multi.RecordPlan(coremetrics.PlanRecord{Candidates: 1, BestCost: 7}); err != nil {
		t.Fatalf("record plan: %v", err)
	}
	if got := testutil.ToFloat64(prom.runs); got != 1 {
		t.Fatalf("runs counter = %v", got)
	}
	if err := multi.RecordCandidates(nil); err != nil {
		t.Fatalf("record candidates: %v", err)
	}
}

func TestMultiSinkReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	multi := NewMultiSink(failingSink{err: boom}, coremetrics.NopSink{})
	if err := multi.RecordPlan(coremetrics.PlanRecord{}); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := multi.RecordCandidates([]coremetrics.CandidateRecord{{}}); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
}
