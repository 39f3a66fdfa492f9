package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/groovebot/groover/core/availability"
	"github.com/groovebot/groover/core/metrics"
	"github.com/groovebot/groover/core/model"
	"github.com/groovebot/groover/internal/eventbus"
)

type recordingSink struct {
	plans      []metrics.PlanRecord
	candidates []metrics.CandidateRecord
}

func (r *recordingSink) RecordPlan(p metrics.PlanRecord) error {
	r.plans = append(r.plans, p)
	return nil
}

func (r *recordingSink) RecordCandidates(c []metrics.CandidateRecord) error {
	r.candidates = append(r.candidates, c...)
	return nil
}

func TestPlanRanksLeaderConflictLast(t *testing.T) {
	songs := []model.Song{
		mustSong(t, "s1", "ana", []string{"bob"}, time.Hour),
		mustSong(t, "s2", "cleo", []string{"dana"}, time.Hour),
	}
	window := model.Window{Start: windowStart, End: windowStart.Add(2 * time.Hour)}
	idx := mustIndex(t, map[string][]time.Time{
		"ana":  fullSlots(4)[1:], // misses the first half hour
		"bob":  fullSlots(4),
		"cleo": fullSlots(4),
		"dana": fullSlots(4),
	})

	bus := eventbus.New()
	events := bus.Subscribe()
	sink := &recordingSink{}
	p, err := New(Config{StepMinutes: 30}, nil, bus, sink)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}

	res, err := p.Plan(context.Background(), songs, window, idx)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.RunID == "" {
		t.Fatalf("expected run id")
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(res.Candidates))
	}
	best, ok := res.Best()
	if !ok || best.String() != "s2 > s1" || best.Cost != 0 {
		t.Fatalf("best = %v cost %v", best, best.Cost)
	}
	if res.Candidates[1].Cost != 2500 {
		t.Fatalf("expected penalized candidate cost 2500, got %v", res.Candidates[1].Cost)
	}

	bus.Close()
	var found, scored, ranked int
	for e := range events {
		switch e.(type) {
		case CandidateFound:
			found++
		case CandidateScored:
			scored++
		case PlanRanked:
			ranked++
		}
	}
	if found != 2 || scored != 2 || ranked != 1 {
		t.Fatalf("events found=%d scored=%d ranked=%d", found, scored, ranked)
	}

	if len(sink.plans) != 1 || len(sink.candidates) != 2 {
		t.Fatalf("sink plans=%d candidates=%d", len(sink.plans), len(sink.candidates))
	}
	if sink.plans[0].BestCost != 0 || sink.plans[0].WorstCost != 2500 {
		t.Fatalf("plan record %+v", sink.plans[0])
	}
}

func TestPlanEmptyWhenNothingFits(t *testing.T) {
	p, err := New(Config{StepMinutes: 30}, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	songs := []model.Song{mustSong(t, "s1", "ana", nil, time.Hour)}
	window := model.Window{Start: windowStart, End: windowStart.Add(step)}
	res, err := p.Plan(context.Background(), songs, window, mustIndex(t, nil))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %v", orders(res.Candidates))
	}
	if _, ok := res.Best(); ok {
		t.Fatalf("Best must report no candidate")
	}
}

func TestPlanRejectsInvalidWindow(t *testing.T) {
	p, err := New(Config{StepMinutes: 30}, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	window := model.Window{Start: windowStart, End: windowStart.Add(-time.Hour)}
	_, err = p.Plan(context.Background(), nil, window, mustIndex(t, nil))
	var derr *model.InvalidDurationError
	if !errors.As(err, &derr) {
		t.Fatalf("expected InvalidDurationError, got %v", err)
	}
}

func TestPlanRejectsUnalignedSong(t *testing.T) {
	p, err := New(Config{StepMinutes: 30}, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	// built without NewSong on purpose: Plan still refuses it
	songs := []model.Song{{Name: "waltz", Duration: 45 * time.Minute}}
	window := model.Window{Start: windowStart, End: windowStart.Add(2 * time.Hour)}
	_, err = p.Plan(context.Background(), songs, window, mustIndex(t, nil))
	var derr *model.InvalidDurationError
	if !errors.As(err, &derr) {
		t.Fatalf("expected InvalidDurationError, got %v", err)
	}
}

func TestPlanRejectsStepMismatch(t *testing.T) {
	p, err := New(Config{StepMinutes: 30}, nil, nil, nil)
	if err != nil {
		t.Fatalf("new planner: %v", err)
	}
	idx, err := availability.NewIndex(15*time.Minute, nil)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	window := model.Window{Start: windowStart, End: windowStart.Add(time.Hour)}
	if _, err := p.Plan(context.Background(), nil, window, idx); err == nil {
		t.Fatalf("expected step mismatch error")
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{StepMinutes: -5}, nil, nil, nil); err == nil {
		t.Fatalf("expected config error")
	}
}
