package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/groovebot/groover/core/availability"
	"github.com/groovebot/groover/core/logger"
	"github.com/groovebot/groover/core/metrics"
	"github.com/groovebot/groover/core/model"
	"github.com/groovebot/groover/internal/eventbus"
)

// Result is the outcome of one planning run. Candidates are ranked by
// ascending cost; ties keep discovery order.
type Result struct {
	RunID      string
	Window     model.Window
	Candidates []Candidate
	Elapsed    time.Duration
}

// Best returns the lowest-cost candidate and false when the run produced no
// feasible ordering.
func (r *Result) Best() (Candidate, bool) {
	if len(r.Candidates) == 0 {
		return Candidate{}, false
	}
	return r.Candidates[0], true
}

// Planner is the single entry point the rest of the application calls. It
// enumerates every maximal ordering, scores each one against the
// availability index and ranks the result.
type Planner struct {
	step time.Duration
	log  logger.Logger
	bus  eventbus.EventBus
	sink metrics.Sink
}

// New creates a Planner. Logger, bus and sink may be nil; events and metrics
// are then simply not emitted.
func New(cfg Config, log logger.Logger, bus eventbus.EventBus, sink metrics.Sink) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner config: %w", err)
	}
	if log == nil {
		log = logger.Nop{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{step: cfg.Step(), log: log, bus: bus, sink: sink}, nil
}

// Step returns the scheduling step the planner was configured with.
func (p *Planner) Step() time.Duration {
	return p.step
}

// Plan validates the inputs, enumerates maximal orderings, scores and ranks
// them. Validation failures abort the run before enumeration; the
// computation is deterministic, so retrying with unchanged input reproduces
// the same outcome.
func (p *Planner) Plan(ctx context.Context, songs []model.Song, window model.Window, idx *availability.Index) (*Result, error) {
	if err := window.Validate(p.step); err != nil {
		return nil, err
	}
	if idx.Step() != p.step {
		return nil, fmt.Errorf("availability index step %s does not match planner step %s", idx.Step(), p.step)
	}
	if len(songs) > MaxSongs {
		return nil, fmt.Errorf("%d songs exceed the enumeration limit of %d", len(songs), MaxSongs)
	}
	for _, s := range songs {
		if s.Duration <= 0 || s.Duration%p.step != 0 {
			return nil, &model.InvalidDurationError{Value: s.Duration, Step: p.step, Reason: fmt.Sprintf("song %q duration is not a positive multiple of the scheduling step", s.Name)}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()

	candidates := Enumerate(songs, window)
	p.log.Debugw("enumeration complete", map[string]any{
		"run_id":     runID,
		"songs":      len(songs),
		"candidates": len(candidates),
	})
	for _, c := range candidates {
		p.publish(CandidateFound{RunID: runID, Order: c.Order(), Total: c.TotalDuration()})
	}

	records := make([]metrics.CandidateRecord, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cost, err := Score(candidates[i], idx, window.Start)
		if err != nil {
			return nil, err
		}
		candidates[i].Cost = cost
		p.publish(CandidateScored{RunID: runID, Order: candidates[i].Order(), Cost: cost})
		records = append(records, metrics.CandidateRecord{RunID: runID, Order: candidates[i].Order(), Cost: cost})
	}

	Rank(candidates)
	elapsed := time.Since(started)

	res := &Result{RunID: runID, Window: window, Candidates: candidates, Elapsed: elapsed}
	rec := metrics.PlanRecord{
		RunID:      runID,
		Songs:      len(songs),
		Candidates: len(candidates),
		Elapsed:    elapsed,
		PlannedAt:  started,
	}
	if len(candidates) > 0 {
		rec.BestCost = candidates[0].Cost
		rec.WorstCost = candidates[len(candidates)-1].Cost
		p.publish(PlanRanked{RunID: runID, Candidates: len(candidates), BestCost: rec.BestCost})
	}
	if err := p.sink.RecordCandidates(records); err != nil {
		p.log.Warnf("record candidates: %v", err)
	}
	if err := p.sink.RecordPlan(rec); err != nil {
		p.log.Warnf("record plan: %v", err)
	}
	p.log.Infof("run %s ranked %d candidate schedules in %s", runID, len(candidates), elapsed)
	return res, nil
}

func (p *Planner) publish(e eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}
