// Package app wires configuration, availability acquisition, the planner
// and the output sinks into a runnable service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	coremetrics "github.com/groovebot/groover/core/metrics"
	"github.com/groovebot/groover/core/planner"

	"github.com/groovebot/groover/config"
	"github.com/groovebot/groover/core/availability"
	"github.com/groovebot/groover/infra/announce"
	"github.com/groovebot/groover/infra/logger"
	"github.com/groovebot/groover/infra/metrics"
	"github.com/groovebot/groover/infra/whenisgood"
	"github.com/groovebot/groover/internal/eventbus"
)

// Service runs one planning pass: fetch availability, rank schedules,
// report and optionally announce them.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	bus       *eventbus.Bus
	planner   *planner.Planner
	source    AvailabilitySource
	announcer *announce.Announcer
	out       io.Writer
}

// New creates a Service from the configuration. Results are rendered to
// out; pass nil for stdout.
func New(cfg *config.Config, out io.Writer) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")
	if out == nil {
		out = os.Stdout
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics, logger.New("influx-sink")))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	p, err := planner.New(cfg.Planner, logger.New("planner"), bus, sink)
	if err != nil {
		return nil, err
	}

	var source AvailabilitySource
	if cfg.WhenIsGood.Enabled() {
		source = whenisgood.NewClient(cfg.WhenIsGood, logger.New("whenisgood"))
	} else {
		source = FileSource{Path: cfg.AvailabilityFile}
	}

	var announcer *announce.Announcer
	if cfg.Announce.Enabled {
		announcer, err = announce.New(cfg.Announce, logger.New("announce"))
		if err != nil {
			return nil, fmt.Errorf("announcer: %w", err)
		}
	}

	return &Service{
		cfg:       cfg,
		log:       logg,
		bus:       bus,
		planner:   p,
		source:    source,
		announcer: announcer,
		out:       out,
	}, nil
}

// Run executes one planning pass. When Prometheus is enabled it keeps
// serving /metrics until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events := s.bus.Subscribe()
	go s.logEvents(events)

	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	res, err := s.plan(ctx)
	if err != nil {
		return err
	}
	s.render(res)

	if s.announcer != nil {
		if err := s.announcer.Announce(ctx, res); err != nil {
			return fmt.Errorf("announce plan: %w", err)
		}
	}

	if s.cfg.Metrics.PrometheusEnabled {
		s.log.Infof("serving metrics on %s until interrupted", s.cfg.Metrics.PrometheusPort)
		<-ctx.Done()
	}
	return nil
}

func (s *Service) plan(ctx context.Context) (*planner.Result, error) {
	participants, free, err := s.source.FetchAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch availability: %w", err)
	}
	s.log.Debugf("availability loaded for %d participants", len(participants))

	idx, err := availability.NewIndex(s.planner.Step(), free)
	if err != nil {
		return nil, err
	}
	songs, err := s.cfg.BuildSongs()
	if err != nil {
		return nil, err
	}
	window, err := s.cfg.Window.Window()
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(ctx, songs, window, idx)
}

func (s *Service) render(res *planner.Result) {
	if len(res.Candidates) == 0 {
		fmt.Fprintf(s.out, "run %s: no schedule fits the window\n", res.RunID)
		return
	}
	fmt.Fprintf(s.out, "run %s: %d schedules ranked\n", res.RunID, len(res.Candidates))
	for i, c := range res.Candidates {
		fmt.Fprintf(s.out, "%3d. %-40s cost %.0f\n", i+1, c.String(), c.Cost)
	}
	sum := planner.Summarize(res.Candidates)
	fmt.Fprintf(s.out, "best %.0f  worst %.0f  mean %.1f  median %.1f  stddev %.1f\n",
		sum.BestCost, sum.WorstCost, sum.MeanCost, sum.MedianCost, sum.StdDev)
}

func (s *Service) logEvents(events <-chan eventbus.Event) {
	for e := range events {
		switch ev := e.(type) {
		case planner.CandidateFound:
			s.log.Debugw("candidate found", map[string]any{"run_id": ev.RunID, "order": ev.Order, "total": ev.Total.String()})
		case planner.CandidateScored:
			s.log.Debugw("candidate scored", map[string]any{"run_id": ev.RunID, "order": ev.Order, "cost": ev.Cost})
		case planner.PlanRanked:
			s.log.Debugw("plan ranked", map[string]any{"run_id": ev.RunID, "candidates": ev.Candidates, "best_cost": ev.BestCost})
		}
	}
}

// Close releases the announcer connection and the event bus.
func (s *Service) Close() error {
	if s.announcer != nil {
		s.announcer.Close()
	}
	s.bus.Close()
	return nil
}
