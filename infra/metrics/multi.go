package metrics

import coremetrics "github.com/groovebot/groover/core/metrics"

// MultiSink fans planning records out to multiple sinks.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordPlan forwards the record to all sinks, returning the first error.
func (m *MultiSink) RecordPlan(rec coremetrics.PlanRecord) error {
	for _, s := range m.sinks {
		if err := s.RecordPlan(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordCandidates forwards the records to all sinks, returning the first error.
func (m *MultiSink) RecordCandidates(recs []coremetrics.CandidateRecord) error {
	for _, s := range m.sinks {
		if err := s.RecordCandidates(recs); err != nil {
			return err
		}
	}
	return nil
}
