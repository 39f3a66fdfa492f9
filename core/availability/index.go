// Package availability provides a read-only view of which discrete time
// slots each participant is free for. The index is built once from poll
// results and queried during planning; absence of a slot means the
// participant is unavailable at that time.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/groovebot/groover/core/model"
)

// UnalignedQueryError reports a query boundary that does not fall on a
// multiple of the scheduling step. It always indicates a caller bug rather
// than bad input data, so it is never silently rounded away.
type UnalignedQueryError struct {
	Boundary time.Time
	Step     time.Duration
}

func (e *UnalignedQueryError) Error() string {
	return fmt.Sprintf("query boundary %s is not aligned to the %s scheduling step", e.Boundary.Format(time.RFC3339), e.Step)
}

// Index maps participants to the discrete slots they are free for.
type Index struct {
	step  time.Duration
	slots map[string]map[int64]struct{}
}

// NewIndex builds an Index from per-participant free slot instants. The map
// keys are participant names; each instant marks the start of one free step.
func NewIndex(step time.Duration, free map[string][]time.Time) (*Index, error) {
	if step <= 0 {
		return nil, fmt.Errorf("scheduling step must be positive, got %s", step)
	}
	idx := &Index{step: step, slots: make(map[string]map[int64]struct{}, len(free))}
	for name, instants := range free {
		set := make(map[int64]struct{}, len(instants))
		for _, t := range instants {
			set[t.Unix()] = struct{}{}
		}
		idx.slots[name] = set
	}
	return idx, nil
}

// Step returns the discrete step the index was built with.
func (idx *Index) Step() time.Duration {
	return idx.step
}

// Participants returns the names present in the index, sorted.
func (idx *Index) Participants() []string {
	names := make([]string, 0, len(idx.slots))
	for name := range idx.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Slots returns the free slot instants recorded for a participant, sorted.
func (idx *Index) Slots(name string) []time.Time {
	set := idx.slots[name]
	out := make([]time.Time, 0, len(set))
	for sec := range set {
		out = append(out, time.Unix(sec, 0).UTC())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Available reports whether the participant is free for every slot in
// [start, end). It short-circuits on the first missing slot. A participant
// with no recorded slots is available nowhere. Both boundaries must be
// aligned to the scheduling step.
func (idx *Index) Available(p model.Participant, start, end time.Time) (bool, error) {
	if !start.Truncate(idx.step).Equal(start) {
		return false, &UnalignedQueryError{Boundary: start, Step: idx.step}
	}
	if !end.Truncate(idx.step).Equal(end) {
		return false, &UnalignedQueryError{Boundary: end, Step: idx.step}
	}
	free := idx.slots[p.Name]
	for t := start; t.Before(end); t = t.Add(idx.step) {
		if _, ok := free[t.Unix()]; !ok {
			return false, nil
		}
	}
	return true, nil
}
