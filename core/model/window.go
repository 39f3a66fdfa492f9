package model

import "time"

// Window is the practice window the songs must be packed into.
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate checks boundary ordering and step alignment. Both boundaries must
// fall on a multiple of the scheduling step.
func (w Window) Validate(step time.Duration) error {
	if step <= 0 {
		return &InvalidDurationError{Step: step, Reason: "scheduling step must be positive"}
	}
	if w.End.Before(w.Start) {
		return &InvalidDurationError{Value: w.End.Sub(w.Start), Step: step, Reason: "window end precedes window start"}
	}
	if !w.Start.Truncate(step).Equal(w.Start) {
		return &InvalidDurationError{Step: step, Reason: "window start is not aligned to the scheduling step"}
	}
	if !w.End.Truncate(step).Equal(w.End) {
		return &InvalidDurationError{Step: step, Reason: "window end is not aligned to the scheduling step"}
	}
	return nil
}

// Capacity returns the total schedulable time in the window.
func (w Window) Capacity() time.Duration {
	return w.End.Sub(w.Start)
}
