package model

import (
	"fmt"
	"time"
)

// InvalidDurationError reports a duration or window boundary that does not
// respect the discrete scheduling step. It is returned at construction time,
// before any planning starts.
type InvalidDurationError struct {
	Value  time.Duration
	Step   time.Duration
	Reason string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("%s (value %s, step %s)", e.Reason, e.Value, e.Step)
}
