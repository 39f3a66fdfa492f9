package model

import "time"

// Song describes one rehearsal item: the leader who runs it, the members who
// should attend, and the rehearsal length. Identity is the name. A Song is
// immutable after construction.
type Song struct {
	Name     string
	Leader   Participant
	Members  []Participant
	Duration time.Duration
}

// NewSong builds a Song and validates the rehearsal length against the
// scheduling step. The duration must be a positive multiple of step.
func NewSong(name string, leader Participant, members []Participant, duration, step time.Duration) (Song, error) {
	if step <= 0 {
		return Song{}, &InvalidDurationError{Value: duration, Step: step, Reason: "scheduling step must be positive"}
	}
	if duration <= 0 || duration%step != 0 {
		return Song{}, &InvalidDurationError{Value: duration, Step: step, Reason: "song duration must be a positive multiple of the scheduling step"}
	}
	members = append([]Participant(nil), members...)
	return Song{Name: name, Leader: leader, Members: members, Duration: duration}, nil
}

// String returns the song name.
func (s Song) String() string {
	return s.Name
}

// Equal reports whether both songs denote the same rehearsal item.
func (s Song) Equal(other Song) bool {
	return s.Name == other.Name
}
