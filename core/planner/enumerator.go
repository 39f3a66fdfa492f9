package planner

import (
	"strings"
	"time"

	"github.com/groovebot/groover/core/model"
)

// Candidate is one ordering of songs that fully packs the practice window.
// Each song starts where its predecessor ends, beginning at the window
// start. Cost is written exactly once, after enumeration.
type Candidate struct {
	Songs []model.Song
	Cost  float64
}

// Order returns the song names in practice order.
func (c Candidate) Order() []string {
	names := make([]string, len(c.Songs))
	for i, s := range c.Songs {
		names[i] = s.Name
	}
	return names
}

// TotalDuration returns the summed duration of the ordering.
func (c Candidate) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range c.Songs {
		total += s.Duration
	}
	return total
}

// String returns the ordering as "A > B > C".
func (c Candidate) String() string {
	return strings.Join(c.Order(), " > ")
}

// MaxSongs is the largest song set Enumerate accepts. The search is
// factorial in the number of songs, so anything near this limit is already
// far beyond practical; the bound exists because used songs are tracked in a
// single word.
const MaxSongs = 64

// Enumerate returns every maximal ordering of songs that fits inside the
// window. An ordering is maximal when no unused song could still be appended
// without running past the window end; feasible orderings that waste
// capacity while a song still fits are discarded, never returned. When no
// song fits at all the result is empty.
//
// Discovery order is deterministic: branches follow the input slice order.
func Enumerate(songs []model.Song, window model.Window) []Candidate {
	if len(songs) == 0 || len(songs) > MaxSongs {
		return nil
	}
	e := &enumerator{songs: songs, end: window.End}
	e.search(nil, 0, window.Start)
	return e.found
}

type enumerator struct {
	songs []model.Song
	end   time.Time
	found []Candidate
}

// search explores orderings depth first. order holds indices into e.songs
// and used marks songs already placed. Every branch appends to its own copy
// of order, so branches share no mutable state.
func (e *enumerator) search(order []int, used uint64, cursor time.Time) {
	extended := false
	for i, s := range e.songs {
		if used&(1<<uint(i)) != 0 {
			continue
		}
		if cursor.Add(s.Duration).After(e.end) {
			continue
		}
		next := make([]int, len(order)+1)
		copy(next, order)
		next[len(order)] = i
		e.search(next, used|1<<uint(i), cursor.Add(s.Duration))
		extended = true
	}
	if !extended && len(order) > 0 {
		e.found = append(e.found, e.candidate(order))
	}
}

func (e *enumerator) candidate(order []int) Candidate {
	songs := make([]model.Song, len(order))
	for i, idx := range order {
		songs[i] = e.songs[idx]
	}
	return Candidate{Songs: songs}
}
