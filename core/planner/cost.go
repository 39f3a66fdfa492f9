package planner

import (
	"fmt"
	"time"

	"github.com/groovebot/groover/core/availability"
	"github.com/groovebot/groover/core/model"
)

// LeaderPenalty is the cost of scheduling a song while its leader cannot
// attend. Each missing member costs 1.
const LeaderPenalty = 50

// Score replays the candidate's songs back to back from start and returns
// the attendance penalty against the index. Each song's misses are squared
// before being added, so many misses concentrated on one song weigh more
// than the same misses spread across songs.
//
// Scoring is pure: identical inputs always produce the same number.
func Score(c Candidate, idx *availability.Index, start time.Time) (float64, error) {
	cursor := start
	var total float64
	for _, s := range c.Songs {
		end := cursor.Add(s.Duration)
		cost, err := songCost(s, idx, cursor, end)
		if err != nil {
			return 0, fmt.Errorf("score song %q: %w", s.Name, err)
		}
		total += cost * cost
		cursor = end
	}
	return total, nil
}

func songCost(s model.Song, idx *availability.Index, start, end time.Time) (float64, error) {
	var cost float64
	ok, err := idx.Available(s.Leader, start, end)
	if err != nil {
		return 0, err
	}
	if !ok {
		cost += LeaderPenalty
	}
	for _, m := range s.Members {
		ok, err := idx.Available(m, start, end)
		if err != nil {
			return 0, err
		}
		if !ok {
			cost++
		}
	}
	return cost, nil
}
