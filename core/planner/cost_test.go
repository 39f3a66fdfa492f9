package planner

import (
	"testing"
	"time"

	"github.com/groovebot/groover/core/availability"
	"github.com/groovebot/groover/core/model"
)

// fullSlots returns free slot instants covering [windowStart, windowStart+n*step).
func fullSlots(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = windowStart.Add(time.Duration(i) * step)
	}
	return out
}

func mustIndex(t *testing.T, free map[string][]time.Time) *availability.Index {
	t.Helper()
	idx, err := availability.NewIndex(step, free)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	return idx
}

func TestScoreAllAvailable(t *testing.T) {
	songs := []model.Song{
		mustSong(t, "s1", "ana", []string{"bob"}, time.Hour),
		mustSong(t, "s2", "cleo", []string{"dana"}, time.Hour),
	}
	idx := mustIndex(t, map[string][]time.Time{
		"ana": fullSlots(4), "bob": fullSlots(4), "cleo": fullSlots(4), "dana": fullSlots(4),
	})
	cost, err := Score(Candidate{Songs: songs}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if cost != 0 {
		t.Fatalf("expected zero cost, got %v", cost)
	}
}

// Leader missing the first slot penalizes the ordering that schedules their
// song first, and only that ordering.
func TestScoreLeaderMissFirstSlot(t *testing.T) {
	s1 := mustSong(t, "s1", "ana", []string{"bob"}, time.Hour)
	s2 := mustSong(t, "s2", "cleo", []string{"dana"}, time.Hour)
	idx := mustIndex(t, map[string][]time.Time{
		"ana":  fullSlots(4)[1:], // free from 18:30 only
		"bob":  fullSlots(4),
		"cleo": fullSlots(4),
		"dana": fullSlots(4),
	})

	first, err := Score(Candidate{Songs: []model.Song{s1, s2}}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if first != 2500 {
		t.Fatalf("s1 first: expected 2500, got %v", first)
	}

	second, err := Score(Candidate{Songs: []model.Song{s2, s1}}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if second != 0 {
		t.Fatalf("s1 second: expected 0, got %v", second)
	}
}

func TestScoreMemberMisses(t *testing.T) {
	s := mustSong(t, "s1", "ana", []string{"bob", "cleo", "dana"}, time.Hour)
	idx := mustIndex(t, map[string][]time.Time{
		"ana": fullSlots(2),
		"bob": fullSlots(2),
		// cleo and dana have no entries at all: closed world, never available
	})
	cost, err := Score(Candidate{Songs: []model.Song{s}}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if cost != 4 {
		t.Fatalf("expected (0+2)^2 = 4, got %v", cost)
	}
}

func TestScoreLeaderAndMemberMiss(t *testing.T) {
	s := mustSong(t, "s1", "ana", []string{"bob"}, time.Hour)
	idx := mustIndex(t, map[string][]time.Time{"someone_else": fullSlots(2)})
	cost, err := Score(Candidate{Songs: []model.Song{s}}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if cost != 51*51 {
		t.Fatalf("expected 2601, got %v", cost)
	}
}

func TestScoreSquaringConcentratesPenalty(t *testing.T) {
	// two songs with one member miss each: 1^2 + 1^2 = 2
	// one song with both misses:           2^2       = 4
	spread := []model.Song{
		mustSong(t, "s1", "ana", []string{"gone1"}, time.Hour),
		mustSong(t, "s2", "bob", []string{"gone2"}, time.Hour),
	}
	concentrated := []model.Song{
		mustSong(t, "s3", "ana", []string{"gone1", "gone2"}, time.Hour),
		mustSong(t, "s4", "bob", nil, time.Hour),
	}
	idx := mustIndex(t, map[string][]time.Time{"ana": fullSlots(4), "bob": fullSlots(4)})

	a, err := Score(Candidate{Songs: spread}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	b, err := Score(Candidate{Songs: concentrated}, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if a != 2 || b != 4 {
		t.Fatalf("expected 2 and 4, got %v and %v", a, b)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := mustSong(t, "s1", "ana", []string{"bob", "cleo"}, time.Hour)
	idx := mustIndex(t, map[string][]time.Time{"ana": fullSlots(2), "bob": fullSlots(1)})
	c := Candidate{Songs: []model.Song{s}}
	first, err := Score(c, idx, windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Score(c, idx, windowStart)
		if err != nil {
			t.Fatalf("score: %v", err)
		}
		if again != first {
			t.Fatalf("score changed between runs: %v then %v", first, again)
		}
	}
}

// Removing any slot from any participant never decreases the cost.
func TestScoreMonotonicity(t *testing.T) {
	s := mustSong(t, "s1", "ana", []string{"bob", "cleo"}, time.Hour)
	c := Candidate{Songs: []model.Song{s}}
	base := map[string][]time.Time{"ana": fullSlots(2), "bob": fullSlots(2), "cleo": fullSlots(2)}
	baseCost, err := Score(c, mustIndex(t, base), windowStart)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for name := range base {
		for drop := 0; drop < 2; drop++ {
			reduced := map[string][]time.Time{}
			for n, ts := range base {
				reduced[n] = ts
			}
			var kept []time.Time
			for i, ts := range base[name] {
				if i != drop {
					kept = append(kept, ts)
				}
			}
			reduced[name] = kept
			cost, err := Score(c, mustIndex(t, reduced), windowStart)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if cost < baseCost {
				t.Fatalf("dropping %s slot %d decreased cost: %v < %v", name, drop, cost, baseCost)
			}
		}
	}
}
