package planner

import (
	"math"
	"testing"

	"github.com/groovebot/groover/core/model"
)

func TestSummarize(t *testing.T) {
	cands := []Candidate{
		{Songs: []model.Song{{Name: "a"}, {Name: "b"}}, Cost: 1},
		{Songs: []model.Song{{Name: "b"}, {Name: "a"}}, Cost: 2},
		{Songs: []model.Song{{Name: "c"}}, Cost: 3},
	}
	s := Summarize(cands)
	if s.Candidates != 3 {
		t.Fatalf("candidates %d", s.Candidates)
	}
	if s.BestCost != 1 || s.WorstCost != 3 {
		t.Fatalf("best/worst %v/%v", s.BestCost, s.WorstCost)
	}
	if len(s.BestOrder) != 2 || s.BestOrder[0] != "a" {
		t.Fatalf("best order %v", s.BestOrder)
	}
	if s.MeanCost != 2 || s.MedianCost != 2 {
		t.Fatalf("mean/median %v/%v", s.MeanCost, s.MedianCost)
	}
	if math.Abs(s.StdDev-1) > 1e-12 {
		t.Fatalf("stddev %v", s.StdDev)
	}
}

func TestSummarizeSingleCandidate(t *testing.T) {
	s := Summarize([]Candidate{{Songs: []model.Song{{Name: "a"}}, Cost: 5}})
	if s.StdDev != 0 || s.MeanCost != 5 || s.MedianCost != 5 {
		t.Fatalf("unexpected summary %#v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s.Candidates != 0 || s.BestOrder != nil {
		t.Fatalf("expected zero summary, got %#v", s)
	}
}
