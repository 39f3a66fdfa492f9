package config

import (
	"fmt"
	"time"

	"github.com/groovebot/groover/core/model"
)

// WindowConfig declares the practice window boundaries as RFC3339 instants.
type WindowConfig struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Window parses the boundaries into a model Window. Alignment to the
// scheduling step is checked later by the planner.
func (w WindowConfig) Window() (model.Window, error) {
	start, err := time.Parse(time.RFC3339, w.Start)
	if err != nil {
		return model.Window{}, fmt.Errorf("parse start %q: %w", w.Start, err)
	}
	end, err := time.Parse(time.RFC3339, w.End)
	if err != nil {
		return model.Window{}, fmt.Errorf("parse end %q: %w", w.End, err)
	}
	return model.Window{Start: start.UTC(), End: end.UTC()}, nil
}

// SongConfig declares one rehearsal item.
type SongConfig struct {
	Name            string   `json:"name"`
	Leader          string   `json:"leader"`
	Members         []string `json:"members"`
	DurationMinutes int      `json:"duration_minutes"`
}

// SetDefaults applies the standard one-hour rehearsal length.
func (s *SongConfig) SetDefaults() {
	if s.DurationMinutes == 0 {
		s.DurationMinutes = 60
	}
}

// Song builds the validated model Song for the given scheduling step.
func (s SongConfig) Song(step time.Duration) (model.Song, error) {
	if s.Name == "" {
		return model.Song{}, fmt.Errorf("song name is required")
	}
	if s.Leader == "" {
		return model.Song{}, fmt.Errorf("song %q: leader is required", s.Name)
	}
	members := make([]model.Participant, len(s.Members))
	for i, m := range s.Members {
		members[i] = model.Participant{Name: m}
	}
	duration := time.Duration(s.DurationMinutes) * time.Minute
	return model.NewSong(s.Name, model.Participant{Name: s.Leader}, members, duration, step)
}

// BuildSongs constructs the full validated song list. Song names must be
// unique because they carry identity.
func (c *Config) BuildSongs() ([]model.Song, error) {
	step := c.Planner.Step()
	songs := make([]model.Song, 0, len(c.Songs))
	seen := make(map[string]bool, len(c.Songs))
	for _, sc := range c.Songs {
		s, err := sc.Song(step)
		if err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate song name %q", s.Name)
		}
		seen[s.Name] = true
		songs = append(songs, s)
	}
	return songs, nil
}
