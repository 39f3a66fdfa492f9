package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/groovebot/groover/core/model"
)

// AvailabilitySource supplies participant availability for one planning run.
// It is implemented by the whenisgood client and by FileSource.
type AvailabilitySource interface {
	FetchAvailability(ctx context.Context) ([]model.Participant, map[string][]time.Time, error)
}

// FileSource reads an availability snapshot from a JSON file mapping
// participant names to RFC3339 slot instants. It enables offline planning
// and reproducible runs.
type FileSource struct {
	Path string
}

// FetchAvailability implements AvailabilitySource.
func (f FileSource) FetchAvailability(_ context.Context) ([]model.Participant, map[string][]time.Time, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("read availability file: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse availability file %s: %w", f.Path, err)
	}
	free := make(map[string][]time.Time, len(raw))
	participants := make([]model.Participant, 0, len(raw))
	for name, slots := range raw {
		participants = append(participants, model.Participant{Name: name})
		for _, s := range slots {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, nil, fmt.Errorf("parse slot %q for %s: %w", s, name, err)
			}
			free[name] = append(free[name], t.UTC())
		}
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i].Name < participants[j].Name })
	return participants, free, nil
}
