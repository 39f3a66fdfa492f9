// Package config loads and validates the groover configuration from a YAML
// or JSON file with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/groovebot/groover/core/planner"
	"github.com/groovebot/groover/infra/announce"
	"github.com/groovebot/groover/infra/metrics"
	"github.com/groovebot/groover/infra/whenisgood"
)

// Config is the root configuration.
type Config struct {
	Logging    LoggingConfig     `json:"logging"`
	Planner    planner.Config    `json:"planner"`
	Window     WindowConfig      `json:"window"`
	Songs      []SongConfig      `json:"songs"`
	WhenIsGood whenisgood.Config `json:"whenisgood"`
	// AvailabilityFile points at a JSON availability snapshot for offline
	// planning. Exactly one of it and whenisgood must be configured.
	AvailabilityFile string          `json:"availability_file"`
	Metrics          metrics.Config  `json:"metrics"`
	Announce         announce.Config `json:"announce"`
}

// Load reads the configuration file, applies GROOVER_* environment
// overrides, fills defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("GROOVER_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "groover_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}

	cfg.Logging.SetDefaults()
	cfg.Planner.SetDefaults()
	cfg.WhenIsGood.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Announce.SetDefaults()
	for i := range cfg.Songs {
		cfg.Songs[i].SetDefaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and the cross-section rules: a window, at
// least one song, and exactly one availability source.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if err := c.WhenIsGood.Validate(); err != nil {
		return fmt.Errorf("whenisgood: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Announce.Validate(); err != nil {
		return fmt.Errorf("announce: %w", err)
	}
	if _, err := c.Window.Window(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if len(c.Songs) == 0 {
		return fmt.Errorf("at least one song is required")
	}
	if _, err := c.BuildSongs(); err != nil {
		return err
	}
	if c.WhenIsGood.Enabled() == (c.AvailabilityFile != "") {
		return fmt.Errorf("exactly one of whenisgood.event_id and availability_file must be set")
	}
	return nil
}
