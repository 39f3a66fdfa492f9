package planner

import (
	"errors"
	"time"
)

// Config defines planning parameters loaded from configuration.
type Config struct {
	// StepMinutes is the discrete scheduling granularity. Every song
	// duration, window boundary and availability slot must align to it.
	StepMinutes int `json:"step_minutes"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.StepMinutes == 0 {
		c.StepMinutes = 30
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.StepMinutes <= 0 {
		return errors.New("step_minutes must be positive")
	}
	return nil
}

// Step returns the scheduling step as a duration.
func (c Config) Step() time.Duration {
	return time.Duration(c.StepMinutes) * time.Minute
}
