package whenisgood

import "fmt"

// Config defines access to a whenisgood.net results page.
type Config struct {
	// EventID is the poll identifier from the whenisgood URL.
	EventID string `json:"event_id"`
	// ResponseCode is the results code for the poll.
	ResponseCode string `json:"response_code"`
	// BaseURL overrides the whenisgood endpoint, mainly for tests.
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://whenisgood.net"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 10
	}
}

// Enabled reports whether a poll is configured.
func (c Config) Enabled() bool {
	return c.EventID != ""
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.EventID != "" && c.ResponseCode == "" {
		return fmt.Errorf("response_code is required when event_id is set")
	}
	return nil
}
