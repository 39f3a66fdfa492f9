// Package whenisgood fetches participant availability from a whenisgood.net
// poll's results page. It is the acquisition side of planning: the parsed
// slots feed the availability index, and nothing here is consulted again
// once planning starts.
package whenisgood

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/groovebot/groover/core/logger"
	"github.com/groovebot/groover/core/model"
)

// Client retrieves availability from whenisgood.
type Client struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// NewClient creates a Client. A nil log disables logging.
func NewClient(cfg Config, log logger.Logger) *Client {
	cfg.SetDefaults()
	if log == nil {
		log = logger.Nop{}
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		log:    log,
	}
}

// FetchAvailability downloads and parses the results page, returning the
// respondents in page order and their free slot instants.
func (c *Client) FetchAvailability(ctx context.Context) ([]model.Participant, map[string][]time.Time, error) {
	url := fmt.Sprintf("%s/%s/results/%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), c.cfg.EventID, c.cfg.ResponseCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build whenisgood request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch whenisgood results: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warnf("close response body: %v", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("whenisgood returned %s", resp.Status)
	}
	participants, free, err := ParseResults(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	c.log.Infof("fetched availability for %d respondents from poll %s", len(participants), c.cfg.EventID)
	return participants, free, nil
}
