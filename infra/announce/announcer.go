// Package announce publishes ranked practice plans to an MQTT topic so
// downstream consumers (band chat bots, displays) can pick up the result
// without polling the planner host.
package announce

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/groovebot/groover/core/logger"
	"github.com/groovebot/groover/core/planner"
)

// pahoClient is the subset of the Paho client the announcer uses.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// planMessage is the published payload.
type planMessage struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	WindowStart time.Time         `json:"window_start"`
	WindowEnd   time.Time         `json:"window_end"`
	Schedules   []scheduleMessage `json:"schedules"`
}

type scheduleMessage struct {
	Order []string `json:"order"`
	Cost  float64  `json:"cost"`
}

// Announcer publishes plan results over MQTT.
type Announcer struct {
	cli     pahoClient
	cfg     Config
	log     logger.Logger
	timeout time.Duration
}

// New connects to the broker and returns an Announcer. A nil log disables
// logging.
func New(cfg Config, log logger.Logger) (*Announcer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop{}
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("announce connection lost: %v", err)
	}
	cli := newMQTTClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect announce broker: %w", token.Error())
	}
	return &Announcer{
		cli:     cli,
		cfg:     cfg,
		log:     log,
		timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
	}, nil
}

// Announce publishes the ranked plan as JSON. The context bounds the wait
// for broker confirmation together with the configured timeout.
func (a *Announcer) Announce(ctx context.Context, res *planner.Result) error {
	msg := planMessage{
		RunID:       res.RunID,
		GeneratedAt: time.Now().UTC(),
		WindowStart: res.Window.Start,
		WindowEnd:   res.Window.End,
		Schedules:   make([]scheduleMessage, len(res.Candidates)),
	}
	for i, c := range res.Candidates {
		msg.Schedules[i] = scheduleMessage{Order: c.Order(), Cost: c.Cost}
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal plan message: %w", err)
	}
	token := a.cli.Publish(a.cfg.Topic, a.cfg.QoS, a.cfg.Retain, payload)
	timeout := a.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("publish plan to %s: timeout after %s", a.cfg.Topic, timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish plan to %s: %w", a.cfg.Topic, err)
	}
	a.log.Infof("announced run %s with %d schedules on %s", res.RunID, len(msg.Schedules), a.cfg.Topic)
	return nil
}

// Close disconnects from the broker.
func (a *Announcer) Close() {
	if a.cli.IsConnected() {
		a.cli.Disconnect(250)
	}
}
