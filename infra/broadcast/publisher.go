package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"precal/core/planner"
	"precal/infra/logger"
)

// Config defines the connection parameters for the plan broadcaster.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Topic receives finished plan reports as JSON.
	Topic  string `json:"topic"`
	QoS    byte   `json:"qos"`
	Retain bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "precal/plans"
	}
	if c.ClientID == "" {
		c.ClientID = "precal"
	}
}

// Validate checks mandatory fields when broadcasting is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required when broadcast is enabled")
	}
	return nil
}

// Publisher pushes plan reports to subscribers such as planning dashboards.
type Publisher interface {
	PublishPlan(rep planner.Report) error
	Close() error
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli    paho.Client
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) paho.Client {
	return paho.NewClient(opts)
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	log := logger.New("plan-broadcast")
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoPublisher{cli: c, topic: cfg.Topic, qos: cfg.QoS, retain: cfg.Retain, log: log}, nil
}

// PublishPlan serializes the report and publishes it on the configured topic.
func (p *PahoPublisher) PublishPlan(rep planner.Report) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal plan %s: %w", rep.PlanID, err)
	}
	token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish plan %s: timeout", rep.PlanID)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish plan %s: %w", rep.PlanID, err)
	}
	p.log.Debugw("plan published", map[string]any{"plan_id": rep.PlanID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
