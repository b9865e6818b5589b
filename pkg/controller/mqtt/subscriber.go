package mqtt

import (
	"context"
	"crypto/tls"
	"strings"
	"sync"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/utils/apperr"
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Submitter stores a raw telemetry payload as a reading
type Submitter interface {
	Submit(ctx context.Context, payload []byte) (*model.Reading, error)
}

// Config holds broker connection settings
type Config struct {
	BrokerURL      string
	Username       string
	Password       string
	ClientID       string
	Topics         []string
	QoS            byte
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	CleanSession   bool
	// InsecureSkipVerify disables broker certificate checks on ssl:// and mqtts:// URLs
	InsecureSkipVerify bool
}

// Validate validates the broker configuration
func (c *Config) Validate() error {
	if c.BrokerURL == "" {
		return goerr.New("MQTT broker URL is required")
	}
	if !strings.Contains(c.BrokerURL, "://") {
		return goerr.New("MQTT broker URL must include a scheme such as tcp:// or ssl://",
			goerr.V("url", c.BrokerURL))
	}
	if c.ClientID == "" {
		return goerr.New("MQTT client ID is required")
	}
	if len(c.Topics) == 0 {
		return goerr.New("at least one MQTT topic is required")
	}
	for _, topic := range c.Topics {
		if strings.TrimSpace(topic) == "" {
			return goerr.New("MQTT topic must not be empty")
		}
	}
	if c.QoS > 2 {
		return goerr.New("MQTT QoS must be 0, 1 or 2", goerr.V("qos", c.QoS))
	}
	return nil
}

func (c *Config) isTLS() bool {
	for _, scheme := range []string{"ssl://", "tls://", "mqtts://", "wss://"} {
		if strings.HasPrefix(c.BrokerURL, scheme) {
			return true
		}
	}
	return false
}

// Subscriber receives telemetry from an MQTT broker and hands every payload
// to the ingestion use case
type Subscriber struct {
	cfg    Config
	ingest Submitter

	mu     sync.Mutex
	client paho.Client
	ctx    context.Context
}

// NewSubscriber creates a Subscriber. Call Start to connect.
func NewSubscriber(cfg Config, ingest Submitter) (*Subscriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid MQTT configuration")
	}
	return &Subscriber{
		cfg:    cfg,
		ingest: ingest,
		ctx:    context.Background(),
	}, nil
}

// Start connects to the broker and subscribes to the configured topics. The
// subscription is renewed on every reconnect. ctx supplies the logger and
// must outlive the subscriber.
func (s *Subscriber) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return goerr.New("MQTT subscriber already started")
	}
	s.ctx = ctx

	client := paho.NewClient(s.clientOptions())
	token := client.Connect()
	if !token.WaitTimeout(s.connectTimeout()) {
		client.Disconnect(0)
		return goerr.New("timed out connecting to MQTT broker", goerr.V("url", s.cfg.BrokerURL))
	}
	if err := token.Error(); err != nil {
		return goerr.Wrap(err, "failed to connect to MQTT broker", goerr.V("url", s.cfg.BrokerURL))
	}

	s.client = client
	return nil
}

// Stop unsubscribes and disconnects, waiting briefly for in-flight messages
func (s *Subscriber) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return
	}
	if s.client.IsConnected() {
		s.client.Unsubscribe(s.cfg.Topics...).WaitTimeout(time.Second)
	}
	s.client.Disconnect(250)
	s.client = nil

	ctxlog.From(s.ctx).Info("MQTT subscriber stopped")
}

// HandleMessage stores one received payload. Rejected payloads are logged
// and dropped so one bad sensor cannot stall the subscription.
func (s *Subscriber) HandleMessage(_ paho.Client, msg paho.Message) {
	ctx := s.ctx
	logger := ctxlog.From(ctx)

	reading, err := s.ingest.Submit(ctx, msg.Payload())
	if err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "failed to ingest MQTT message",
			goerr.V("topic", msg.Topic()),
			goerr.V("payload", string(msg.Payload()))))
		return
	}

	logger.Debug("MQTT message ingested",
		"topic", msg.Topic(),
		"id", reading.ID,
		"counter", reading.CounterName,
	)
}

func (s *Subscriber) clientOptions() *paho.ClientOptions {
	opts := paho.NewClientOptions().
		AddBroker(s.cfg.BrokerURL).
		SetClientID(s.cfg.ClientID).
		SetCleanSession(s.cfg.CleanSession).
		SetAutoReconnect(true).
		SetConnectTimeout(s.connectTimeout()).
		SetOnConnectHandler(s.onConnect).
		SetConnectionLostHandler(s.onConnectionLost)

	if s.cfg.KeepAlive > 0 {
		opts.SetKeepAlive(s.cfg.KeepAlive)
	}
	if s.cfg.Username != "" {
		opts.SetUsername(s.cfg.Username)
	}
	if s.cfg.Password != "" {
		opts.SetPassword(s.cfg.Password)
	}
	if s.cfg.isTLS() {
		opts.SetTLSConfig(&tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: s.cfg.InsecureSkipVerify, // #nosec G402 opt-in for self-signed brokers
		})
	}

	return opts
}

func (s *Subscriber) connectTimeout() time.Duration {
	if s.cfg.ConnectTimeout > 0 {
		return s.cfg.ConnectTimeout
	}
	return 30 * time.Second
}

// onConnect runs on the first connect and on every automatic reconnect
func (s *Subscriber) onConnect(client paho.Client) {
	logger := ctxlog.From(s.ctx)

	filters := make(map[string]byte, len(s.cfg.Topics))
	for _, topic := range s.cfg.Topics {
		filters[topic] = s.cfg.QoS
	}

	token := client.SubscribeMultiple(filters, s.HandleMessage)
	if !token.WaitTimeout(s.connectTimeout()) {
		logger.Error("Timed out subscribing to MQTT topics", "topics", s.cfg.Topics)
		return
	}
	if err := token.Error(); err != nil {
		apperr.Handle(s.ctx, goerr.Wrap(err, "failed to subscribe to MQTT topics",
			goerr.V("topics", s.cfg.Topics)))
		return
	}

	logger.Info("MQTT subscriber connected",
		"broker", s.cfg.BrokerURL,
		"clientId", s.cfg.ClientID,
		"topics", s.cfg.Topics,
		"qos", s.cfg.QoS,
	)
}

func (s *Subscriber) onConnectionLost(_ paho.Client, err error) {
	ctxlog.From(s.ctx).Warn("MQTT connection lost, reconnecting", "error", err)
}
