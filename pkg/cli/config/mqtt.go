package config

import (
	"log/slog"
	"time"

	"github.com/bmsedge/queuepulse/pkg/controller/mqtt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// MQTT holds broker subscription configuration. Ingestion over MQTT is
// disabled while BrokerURL is empty.
type MQTT struct {
	BrokerURL          string
	Username           string
	Password           string
	ClientID           string
	Topics             []string
	QoS                int
	KeepAlive          time.Duration
	ConnectTimeout     time.Duration
	CleanSession       bool
	InsecureSkipVerify bool
}

// Flags returns CLI flags for MQTT configuration
func (m *MQTT) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mqtt-broker",
			Usage:       "MQTT broker URL, e.g. tcp://localhost:1883 or ssl://broker:8883 (disabled when empty)",
			Category:    "MQTT",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_BROKER"),
			Destination: &m.BrokerURL,
		},
		&cli.StringFlag{
			Name:        "mqtt-username",
			Usage:       "MQTT username",
			Category:    "MQTT",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_USERNAME"),
			Destination: &m.Username,
		},
		&cli.StringFlag{
			Name:        "mqtt-password",
			Usage:       "MQTT password",
			Category:    "MQTT",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_PASSWORD"),
			Destination: &m.Password,
		},
		&cli.StringFlag{
			Name:        "mqtt-client-id",
			Usage:       "MQTT client ID (must be unique per broker)",
			Category:    "MQTT",
			Value:       "queuepulse",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_CLIENT_ID"),
			Destination: &m.ClientID,
		},
		&cli.StringSliceFlag{
			Name:        "mqtt-topic",
			Usage:       "Topic filter to subscribe to (repeatable)",
			Category:    "MQTT",
			Value:       []string{"queuepulse/telemetry/#"},
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_TOPICS"),
			Destination: &m.Topics,
		},
		&cli.IntFlag{
			Name:        "mqtt-qos",
			Usage:       "Subscription QoS (0, 1 or 2)",
			Category:    "MQTT",
			Value:       1,
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_QOS"),
			Destination: &m.QoS,
		},
		&cli.DurationFlag{
			Name:        "mqtt-keepalive",
			Usage:       "Keepalive interval",
			Category:    "MQTT",
			Value:       60 * time.Second,
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_KEEPALIVE"),
			Destination: &m.KeepAlive,
		},
		&cli.DurationFlag{
			Name:        "mqtt-connect-timeout",
			Usage:       "Timeout for connecting and subscribing",
			Category:    "MQTT",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_CONNECT_TIMEOUT"),
			Destination: &m.ConnectTimeout,
		},
		&cli.BoolFlag{
			Name:        "mqtt-clean-session",
			Usage:       "Start a clean session instead of resuming queued messages",
			Category:    "MQTT",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_CLEAN_SESSION"),
			Destination: &m.CleanSession,
		},
		&cli.BoolFlag{
			Name:        "mqtt-insecure",
			Usage:       "Skip broker certificate verification on TLS URLs",
			Category:    "MQTT",
			Sources:     cli.EnvVars("QUEUEPULSE_MQTT_INSECURE"),
			Destination: &m.InsecureSkipVerify,
		},
	}
}

// Enabled reports whether a broker is configured
func (m *MQTT) Enabled() bool {
	return m.BrokerURL != ""
}

// Configure returns a subscriber feeding ingest, or nil when no broker is configured
func (m *MQTT) Configure(ingest mqtt.Submitter) (*mqtt.Subscriber, error) {
	if !m.Enabled() {
		return nil, nil
	}
	if m.QoS < 0 || m.QoS > 2 {
		return nil, goerr.New("MQTT QoS must be 0, 1 or 2", goerr.V("qos", m.QoS))
	}

	sub, err := mqtt.NewSubscriber(mqtt.Config{
		BrokerURL:          m.BrokerURL,
		Username:           m.Username,
		Password:           m.Password,
		ClientID:           m.ClientID,
		Topics:             m.Topics,
		QoS:                byte(m.QoS),
		KeepAlive:          m.KeepAlive,
		ConnectTimeout:     m.ConnectTimeout,
		CleanSession:       m.CleanSession,
		InsecureSkipVerify: m.InsecureSkipVerify,
	}, ingest)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// LogValue returns structured log value. The password is never logged.
func (m MQTT) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("broker", m.BrokerURL),
		slog.String("username", m.Username),
		slog.Bool("password_set", m.Password != ""),
		slog.String("client_id", m.ClientID),
		slog.Any("topics", m.Topics),
		slog.Int("qos", m.QoS),
		slog.Duration("keepalive", m.KeepAlive),
		slog.Bool("clean_session", m.CleanSession),
	)
}
