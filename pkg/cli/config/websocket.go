package config

import (
	"log/slog"

	"github.com/bmsedge/queuepulse/pkg/controller/ws"
	"github.com/urfave/cli/v3"
)

// WebSocket holds live push configuration
type WebSocket struct {
	Enabled bool
}

// Flags returns CLI flags for WebSocket configuration
func (w *WebSocket) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "websocket",
			Usage:       "Push stored readings to websocket clients on /ws",
			Category:    "WebSocket",
			Value:       true,
			Sources:     cli.EnvVars("QUEUEPULSE_WEBSOCKET"),
			Destination: &w.Enabled,
		},
	}
}

// Configure returns the hub, or nil when live push is disabled
func (w *WebSocket) Configure() *ws.Hub {
	if !w.Enabled {
		return nil
	}
	return ws.New()
}

// LogValue returns structured log value
func (w WebSocket) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", w.Enabled),
	)
}
