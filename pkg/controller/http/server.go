package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// Config holds the HTTP surface settings
type Config struct {
	addr     string
	location *time.Location
}

// NewConfig creates a new HTTP configuration. loc is the zone used for
// query times without an offset; nil means time.Local.
func NewConfig(addr string, loc *time.Location) *Config {
	if loc == nil {
		loc = time.Local
	}
	return &Config{
		addr:     addr,
		location: loc,
	}
}

// UseCases bundles the use cases the HTTP surface serves
type UseCases struct {
	congestion interfaces.Congestion
	ingest     interfaces.Ingest
}

// NewUseCases creates a new UseCases bundle
func NewUseCases(congestionUC interfaces.Congestion, ingestUC interfaces.Ingest) *UseCases {
	return &UseCases{
		congestion: congestionUC,
		ingest:     ingestUC,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server. live serves the websocket endpoint and
// may be nil when live push is disabled.
func NewServer(ctx context.Context, cfg *Config, useCases *UseCases, live http.Handler) (*Server, error) {
	router := chi.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	readings := &readingHandler{ingest: useCases.ingest}
	congestion := &congestionHandler{congestion: useCases.congestion, loc: cfg.location}

	// Health check
	router.Get("/health", handleHealth)

	// API routes
	router.Route("/api", func(r chi.Router) {
		r.Use(CORS)

		r.Route("/readings", func(r chi.Router) {
			r.Post("/", readings.handleSubmit)
			r.Delete("/", readings.handlePurge)
			r.Get("/recent", readings.handleRecent)
			r.Get("/stats", readings.handleStats)
			r.Get("/counters/{counterName}/latest", readings.handleLatestByCounter)
			r.Get("/devices/{deviceId}/latest", readings.handleLatestByDevice)
			r.Get("/devices/{deviceId}", readings.handleListByDevice)
		})

		r.Route("/congestion", func(r chi.Router) {
			r.Get("/daily", congestion.handleDaily)
			r.Get("/window", congestion.handleWindow)
			r.Get("/session", congestion.handleSession)
		})
	})

	if live != nil {
		router.Handle("/ws", live)
		ctxlog.From(ctx).Info("Live push endpoint enabled", "path", "/ws")
	}

	router.Get("/", handleHome)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "queuepulse",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleHome lists the available endpoints
func handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>QueuePulse</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            margin: 2rem;
        }
        code {
            background: #f3f3f3;
            padding: 0 0.3rem;
        }
    </style>
</head>
<body>
    <h1>QueuePulse</h1>
    <p>Counter queue telemetry and congestion reports</p>
    <ul>
        <li><code>POST /api/readings</code></li>
        <li><code>GET /api/readings/recent?limit=</code></li>
        <li><code>GET /api/congestion/daily?date=YYYY-MM-DD</code></li>
        <li><code>GET /api/congestion/window?from=&amp;to=</code></li>
        <li><code>GET /api/congestion/session?from=&amp;to=</code></li>
        <li><code>GET /ws</code></li>
    </ul>
</body>
</html>`)); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write home page", "error", err)
	}
}
