package usecase

import (
	"context"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/bmsedge/queuepulse/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultRecentLimit is used when Recent is called without a positive limit
	DefaultRecentLimit = 50
	// MaxRecentLimit caps the number of readings Recent returns
	MaxRecentLimit = 1000

	// EventReading is the live event name for a newly stored reading
	EventReading = "reading"
)

// IngestConfig holds configuration for Ingest use case
type IngestConfig struct {
	clock       func() time.Time
	broadcaster interfaces.Broadcaster
}

// IngestOption is a functional option for configuring Ingest
type IngestOption func(*IngestConfig)

// WithClock sets the clock used to stamp received readings
func WithClock(clock func() time.Time) IngestOption {
	return func(c *IngestConfig) {
		c.clock = clock
	}
}

// WithBroadcaster sets where stored readings are pushed to live subscribers
func WithBroadcaster(b interfaces.Broadcaster) IngestOption {
	return func(c *IngestConfig) {
		c.broadcaster = b
	}
}

// NewIngestConfig creates a new IngestConfig with default values and optional settings
func NewIngestConfig(opts ...IngestOption) *IngestConfig {
	config := &IngestConfig{
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Ingest implements Ingest interface
type Ingest struct {
	repo   interfaces.Repository
	config *IngestConfig
}

// NewIngest creates a new Ingest instance. A nil config uses the defaults.
func NewIngest(repo interfaces.Repository, config *IngestConfig) *Ingest {
	if config == nil {
		config = NewIngestConfig()
	}
	return &Ingest{
		repo:   repo,
		config: config,
	}
}

// Submit parses a telemetry message, stores it as a reading and pushes it to live subscribers
func (u *Ingest) Submit(ctx context.Context, payload []byte) (*model.Reading, error) {
	msg, err := model.ParseTelemetryMessage(payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse telemetry message")
	}

	id, err := types.NewReadingID()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate reading ID")
	}

	reading, err := msg.ToReading(id, u.config.clock())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to convert telemetry message",
			goerr.V("device_id", msg.DeviceID))
	}

	if err := u.repo.SaveReading(ctx, reading); err != nil {
		return nil, goerr.Wrap(err, "failed to save reading", goerr.V("id", reading.ID))
	}

	ctxlog.From(ctx).Debug("Reading stored",
		"id", reading.ID,
		"device", reading.DeviceID,
		"counter", reading.CounterName,
		"waitTime", reading.WaitTimeMinutes,
	)

	if b := u.config.broadcaster; b != nil {
		pushed := *reading
		async.Dispatch(ctx, func(ctx context.Context) error {
			return b.Broadcast(ctx, EventReading, &pushed)
		})
	}

	return reading, nil
}

// LatestByCounter returns the newest reading of a counter
func (u *Ingest) LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error) {
	reading, err := u.repo.LatestByCounter(ctx, counter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest reading by counter")
	}
	return reading, nil
}

// LatestByDevice returns the newest reading of a device
func (u *Ingest) LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error) {
	reading, err := u.repo.LatestByDevice(ctx, device)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest reading by device")
	}
	return reading, nil
}

// ListByDevice returns every reading of a device, newest first
func (u *Ingest) ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error) {
	readings, err := u.repo.ListByDevice(ctx, device)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list readings by device")
	}
	return readings, nil
}

// Recent returns the newest readings. Non-positive limits fall back to
// DefaultRecentLimit and larger ones are capped at MaxRecentLimit.
func (u *Ingest) Recent(ctx context.Context, limit int) ([]*model.Reading, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	readings, err := u.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent readings", goerr.V("limit", limit))
	}
	return readings, nil
}

// Stats summarizes the stored readings
func (u *Ingest) Stats(ctx context.Context) (*model.ReadingStats, error) {
	stats, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get reading stats")
	}
	return stats, nil
}

// Purge deletes every stored reading
func (u *Ingest) Purge(ctx context.Context) (int64, error) {
	deleted, err := u.repo.DeleteAll(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete readings")
	}

	ctxlog.From(ctx).Info("Readings purged", "deleted", deleted)
	return deleted, nil
}
