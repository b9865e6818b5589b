package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . Broadcaster

import (
	"context"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
)

// Congestion computes congestion reports over stored timelines
type Congestion interface {
	// AggregateForWindow reports shift figures and the peak congestion block per counter
	AggregateForWindow(ctx context.Context, from, to time.Time) ([]*model.AggregationResult, error)

	// AggregateForDay runs AggregateForWindow over the whole calendar day of date
	AggregateForDay(ctx context.Context, date time.Time) ([]*model.AggregationResult, error)

	// ComputeSessionCongestion reports the weighted congestion index per active counter
	ComputeSessionCongestion(ctx context.Context, from, to time.Time) ([]*model.SessionCongestion, error)
}

// Ingest accepts telemetry and serves the raw readings
type Ingest interface {
	Submit(ctx context.Context, payload []byte) (*model.Reading, error)
	LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error)
	LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error)
	ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error)
	Recent(ctx context.Context, limit int) ([]*model.Reading, error)
	Stats(ctx context.Context) (*model.ReadingStats, error)
	Purge(ctx context.Context) (int64, error)
}

// Broadcaster pushes live events to connected subscribers
type Broadcaster interface {
	Broadcast(ctx context.Context, event string, payload any) error
}
