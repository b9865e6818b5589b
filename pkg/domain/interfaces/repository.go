package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . Repository TimelineProvider ShiftSummaryProvider

import (
	"context"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
)

// TimelineProvider supplies the congestion timeline for a window
type TimelineProvider interface {
	// FetchTimeline returns samples with from <= timestamp <= to, ordered by
	// counter name and then timestamp. Duplicate timestamps are kept.
	FetchTimeline(ctx context.Context, from, to time.Time) ([]model.Sample, error)
}

// ShiftSummaryProvider supplies per-counter footfall figures over the daily service shifts
type ShiftSummaryProvider interface {
	// FetchShiftSummaries returns one row per counter with activity inside any shift of the window
	FetchShiftSummaries(ctx context.Context, from, to time.Time) ([]model.ShiftSummary, error)
}

// Repository defines the interface for reading persistence
type Repository interface {
	TimelineProvider
	ShiftSummaryProvider

	// Reading operations
	SaveReading(ctx context.Context, reading *model.Reading) error
	LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error)
	LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error)
	ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Reading, error)
	Stats(ctx context.Context) (*model.ReadingStats, error)
	DeleteAll(ctx context.Context) (int64, error)

	// Close closes the repository connection
	Close() error
}
