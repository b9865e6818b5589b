package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Collection names
	readingsCollection = "readings"

	// Field names, matching the firestore tags of model.Reading
	fieldCounterName = "counter_name"
	fieldDeviceID    = "device_id"
	fieldTimestamp   = "timestamp"
)

// Firestore implements Repository interface with Firestore
type Firestore struct {
	client *firestore.Client
	shifts *model.ShiftsConfig
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string, shifts *model.ShiftsConfig) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if shifts == nil {
		shifts = model.DefaultShiftsConfig()
	}

	// Create client with database ID
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Test connection by attempting to read from a collection
	// This will fail fast if the project ID is invalid or if there are permission issues
	_, err = client.Collection(readingsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		// Only fail if it's a real error (not just empty collection)
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		// For other errors (like NotFound for new projects), log but continue
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
		shifts: shifts,
	}, nil
}

// SaveReading saves a reading to Firestore
func (f *Firestore) SaveReading(ctx context.Context, reading *model.Reading) error {
	if reading == nil {
		return goerr.New("reading is nil", goerr.T(model.ErrTagInvalidInput))
	}
	if err := reading.Validate(); err != nil {
		return goerr.Wrap(err, "invalid reading")
	}

	_, err := f.client.Collection(readingsCollection).Doc(reading.ID.String()).Set(ctx, reading)
	if err != nil {
		return goerr.Wrap(err, "failed to save reading to firestore",
			goerr.V("id", reading.ID))
	}

	return nil
}

// FetchTimeline returns the congestion timeline for [from, to]
func (f *Firestore) FetchTimeline(ctx context.Context, from, to time.Time) ([]model.Sample, error) {
	readings, err := f.inWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return toTimeline(readings), nil
}

// FetchShiftSummaries returns per-counter shift figures for [from, to]
func (f *Firestore) FetchShiftSummaries(ctx context.Context, from, to time.Time) ([]model.ShiftSummary, error) {
	readings, err := f.inWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return summarizeShifts(readings, f.shifts), nil
}

// LatestByCounter returns the most recent reading of a counter
func (f *Firestore) LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error) {
	if counter == "" {
		return nil, goerr.New("counter name is empty", goerr.T(model.ErrTagInvalidInput))
	}

	readings, err := f.collect(ctx, f.client.Collection(readingsCollection).
		Where(fieldCounterName, "==", counter.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list readings by counter", goerr.V("counter", counter))
	}
	if len(readings) == 0 {
		return nil, errReadingNotFound("counter", counter)
	}

	sortNewestFirst(readings)
	return readings[0], nil
}

// LatestByDevice returns the most recent reading of a device
func (f *Firestore) LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error) {
	readings, err := f.ListByDevice(ctx, device)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, errReadingNotFound("device", device)
	}
	return readings[0], nil
}

// ListByDevice lists every reading of a device, newest first
func (f *Firestore) ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error) {
	if device == "" {
		return nil, goerr.New("device ID is empty", goerr.T(model.ErrTagInvalidInput))
	}

	// Simple query without OrderBy to avoid requiring composite index
	// We'll sort in memory instead
	readings, err := f.collect(ctx, f.client.Collection(readingsCollection).
		Where(fieldDeviceID, "==", device.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list readings by device", goerr.V("device", device))
	}

	sortNewestFirst(readings)
	return readings, nil
}

// ListRecent lists the newest readings. A non-positive limit returns everything.
func (f *Firestore) ListRecent(ctx context.Context, limit int) ([]*model.Reading, error) {
	query := f.client.Collection(readingsCollection).OrderBy(fieldTimestamp, firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	readings, err := f.collect(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent readings")
	}
	return readings, nil
}

// Stats summarizes the stored readings
func (f *Firestore) Stats(ctx context.Context) (*model.ReadingStats, error) {
	readings, err := f.collect(ctx, f.client.Collection(readingsCollection).Query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan readings")
	}
	return newStats(readings), nil
}

// DeleteAll removes every reading and returns how many were removed
func (f *Firestore) DeleteAll(ctx context.Context) (int64, error) {
	iter := f.client.Collection(readingsCollection).Documents(ctx)
	defer iter.Stop()

	bw := f.client.BulkWriter(ctx)
	var deleted int64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return deleted, goerr.Wrap(err, "failed to iterate readings")
		}

		if _, err := bw.Delete(doc.Ref); err != nil {
			bw.End()
			return deleted, goerr.Wrap(err, "failed to enqueue reading deletion",
				goerr.V("id", doc.Ref.ID))
		}
		deleted++
	}
	bw.End()

	return deleted, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) inWindow(ctx context.Context, from, to time.Time) ([]*model.Reading, error) {
	query := f.client.Collection(readingsCollection).
		Where(fieldTimestamp, ">=", from).
		Where(fieldTimestamp, "<=", to)

	readings, err := f.collect(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch readings in window",
			goerr.V("from", from),
			goerr.V("to", to))
	}
	return readings, nil
}

func (f *Firestore) collect(ctx context.Context, query firestore.Query) ([]*model.Reading, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var readings []*model.Reading
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate readings")
		}

		var reading model.Reading
		if err := doc.DataTo(&reading); err != nil {
			return nil, goerr.Wrap(err, "failed to decode reading", goerr.V("id", doc.Ref.ID))
		}
		readings = append(readings, &reading)
	}

	return readings, nil
}
