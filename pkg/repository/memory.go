package repository

import (
	"context"
	"sync"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/interfaces"
	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository interface with in-memory storage
type Memory struct {
	mu       sync.RWMutex
	readings []*model.Reading
	index    map[types.ReadingID]int
	shifts   *model.ShiftsConfig
}

// NewMemory creates a new memory repository. A nil shifts config falls back to the default shifts.
func NewMemory(shifts *model.ShiftsConfig) interfaces.Repository {
	if shifts == nil {
		shifts = model.DefaultShiftsConfig()
	}
	return &Memory{
		index:  make(map[types.ReadingID]int),
		shifts: shifts,
	}
}

// SaveReading saves a reading to memory, replacing any reading with the same ID
func (m *Memory) SaveReading(ctx context.Context, reading *model.Reading) error {
	if reading == nil {
		return goerr.New("reading is nil", goerr.T(model.ErrTagInvalidInput))
	}
	if err := reading.Validate(); err != nil {
		return goerr.Wrap(err, "invalid reading")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external modifications
	readingCopy := *reading
	if pos, exists := m.index[reading.ID]; exists {
		m.readings[pos] = &readingCopy
		return nil
	}

	m.index[reading.ID] = len(m.readings)
	m.readings = append(m.readings, &readingCopy)
	return nil
}

// FetchTimeline returns the congestion timeline for [from, to]
func (m *Memory) FetchTimeline(ctx context.Context, from, to time.Time) ([]model.Sample, error) {
	return toTimeline(m.inWindow(from, to)), nil
}

// FetchShiftSummaries returns per-counter shift figures for [from, to]
func (m *Memory) FetchShiftSummaries(ctx context.Context, from, to time.Time) ([]model.ShiftSummary, error) {
	return summarizeShifts(m.inWindow(from, to), m.shifts), nil
}

// LatestByCounter returns the most recent reading of a counter
func (m *Memory) LatestByCounter(ctx context.Context, counter types.CounterName) (*model.Reading, error) {
	if counter == "" {
		return nil, goerr.New("counter name is empty", goerr.T(model.ErrTagInvalidInput))
	}

	latest := m.latest(func(r *model.Reading) bool { return r.CounterName == counter })
	if latest == nil {
		return nil, errReadingNotFound("counter", counter)
	}
	return latest, nil
}

// LatestByDevice returns the most recent reading of a device
func (m *Memory) LatestByDevice(ctx context.Context, device types.DeviceID) (*model.Reading, error) {
	if device == "" {
		return nil, goerr.New("device ID is empty", goerr.T(model.ErrTagInvalidInput))
	}

	latest := m.latest(func(r *model.Reading) bool { return r.DeviceID == device })
	if latest == nil {
		return nil, errReadingNotFound("device", device)
	}
	return latest, nil
}

// ListByDevice lists every reading of a device, newest first
func (m *Memory) ListByDevice(ctx context.Context, device types.DeviceID) ([]*model.Reading, error) {
	if device == "" {
		return nil, goerr.New("device ID is empty", goerr.T(model.ErrTagInvalidInput))
	}

	m.mu.RLock()
	var readings []*model.Reading
	for _, r := range m.readings {
		if r.DeviceID == device {
			readingCopy := *r
			readings = append(readings, &readingCopy)
		}
	}
	m.mu.RUnlock()

	sortNewestFirst(readings)
	return readings, nil
}

// ListRecent lists the newest readings. A non-positive limit returns everything.
func (m *Memory) ListRecent(ctx context.Context, limit int) ([]*model.Reading, error) {
	readings := m.snapshot()
	sortNewestFirst(readings)

	if limit > 0 && len(readings) > limit {
		readings = readings[:limit]
	}
	return readings, nil
}

// Stats summarizes the stored readings
func (m *Memory) Stats(ctx context.Context) (*model.ReadingStats, error) {
	return newStats(m.snapshot()), nil
}

// DeleteAll removes every reading and returns how many were removed
func (m *Memory) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.readings))
	m.readings = nil
	m.index = make(map[types.ReadingID]int)
	return n, nil
}

// Close closes the repository (no-op for memory)
func (m *Memory) Close() error {
	return nil
}

func (m *Memory) snapshot() []*model.Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()

	readings := make([]*model.Reading, 0, len(m.readings))
	for _, r := range m.readings {
		readingCopy := *r
		readings = append(readings, &readingCopy)
	}
	return readings
}

func (m *Memory) inWindow(from, to time.Time) []*model.Reading {
	window := model.Window{From: from, To: to}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var readings []*model.Reading
	for _, r := range m.readings {
		if window.Contains(r.Timestamp) {
			readingCopy := *r
			readings = append(readings, &readingCopy)
		}
	}
	return readings
}

// latest returns a copy of the newest matching reading; later inserts win ties
func (m *Memory) latest(match func(*model.Reading) bool) *model.Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found *model.Reading
	for _, r := range m.readings {
		if !match(r) {
			continue
		}
		if found == nil || !r.Timestamp.Before(found.Timestamp) {
			found = r
		}
	}
	if found == nil {
		return nil
	}
	readingCopy := *found
	return &readingCopy
}
