package repository

import (
	"sort"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type shiftBucket struct {
	maxInCount   int64
	maxOccupancy int64
	maxWait      float64
	minTimestamp time.Time
}

// summarizeShifts reduces readings to one row per counter: each shift keeps
// its max in-count, occupancy and wait time plus the earliest timestamp, then
// shift in-counts are summed and the rest are maxed across shifts.
// Readings outside every shift are ignored.
func summarizeShifts(readings []*model.Reading, shifts *model.ShiftsConfig) []model.ShiftSummary {
	buckets := make(map[types.CounterName]map[int]*shiftBucket)

	for _, r := range readings {
		idx := shifts.ShiftIndex(r.Timestamp)
		if idx < 0 {
			continue
		}

		perShift, ok := buckets[r.CounterName]
		if !ok {
			perShift = make(map[int]*shiftBucket)
			buckets[r.CounterName] = perShift
		}

		b, ok := perShift[idx]
		if !ok {
			perShift[idx] = &shiftBucket{
				maxInCount:   r.InCount,
				maxOccupancy: r.Occupancy,
				maxWait:      r.WaitTimeMinutes,
				minTimestamp: r.Timestamp,
			}
			continue
		}

		b.maxInCount = max(b.maxInCount, r.InCount)
		b.maxOccupancy = max(b.maxOccupancy, r.Occupancy)
		b.maxWait = max(b.maxWait, r.WaitTimeMinutes)
		if r.Timestamp.Before(b.minTimestamp) {
			b.minTimestamp = r.Timestamp
		}
	}

	summaries := make([]model.ShiftSummary, 0, len(buckets))
	for counter, perShift := range buckets {
		summary := model.ShiftSummary{CounterName: counter}
		first := true
		for _, b := range perShift {
			summary.TotalCount += b.maxInCount
			if first {
				summary.PeakQueue = b.maxOccupancy
				summary.PeakWaitTime = b.maxWait
				summary.PeriodStart = b.minTimestamp
				first = false
				continue
			}
			summary.PeakQueue = max(summary.PeakQueue, b.maxOccupancy)
			summary.PeakWaitTime = max(summary.PeakWaitTime, b.maxWait)
			if b.minTimestamp.Before(summary.PeriodStart) {
				summary.PeriodStart = b.minTimestamp
			}
		}
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CounterName < summaries[j].CounterName
	})

	return summaries
}

// toTimeline projects readings onto the congestion timeline ordered by
// counter and timestamp. The sort is stable so duplicate timestamps keep
// their input order.
func toTimeline(readings []*model.Reading) []model.Sample {
	samples := make([]model.Sample, 0, len(readings))
	for _, r := range readings {
		samples = append(samples, r.Sample())
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].CounterName != samples[j].CounterName {
			return samples[i].CounterName < samples[j].CounterName
		}
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})

	return samples
}

// sortNewestFirst orders readings by timestamp descending, stable on ties
func sortNewestFirst(readings []*model.Reading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})
}

func newStats(readings []*model.Reading) *model.ReadingStats {
	counterSet := make(map[types.CounterName]bool)
	deviceSet := make(map[types.DeviceID]bool)
	for _, r := range readings {
		counterSet[r.CounterName] = true
		deviceSet[r.DeviceID] = true
	}

	stats := &model.ReadingStats{
		TotalReadings: int64(len(readings)),
		Counters:      make([]types.CounterName, 0, len(counterSet)),
		Devices:       make([]types.DeviceID, 0, len(deviceSet)),
	}
	for c := range counterSet {
		stats.Counters = append(stats.Counters, c)
	}
	for d := range deviceSet {
		stats.Devices = append(stats.Devices, d)
	}
	sort.Slice(stats.Counters, func(i, j int) bool { return stats.Counters[i] < stats.Counters[j] })
	sort.Slice(stats.Devices, func(i, j int) bool { return stats.Devices[i] < stats.Devices[j] })

	return stats
}

func errReadingNotFound(key string, value any) error {
	return goerr.New("reading not found",
		goerr.V(key, value),
		goerr.T(model.ErrTagNotFound))
}
