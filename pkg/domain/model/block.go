package model

import (
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
)

// CongestionBlock is a maximal run of consecutive samples sharing one weight
type CongestionBlock struct {
	Level           types.CongestionLevel `json:"level"`
	Weight          int                   `json:"weight"`
	Start           time.Time             `json:"start"`
	End             time.Time             `json:"end"`
	DurationMinutes int64                 `json:"durationMinutes"`
}

// Covers reports whether t lies within [Start, End]
func (b CongestionBlock) Covers(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// SegmentBlocks splits an ordered single-counter sample sequence into blocks.
// With skipIdle set, weight-0 samples close the open block and are never
// covered, so only congested time is reported. Without it the blocks
// partition the whole sample range and idle runs become Low blocks.
func SegmentBlocks(samples []Sample, skipIdle bool) []CongestionBlock {
	blocks := make([]CongestionBlock, 0)
	var open *CongestionBlock

	flush := func() {
		if open == nil {
			return
		}
		open.DurationMinutes = minutesBetween(open.Start, open.End)
		blocks = append(blocks, *open)
		open = nil
	}

	for _, s := range samples {
		weight := CongestionWeight(s.WaitTimeMinutes)

		if weight == 0 && skipIdle {
			flush()
			continue
		}

		if open == nil || open.Weight != weight {
			flush()
			open = &CongestionBlock{
				Level:  CongestionLevelOf(weight),
				Weight: weight,
				Start:  s.Timestamp,
			}
		}
		open.End = s.Timestamp
	}
	flush()

	return blocks
}

// BuildCongestionBlocks returns only the congested blocks of a counter timeline
func BuildCongestionBlocks(samples []Sample) []CongestionBlock {
	return SegmentBlocks(samples, true)
}

// BuildSessionBlocks returns blocks partitioning the full counter timeline
func BuildSessionBlocks(samples []Sample) []CongestionBlock {
	return SegmentBlocks(samples, false)
}
