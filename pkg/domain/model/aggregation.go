package model

import (
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
)

// ShiftSummary is the per-counter footfall and peak figures over the daily service shifts
type ShiftSummary struct {
	CounterName  types.CounterName
	TotalCount   int64
	PeakQueue    int64
	PeakWaitTime float64
	PeriodStart  time.Time
}

// AggregationResult is the day-window report for one counter
type AggregationResult struct {
	CounterName    types.CounterName `json:"counterName"`
	TotalCount     int64             `json:"totalCount"`
	PeakQueue      int64             `json:"peakQueue"`
	PeakWaitTime   float64           `json:"peakWaitTime"`
	PeriodStart    time.Time         `json:"periodStart"`
	PeakCongestion *PeakCongestion   `json:"peakCongestion"`
}

// NewAggregationResult merges a shift summary with the counter's peak congestion.
// peak is nil when the counter was never congested in the window.
func NewAggregationResult(summary ShiftSummary, peak *PeakCongestion) *AggregationResult {
	return &AggregationResult{
		CounterName:    summary.CounterName,
		TotalCount:     summary.TotalCount,
		PeakQueue:      summary.PeakQueue,
		PeakWaitTime:   summary.PeakWaitTime,
		PeriodStart:    summary.PeriodStart,
		PeakCongestion: peak,
	}
}
