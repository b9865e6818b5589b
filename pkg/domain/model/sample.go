package model

import (
	"math"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Sample is one wait-time observation of a counter on the congestion timeline
type Sample struct {
	CounterName     types.CounterName `json:"counterName"`
	Timestamp       time.Time         `json:"timestamp"`
	WaitTimeMinutes float64           `json:"waitTimeMinutes"`
}

// Validate rejects samples the congestion engine cannot classify
func (s Sample) Validate() error {
	if s.CounterName == "" {
		return goerr.New("sample counter name is empty", goerr.T(ErrTagInvalidInput))
	}
	if s.Timestamp.IsZero() {
		return goerr.New("sample timestamp is zero",
			goerr.V("counter", s.CounterName),
			goerr.T(ErrTagInvalidInput))
	}
	if math.IsNaN(s.WaitTimeMinutes) || math.IsInf(s.WaitTimeMinutes, 0) {
		return goerr.New("sample wait time is not a finite number",
			goerr.V("counter", s.CounterName),
			goerr.V("timestamp", s.Timestamp),
			goerr.T(ErrTagInvalidInput))
	}
	return nil
}

// GroupSamplesByCounter splits an ordered timeline into per-counter sequences.
// Counter order follows first appearance and sample order within a counter is preserved.
func GroupSamplesByCounter(samples []Sample) ([]types.CounterName, map[types.CounterName][]Sample) {
	var order []types.CounterName
	groups := make(map[types.CounterName][]Sample)
	for _, s := range samples {
		if _, ok := groups[s.CounterName]; !ok {
			order = append(order, s.CounterName)
		}
		groups[s.CounterName] = append(groups[s.CounterName], s)
	}
	return order, groups
}
