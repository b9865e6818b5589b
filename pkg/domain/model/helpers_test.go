package model_test

import (
	"math"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
)

var baseTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// minuteSamples builds one sample per minute starting at baseTime
func minuteSamples(counter types.CounterName, waits ...float64) []model.Sample {
	samples := make([]model.Sample, 0, len(waits))
	for i, w := range waits {
		samples = append(samples, model.Sample{
			CounterName:     counter,
			Timestamp:       baseTime.Add(time.Duration(i) * time.Minute),
			WaitTimeMinutes: w,
		})
	}
	return samples
}

func at(minute int) time.Time {
	return baseTime.Add(time.Duration(minute) * time.Minute)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
