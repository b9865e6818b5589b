package model

import (
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Reading is a raw telemetry record as received from a counter sensor
type Reading struct {
	ID              types.ReadingID   `json:"id" firestore:"id"`
	DeviceID        types.DeviceID    `json:"deviceId" firestore:"device_id"`
	CounterName     types.CounterName `json:"counterName" firestore:"counter_name"`
	Occupancy       int64             `json:"occupancy" firestore:"occupancy"`
	InCount         int64             `json:"inCount" firestore:"in_count"`
	WaitTimeMinutes float64           `json:"waitTimeMinutes" firestore:"wait_time"`
	Timestamp       time.Time         `json:"timestamp" firestore:"timestamp"`
	CreatedAt       time.Time         `json:"createdAt" firestore:"created_at"`
}

// Validate validates the reading before it is persisted
func (r *Reading) Validate() error {
	if err := r.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid reading", goerr.T(ErrTagInvalidInput))
	}
	if r.DeviceID == "" {
		return goerr.New("device ID is required",
			goerr.V("id", r.ID),
			goerr.T(ErrTagInvalidInput))
	}
	if err := r.Sample().Validate(); err != nil {
		return goerr.Wrap(err, "invalid reading", goerr.V("id", r.ID))
	}
	return nil
}

// Sample projects the reading onto the congestion timeline
func (r *Reading) Sample() Sample {
	return Sample{
		CounterName:     r.CounterName,
		Timestamp:       r.Timestamp,
		WaitTimeMinutes: r.WaitTimeMinutes,
	}
}

// Scope returns the device and counter the reading belongs to
func (r *Reading) Scope() (types.DeviceID, types.CounterName) {
	return r.DeviceID, r.CounterName
}

// ReadingStats summarizes the contents of the reading store
type ReadingStats struct {
	TotalReadings int64               `json:"totalReadings"`
	Counters      []types.CounterName `json:"counters"`
	Devices       []types.DeviceID    `json:"devices"`
}
