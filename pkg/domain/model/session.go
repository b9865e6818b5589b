package model

import (
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// SessionCongestion describes how congested a counter was over a session window
type SessionCongestion struct {
	CounterName             types.CounterName `json:"counterName"`
	WeightedCongestionIndex float64           `json:"weightedCongestionIndex"`
	SessionMinutes          int64             `json:"sessionMinutes"`
	Blocks                  []CongestionBlock `json:"blocks"`
}

// WeightedCongestionIndex returns the duration-weighted severity of blocks as
// a percentage of a session spent entirely at MaxWeight.
func WeightedCongestionIndex(blocks []CongestionBlock, sessionMinutes int64) (float64, error) {
	if sessionMinutes <= 0 {
		return 0, goerr.New("session window must span at least one minute",
			goerr.V("sessionMinutes", sessionMinutes),
			goerr.T(ErrTagInvalidWindow))
	}

	var weightedSum int64
	for _, b := range blocks {
		weightedSum += int64(b.Weight) * b.DurationMinutes
	}

	return float64(weightedSum) / float64(sessionMinutes*MaxWeight) * 100, nil
}

// NewSessionCongestion builds the session result for one counter's ordered samples
func NewSessionCongestion(counter types.CounterName, samples []Sample, sessionMinutes int64) (*SessionCongestion, error) {
	blocks := BuildSessionBlocks(samples)

	index, err := WeightedCongestionIndex(blocks, sessionMinutes)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute congestion index",
			goerr.V("counter", counter))
	}

	return &SessionCongestion{
		CounterName:             counter,
		WeightedCongestionIndex: index,
		SessionMinutes:          sessionMinutes,
		Blocks:                  blocks,
	}, nil
}
