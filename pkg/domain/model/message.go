package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TelemetryMessage is a sensor payload. Besides device_id and counter_name,
// measurement keys are prefixed with the counter name, e.g.
// "tandoor_occupancy", "tandoor_incount" and "tandoor_waiting_time_min".
type TelemetryMessage struct {
	DeviceID    string
	CounterName string
	Fields      map[string]any
}

// ParseTelemetryMessage decodes a JSON telemetry payload
func ParseTelemetryMessage(data []byte) (*TelemetryMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, goerr.Wrap(err, "failed to decode telemetry message", goerr.T(ErrTagInvalidInput))
	}

	msg := &TelemetryMessage{Fields: make(map[string]any)}
	for key, value := range raw {
		switch key {
		case "device_id":
			msg.DeviceID = stringify(value)
		case "counter_name":
			msg.CounterName = stringify(value)
		default:
			msg.Fields[key] = value
		}
	}

	return msg, nil
}

// Validate checks that the message identifies its device and counter
func (m *TelemetryMessage) Validate() error {
	if strings.TrimSpace(m.DeviceID) == "" {
		return goerr.New("device_id is required", goerr.T(ErrTagInvalidInput))
	}
	if strings.TrimSpace(m.CounterName) == "" {
		return goerr.New("counter_name is required",
			goerr.V("device_id", m.DeviceID),
			goerr.T(ErrTagInvalidInput))
	}
	return nil
}

// Occupancy returns the number of people currently queued at the counter
func (m *TelemetryMessage) Occupancy() int64 {
	v, ok := m.lookup(m.CounterName+"_occupancy", "occupancy")
	if !ok {
		return 0
	}
	return toInt64(v)
}

// InCount returns the cumulative number of people who entered the queue
func (m *TelemetryMessage) InCount() int64 {
	v, ok := m.lookup(m.CounterName+"_incount", "incount", "in_count")
	if !ok {
		return 0
	}
	return toInt64(v)
}

// WaitTimeMinutes returns the reported wait time. Values like "ready to
// serve" mean no wait; "5 min" is read from its first numeric token.
// Unparseable values count as no wait, non-finite numbers are rejected.
func (m *TelemetryMessage) WaitTimeMinutes() (float64, error) {
	v, ok := m.lookup(m.CounterName+"_waiting_time_min", "waiting_time", "wait_time")
	if !ok || v == nil {
		return 0, nil
	}

	cleaned := strings.ToLower(strings.TrimSpace(stringify(v)))
	if cleaned == "" || strings.Contains(cleaned, "ready") {
		return 0, nil
	}

	for _, part := range strings.Fields(cleaned) {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, goerr.New("wait time is not a finite number",
				goerr.V("value", cleaned),
				goerr.T(ErrTagInvalidInput))
		}
		return f, nil
	}

	return 0, nil
}

// ToReading converts the message to a reading received at receivedAt
func (m *TelemetryMessage) ToReading(id types.ReadingID, receivedAt time.Time) (*Reading, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	wait, err := m.WaitTimeMinutes()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid wait time",
			goerr.V("counter_name", m.CounterName))
	}

	return &Reading{
		ID:              id,
		DeviceID:        types.DeviceID(m.DeviceID),
		CounterName:     types.CounterName(m.CounterName),
		Occupancy:       m.Occupancy(),
		InCount:         m.InCount(),
		WaitTimeMinutes: wait,
		Timestamp:       receivedAt,
		CreatedAt:       receivedAt,
	}, nil
}

// lookup returns the value of exact if present, otherwise the value of the
// first key (in sorted order) containing any of the fragments
func (m *TelemetryMessage) lookup(exact string, fragments ...string) (any, bool) {
	if v, ok := m.Fields[exact]; ok {
		return v, true
	}

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lower := strings.ToLower(k)
		for _, f := range fragments {
			if strings.Contains(lower, f) {
				return m.Fields[k], true
			}
		}
	}
	return nil, false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func toInt64(v any) int64 {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return int64(f)
		}
		return 0
	case float64:
		return int64(val)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
