package model_test

import (
	"testing"

	"github.com/bmsedge/queuepulse/pkg/domain/model"
	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestParseTelemetryMessage(t *testing.T) {
	t.Run("counter prefixed fields", func(t *testing.T) {
		msg, err := model.ParseTelemetryMessage([]byte(`{
			"device_id": "dev-01",
			"counter_name": "Tandoor",
			"Tandoor_occupancy": 7,
			"Tandoor_incount": 120,
			"Tandoor_waiting_time_min": "5 min"
		}`))
		gt.NoError(t, err).Required()
		gt.NoError(t, msg.Validate())
		gt.Equal(t, msg.DeviceID, "dev-01")
		gt.Equal(t, msg.CounterName, "Tandoor")
		gt.Equal(t, msg.Occupancy(), int64(7))
		gt.Equal(t, msg.InCount(), int64(120))

		wait, err := msg.WaitTimeMinutes()
		gt.NoError(t, err)
		gt.Equal(t, wait, 5.0)
	})

	t.Run("falls back to fields with matching fragments", func(t *testing.T) {
		msg, err := model.ParseTelemetryMessage([]byte(`{
			"device_id": "dev-02",
			"counter_name": "pan_pacific",
			"pan_pacific_oc_cupancy": 3,
			"PanPacific_Occupancy": 4,
			"pan_in_count": "15",
			"pan_wait_time": 9.5
		}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, msg.Occupancy(), int64(4))
		gt.Equal(t, msg.InCount(), int64(15))

		wait, err := msg.WaitTimeMinutes()
		gt.NoError(t, err)
		gt.Equal(t, wait, 9.5)
	})

	t.Run("missing measurements default to zero", func(t *testing.T) {
		msg, err := model.ParseTelemetryMessage([]byte(`{"device_id": "d", "counter_name": "c"}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, msg.Occupancy(), int64(0))
		gt.Equal(t, msg.InCount(), int64(0))

		wait, err := msg.WaitTimeMinutes()
		gt.NoError(t, err)
		gt.Equal(t, wait, 0.0)
	})

	t.Run("numeric identifiers are accepted", func(t *testing.T) {
		msg, err := model.ParseTelemetryMessage([]byte(`{"device_id": 42, "counter_name": "c"}`))
		gt.NoError(t, err).Required()
		gt.Equal(t, msg.DeviceID, "42")
	})

	t.Run("malformed JSON is invalid input", func(t *testing.T) {
		_, err := model.ParseTelemetryMessage([]byte(`{"device_id": `))
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
	})
}

func TestTelemetryMessageWaitTime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{"ready to serve", `"Ready to serve"`, 0},
		{"minutes suffix", `"12 min"`, 12},
		{"leading words", `"about 7 minutes"`, 7},
		{"fractional", `"2.5"`, 2.5},
		{"bare number", `4`, 4},
		{"unparseable", `"soon"`, 0},
		{"no space before unit", `"5min"`, 0},
		{"null", `null`, 0},
		{"empty", `""`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := model.ParseTelemetryMessage([]byte(
				`{"device_id": "d", "counter_name": "c", "c_waiting_time_min": ` + tt.value + `}`))
			gt.NoError(t, err).Required()

			wait, err := msg.WaitTimeMinutes()
			gt.NoError(t, err)
			gt.Equal(t, wait, tt.expected)
		})
	}

	t.Run("non-finite values are rejected", func(t *testing.T) {
		for _, v := range []string{`"NaN"`, `"inf min"`, `"-Infinity"`} {
			msg, err := model.ParseTelemetryMessage([]byte(
				`{"device_id": "d", "counter_name": "c", "c_waiting_time_min": ` + v + `}`))
			gt.NoError(t, err).Required()

			_, err = msg.WaitTimeMinutes()
			gt.Error(t, err)
			gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
		}
	})
}

func TestTelemetryMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"device_id": "d", "counter_name": "c"}`, false},
		{"missing device", `{"counter_name": "c"}`, true},
		{"blank device", `{"device_id": "  ", "counter_name": "c"}`, true},
		{"missing counter", `{"device_id": "d"}`, true},
		{"blank counter", `{"device_id": "d", "counter_name": ""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := model.ParseTelemetryMessage([]byte(tt.payload))
			gt.NoError(t, err).Required()

			err = msg.Validate()
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, model.ErrTagInvalidInput))
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestTelemetryMessageToReading(t *testing.T) {
	msg, err := model.ParseTelemetryMessage([]byte(`{
		"device_id": "dev-01",
		"counter_name": "Tandoor",
		"Tandoor_occupancy": 7,
		"Tandoor_incount": 120,
		"Tandoor_waiting_time_min": "13 min"
	}`))
	gt.NoError(t, err).Required()

	reading, err := msg.ToReading("reading-1", baseTime)
	gt.NoError(t, err).Required()
	gt.NoError(t, reading.Validate())
	gt.Equal(t, reading.ID, types.ReadingID("reading-1"))
	gt.Equal(t, reading.DeviceID, types.DeviceID("dev-01"))
	gt.Equal(t, reading.CounterName, types.CounterName("Tandoor"))
	gt.Equal(t, reading.Occupancy, int64(7))
	gt.Equal(t, reading.InCount, int64(120))
	gt.Equal(t, reading.WaitTimeMinutes, 13.0)
	gt.Equal(t, reading.Timestamp, baseTime)

	sample := reading.Sample()
	gt.Equal(t, sample.CounterName, types.CounterName("Tandoor"))
	gt.Equal(t, sample.WaitTimeMinutes, 13.0)
	gt.Equal(t, sample.Timestamp, baseTime)
}
