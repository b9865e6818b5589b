package types_test

import (
	"strings"
	"testing"

	"github.com/bmsedge/queuepulse/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCongestionLevelValidation(t *testing.T) {
	tests := []struct {
		name     string
		level    types.CongestionLevel
		expected bool
	}{
		{"Valid Low", types.CongestionLevelLow, true},
		{"Valid High", types.CongestionLevelHigh, true},
		{"Valid Critical", types.CongestionLevelCritical, true},
		{"Valid Severe", types.CongestionLevelSevere, true},
		{"Valid Extreme", types.CongestionLevelExtreme, true},
		{"Invalid empty", types.CongestionLevel(""), false},
		{"Invalid lowercase", types.CongestionLevel("extreme"), false},
		{"Invalid unknown", types.CongestionLevel("Moderate"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.level.IsValid()
			if result != tt.expected {
				t.Errorf("CongestionLevel(%q).IsValid() = %v, want %v", tt.level, result, tt.expected)
			}
		})
	}
}

func TestCongestionLevelString(t *testing.T) {
	tests := []struct {
		level    types.CongestionLevel
		expected string
	}{
		{types.CongestionLevelLow, "Low"},
		{types.CongestionLevelHigh, "High"},
		{types.CongestionLevelCritical, "Critical"},
		{types.CongestionLevelSevere, "Severe"},
		{types.CongestionLevelExtreme, "Extreme"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			gt.Equal(t, tt.level.String(), tt.expected)
		})
	}
}

func TestNewReadingID(t *testing.T) {
	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[types.ReadingID]bool)
		for i := 0; i < 100; i++ {
			id, err := types.NewReadingID()
			gt.NoError(t, err)
			gt.NoError(t, id.Validate())
			gt.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("generates UUID v7 format", func(t *testing.T) {
		id, err := types.NewReadingID()
		gt.NoError(t, err)
		parts := strings.Split(id.String(), "-")
		gt.Equal(t, len(parts), 5)
		gt.True(t, strings.HasPrefix(parts[2], "7"))
	})

	t.Run("empty ID is invalid", func(t *testing.T) {
		gt.Error(t, types.ReadingID("").Validate())
	})
}
