package model

import "github.com/bmsedge/queuepulse/pkg/domain/types"

// MaxWeight is the highest weight CongestionWeight can return. The session
// index is normalized against it.
const MaxWeight = 5

// CongestionWeight maps a wait time in minutes to a severity weight.
// Rules are evaluated in order and the first match wins. The exact
// comparisons against 3 and 4 are intentional: 2.5 and 3.5 both fall through
// to weight 2.
func CongestionWeight(waitTimeMinutes float64) int {
	switch {
	case waitTimeMinutes <= 0:
		return 0
	case waitTimeMinutes <= 2:
		return 0
	case waitTimeMinutes == 3:
		return 0
	case waitTimeMinutes == 4:
		return 1
	case waitTimeMinutes <= 8:
		return 2
	case waitTimeMinutes <= 12:
		return 3
	default:
		return MaxWeight
	}
}

// CongestionLevelOf returns the label for a weight. Unknown weights, including 0, are Low.
func CongestionLevelOf(weight int) types.CongestionLevel {
	switch weight {
	case 1:
		return types.CongestionLevelHigh
	case 2:
		return types.CongestionLevelCritical
	case 3:
		return types.CongestionLevelSevere
	case MaxWeight:
		return types.CongestionLevelExtreme
	default:
		return types.CongestionLevelLow
	}
}
