package types

// CongestionLevel is the textual severity label attached to a congestion weight
type CongestionLevel string

const (
	CongestionLevelLow      CongestionLevel = "Low"
	CongestionLevelHigh     CongestionLevel = "High"
	CongestionLevelCritical CongestionLevel = "Critical"
	CongestionLevelSevere   CongestionLevel = "Severe"
	CongestionLevelExtreme  CongestionLevel = "Extreme"
)

// String returns the string representation of the level
func (l CongestionLevel) String() string {
	return string(l)
}

// IsValid checks if the level is one of the known labels
func (l CongestionLevel) IsValid() bool {
	switch l {
	case CongestionLevelLow, CongestionLevelHigh, CongestionLevelCritical, CongestionLevelSevere, CongestionLevelExtreme:
		return true
	default:
		return false
	}
}
