package model

// PeakCongestion is the dominant congestion block of a window together with
// the highest wait time observed inside it
type PeakCongestion struct {
	CongestionBlock
	PeakWaitTimeInBlock float64 `json:"peakWaitTimeInBlock"`
}

// SelectPeakCongestion picks the block with the highest weight, using the
// longer duration to break ties; on a full tie the earliest block wins.
// samples must be the sequence the blocks were built from. Returns nil when
// there are no blocks.
func SelectPeakCongestion(blocks []CongestionBlock, samples []Sample) *PeakCongestion {
	if len(blocks) == 0 {
		return nil
	}

	best := blocks[0]
	for _, b := range blocks[1:] {
		if b.Weight > best.Weight ||
			(b.Weight == best.Weight && b.DurationMinutes > best.DurationMinutes) {
			best = b
		}
	}

	var peakWait float64
	found := false
	for _, s := range samples {
		if !best.Covers(s.Timestamp) {
			continue
		}
		if !found || s.WaitTimeMinutes > peakWait {
			peakWait = s.WaitTimeMinutes
			found = true
		}
	}

	return &PeakCongestion{
		CongestionBlock:     best,
		PeakWaitTimeInBlock: peakWait,
	}
}
