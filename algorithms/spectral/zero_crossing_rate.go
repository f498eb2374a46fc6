package spectral

// ZeroCrossingRate calculates zero crossing rate.
// High ZCR indicates noisy/unvoiced content, low ZCR indicates voiced content.
type ZeroCrossingRate struct {
	sampleRate int
}

// NewZeroCrossingRate creates a new zero crossing rate calculator
func NewZeroCrossingRate(sampleRate int) *ZeroCrossingRate {
	return &ZeroCrossingRate{
		sampleRate: sampleRate,
	}
}

// Compute calculates ZCR for a single frame
// Returns rate as crossings per second
func (zcr *ZeroCrossingRate) Compute(frame []float64) float64 {
	if len(frame) < 2 {
		return 0.0
	}

	crossings := countCrossings(frame)

	frameDuration := float64(len(frame)) / float64(zcr.sampleRate)
	return float64(crossings) / frameDuration
}

// ComputeNormalized calculates normalized ZCR (0-1 range): the number of
// sample-to-sample sign changes divided by the frame length. The whole
// signal is treated as one frame (frame length = hop length = signal
// length), so a single value describes the entire recording.
func (zcr *ZeroCrossingRate) ComputeNormalized(frame []float64) float64 {
	if len(frame) < 2 {
		return 0.0
	}

	crossings := countCrossings(frame)

	return float64(crossings) / float64(len(frame))
}

func countCrossings(frame []float64) int {
	crossings := 0
	for i := 1; i < len(frame); i++ {
		// Check for sign change (zero crossing)
		if (frame[i-1] >= 0 && frame[i] < 0) || (frame[i-1] < 0 && frame[i] >= 0) {
			crossings++
		}
	}
	return crossings
}
