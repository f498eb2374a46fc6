package spectral

// PeakFrequency finds the dominant tonal frequency inside a fixed band.
// The magnitude spectrogram is averaged across time frames per bin and
// the strongest in-band bin is reported, provided its averaged magnitude
// clears a significance threshold. This keeps the noise floor of silent
// or unvoiced recordings from being reported as a tonal peak.
//
// Stateless; safe for concurrent use across per-file workers.
type PeakFrequency struct {
	sampleRate int
	minFreq    float64
	maxFreq    float64
	threshold  float64
}

// NewPeakFrequency creates a new peak frequency calculator restricted to
// [minFreq, maxFreq] Hz with the given significance threshold.
func NewPeakFrequency(sampleRate int, minFreq, maxFreq, threshold float64) *PeakFrequency {
	return &PeakFrequency{
		sampleRate: sampleRate,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		threshold:  threshold,
	}
}

// Compute calculates the peak frequency from a magnitude spectrogram
// (time x frequency bins). Returns 0.0 when no bin falls inside the band
// or the strongest averaged magnitude is below the threshold.
func (pf *PeakFrequency) Compute(spectrogram [][]float64) float64 {
	if len(spectrogram) == 0 || len(spectrogram[0]) == 0 {
		return 0.0
	}

	numBins := len(spectrogram[0])

	peakFreq := 0.0
	peakMagnitude := 0.0
	found := false

	for bin := range numBins {
		freq := binFrequency(bin, numBins, pf.sampleRate)
		if freq < pf.minFreq || freq > pf.maxFreq {
			continue
		}

		// Average magnitude across time frames for this bin
		sum := 0.0
		count := 0
		for t := range spectrogram {
			if bin < len(spectrogram[t]) {
				sum += spectrogram[t][bin]
				count++
			}
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)

		if !found || mean > peakMagnitude {
			peakMagnitude = mean
			peakFreq = freq
			found = true
		}
	}

	if !found || peakMagnitude <= pf.threshold {
		return 0.0
	}

	return peakFreq
}
