package spectral

// SpectralRolloff computes the spectral rolloff frequency: the frequency
// below which a given fraction of the cumulative spectral energy lies.
//
// Stateless; safe for concurrent use across per-file workers.
type SpectralRolloff struct {
	sampleRate int
}

// NewSpectralRolloff creates a new spectral rolloff calculator
func NewSpectralRolloff(sampleRate int) *SpectralRolloff {
	return &SpectralRolloff{
		sampleRate: sampleRate,
	}
}

// Compute calculates spectral rolloff for a single magnitude spectrum
// threshold: typically 0.85 for 85th percentile
func (sr *SpectralRolloff) Compute(spectrum []float64, threshold float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	totalEnergy := 0.0
	for _, mag := range spectrum {
		totalEnergy += mag * mag
	}

	if totalEnergy == 0 {
		return 0
	}

	targetEnergy := threshold * totalEnergy
	cumulativeEnergy := 0.0

	for i := range len(spectrum) {
		cumulativeEnergy += spectrum[i] * spectrum[i]
		if cumulativeEnergy >= targetEnergy {
			return binFrequency(i, len(spectrum), sr.sampleRate)
		}
	}

	return binFrequency(len(spectrum)-1, len(spectrum), sr.sampleRate)
}
