package spectral

// SpectralCentroid computes the spectral centroid (center of mass) of a
// spectrum. A brightness proxy: higher centroid means more high-frequency
// content.
//
// The calculator holds no mutable state, so one instance may be shared
// by concurrent per-file workers.
type SpectralCentroid struct {
	sampleRate int
}

// NewSpectralCentroid creates a new spectral centroid calculator
func NewSpectralCentroid(sampleRate int) *SpectralCentroid {
	return &SpectralCentroid{
		sampleRate: sampleRate,
	}
}

// Compute calculates spectral centroid for a single magnitude spectrum
func (sc *SpectralCentroid) Compute(spectrum []float64) float64 {
	if len(spectrum) == 0 {
		return 0.0
	}

	numerator := 0.0
	denominator := 0.0

	for i := range len(spectrum) {
		numerator += binFrequency(i, len(spectrum), sc.sampleRate) * spectrum[i]
		denominator += spectrum[i]
	}

	if denominator == 0 {
		return 0
	}

	return numerator / denominator
}

// binFrequency maps a bin index of a positive-frequency spectrum with
// numBins bins to its center frequency in Hz
func binFrequency(bin, numBins, sampleRate int) float64 {
	if numBins < 2 {
		return 0.0
	}
	return float64(bin) * float64(sampleRate) / float64((numBins-1)*2)
}
