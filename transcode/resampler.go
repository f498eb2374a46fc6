package transcode

// Resampler converts audio between sample rates using linear
// interpolation. Sufficient for feature extraction on vocal recordings
// where audiophile reconstruction quality is not required.
type Resampler struct {
	fromRate float64
	toRate   float64
	ratio    float64
}

// NewResampler creates a resampler for the given rate conversion
func NewResampler(fromRate, toRate int) *Resampler {
	return &Resampler{
		fromRate: float64(fromRate),
		toRate:   float64(toRate),
		ratio:    float64(toRate) / float64(fromRate),
	}
}

// Resample converts the input to the target rate. The input is returned
// unchanged when the rates match.
func (r *Resampler) Resample(input []float64) []float64 {
	if r.ratio == 1.0 || len(input) == 0 {
		return input
	}

	outputLen := int(float64(len(input)) * r.ratio)
	if outputLen == 0 {
		return []float64{}
	}
	output := make([]float64, outputLen)

	for i := range output {
		srcPos := float64(i) / r.ratio
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		if srcIdx >= len(input)-1 {
			output[i] = input[len(input)-1]
			continue
		}

		sample1 := input[srcIdx]
		sample2 := input[srcIdx+1]
		output[i] = sample1 + (sample2-sample1)*frac
	}

	return output
}

// ResampleTo is a convenience helper for one-shot rate conversion
func ResampleTo(input []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate {
		return input
	}
	return NewResampler(fromRate, toRate).Resample(input)
}
