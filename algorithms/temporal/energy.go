package temporal

import "math"

// Energy computes energy-based time-domain features over a signal.
// The whole windowed recording is treated as a single frame, so each
// reduction yields one scalar per recording.
type Energy struct{}

// NewEnergy creates a new energy calculator
func NewEnergy() *Energy {
	return &Energy{}
}

// Compute calculates total energy: the sum of squared amplitudes
func (e *Energy) Compute(signal []float64) float64 {
	energy := 0.0
	for _, sample := range signal {
		energy += sample * sample
	}
	return energy
}

// ComputeRMS calculates root mean square amplitude
func (e *Energy) ComputeRMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, sample := range signal {
		sumSquares += sample * sample
	}

	return math.Sqrt(sumSquares / float64(len(signal)))
}

// ComputeShortTimeEnergy calculates RMS energy for overlapping frames
func (e *Energy) ComputeShortTimeEnergy(signal []float64, frameSize, hopSize int) []float64 {
	if len(signal) < frameSize || hopSize <= 0 || frameSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-frameSize)/hopSize + 1
	energies := make([]float64, numFrames)

	for i := range numFrames {
		startIdx := i * hopSize
		endIdx := startIdx + frameSize

		if endIdx > len(signal) {
			break
		}

		sumSquares := 0.0
		for j := startIdx; j < endIdx; j++ {
			sumSquares += signal[j] * signal[j]
		}
		energies[i] = math.Sqrt(sumSquares / float64(frameSize))
	}

	return energies
}
