package tonal

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PitchFrame represents a single analysis frame's fundamental frequency
// candidate together with the frame's voicing decision.
type PitchFrame struct {
	Frequency   float64 `json:"frequency"`   // Candidate F0 in Hz (NaN when undefined)
	Voiced      bool    `json:"voiced"`      // Voicing decision for the frame
	Probability float64 `json:"probability"` // Voicing probability (0-1)
}

// PitchTrackerParams contains parameters for frame-wise pitch tracking
type PitchTrackerParams struct {
	SampleRate int `json:"sample_rate"`
	WindowSize int `json:"window_size"`
	HopSize    int `json:"hop_size"`

	// Frequency range constraints
	MinFreq float64 `json:"min_freq"` // Minimum frequency (Hz)
	MaxFreq float64 `json:"max_freq"` // Maximum frequency (Hz)

	// YIN threshold (0.1-0.5); lower is stricter
	YinThreshold float64 `json:"yin_threshold"`
}

// PitchTracker implements probabilistic fundamental frequency tracking
// using the YIN algorithm frame by frame, with a per-frame voicing
// decision.
//
// References:
// - de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental frequency estimator for speech and music"
// - Mauch, M., Dixon, S. (2014). "pYIN: A fundamental frequency estimator using probabilistic threshold distributions"
type PitchTracker struct {
	params     PitchTrackerParams
	windowFunc []float64
}

// NewPitchTracker creates a pitch tracker with default window parameters
// constrained to [minFreq, maxFreq] Hz
func NewPitchTracker(sampleRate int, minFreq, maxFreq float64) *PitchTracker {
	return NewPitchTrackerWithParams(PitchTrackerParams{
		SampleRate:   sampleRate,
		WindowSize:   1024,
		HopSize:      512,
		MinFreq:      minFreq,
		MaxFreq:      maxFreq,
		YinThreshold: 0.15,
	})
}

// NewPitchTrackerWithParams creates a pitch tracker with custom parameters
func NewPitchTrackerWithParams(params PitchTrackerParams) *PitchTracker {
	pt := &PitchTracker{params: params}
	pt.windowFunc = makeHann(params.WindowSize)
	return pt
}

// Track analyzes the signal frame by frame and returns one PitchFrame
// per analysis frame. Signals shorter than one window are analyzed as a
// single frame.
func (pt *PitchTracker) Track(signal []float64) []PitchFrame {
	if len(signal) < 4 {
		return []PitchFrame{}
	}

	if len(signal) < pt.params.WindowSize {
		frame := make([]float64, len(signal))
		copy(frame, signal)
		applyHann(frame)
		return []PitchFrame{pt.analyzeFrame(frame)}
	}

	numFrames := (len(signal)-pt.params.WindowSize)/pt.params.HopSize + 1
	frames := make([]PitchFrame, 0, numFrames)
	buffer := make([]float64, pt.params.WindowSize)

	for i := range numFrames {
		startIdx := i * pt.params.HopSize
		endIdx := startIdx + pt.params.WindowSize
		if endIdx > len(signal) {
			break
		}

		copy(buffer, signal[startIdx:endIdx])
		for j := range buffer {
			buffer[j] *= pt.windowFunc[j]
		}

		frames = append(frames, pt.analyzeFrame(buffer))
	}

	return frames
}

// AggregateF0 computes the arithmetic mean of the candidate frequencies
// over frames marked voiced, ignoring undefined (NaN) candidates.
// Returns 0.0 when no frame is voiced or the mean is non-positive.
func (pt *PitchTracker) AggregateF0(frames []PitchFrame) float64 {
	voiced := make([]float64, 0, len(frames))
	for _, frame := range frames {
		if frame.Voiced && !math.IsNaN(frame.Frequency) && frame.Frequency > 0 {
			voiced = append(voiced, frame.Frequency)
		}
	}

	if len(voiced) == 0 {
		return 0.0
	}

	mean := stat.Mean(voiced, nil)
	if mean <= 0 || math.IsNaN(mean) {
		return 0.0
	}

	return mean
}

// analyzeFrame runs YIN on a single windowed frame
func (pt *PitchTracker) analyzeFrame(frame []float64) PitchFrame {
	n := len(frame)
	halfN := n / 2

	minLag := int(float64(pt.params.SampleRate) / pt.params.MaxFreq)
	maxLag := int(float64(pt.params.SampleRate) / pt.params.MinFreq)

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= halfN {
		maxLag = halfN - 1
	}
	if maxLag <= minLag {
		return PitchFrame{Frequency: math.NaN()}
	}

	// Difference function
	diff := make([]float64, maxLag+1)
	for tau := 1; tau <= maxLag; tau++ {
		sum := 0.0
		for j := 0; j < halfN; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function
	cmndf := make([]float64, maxLag+1)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau <= maxLag; tau++ {
		runningSum += diff[tau]
		if runningSum > 0 {
			cmndf[tau] = diff[tau] / (runningSum / float64(tau))
		} else {
			cmndf[tau] = 1.0
		}
	}

	// Find the first local minimum below threshold
	minTau := -1
	for tau := minLag; tau < maxLag; tau++ {
		if cmndf[tau] < pt.params.YinThreshold && cmndf[tau] < cmndf[tau+1] {
			minTau = tau
			break
		}
	}

	if minTau < 0 {
		// No periodicity found; report the best probability seen so the
		// caller can still reason about near-voiced frames
		best := 1.0
		for tau := minLag; tau <= maxLag; tau++ {
			if cmndf[tau] < best {
				best = cmndf[tau]
			}
		}
		return PitchFrame{
			Frequency:   math.NaN(),
			Voiced:      false,
			Probability: math.Max(0, 1.0-best),
		}
	}

	// Parabolic interpolation for sub-sample accuracy
	period := parabolicInterpolation(cmndf, minTau)
	frequency := float64(pt.params.SampleRate) / period

	probability := 1.0 - cmndf[minTau]

	if frequency < pt.params.MinFreq || frequency > pt.params.MaxFreq {
		return PitchFrame{
			Frequency:   math.NaN(),
			Voiced:      false,
			Probability: probability,
		}
	}

	return PitchFrame{
		Frequency:   frequency,
		Voiced:      true,
		Probability: probability,
	}
}

// parabolicInterpolation refines a minimum location using its neighbors
func parabolicInterpolation(data []float64, peakIndex int) float64 {
	if peakIndex <= 0 || peakIndex >= len(data)-1 {
		return float64(peakIndex)
	}

	y1 := data[peakIndex-1]
	y2 := data[peakIndex]
	y3 := data[peakIndex+1]

	denom := 2.0 * (2.0*y2 - y1 - y3)
	if math.Abs(denom) < 1e-10 {
		return float64(peakIndex)
	}

	offset := (y3 - y1) / denom
	return float64(peakIndex) + offset
}

func makeHann(size int) []float64 {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(size-1)))
	}
	return window
}

func applyHann(frame []float64) {
	n := len(frame)
	if n < 2 {
		return
	}
	for i := range frame {
		frame[i] *= 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
	}
}
