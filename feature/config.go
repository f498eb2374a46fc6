package feature

import "fmt"

// Config holds all pipeline parameters. It replaces process-wide
// constants: every extractor receives its configuration explicitly at
// construction.
type Config struct {
	// Resampling
	SampleRate       int `json:"sample_rate"`       // Reference rate audio is brought to first
	DownsampleFactor int `json:"downsample_factor"` // Effective rate = SampleRate / DownsampleFactor

	// Vocal frequency band
	MinFreq float64 `json:"min_freq"` // Lower bound of the vocal band (Hz)
	MaxFreq float64 `json:"max_freq"` // Upper bound of the vocal band (Hz)

	// Pitch plausibility cutoff, deliberately narrower than MaxFreq
	PitchMax float64 `json:"pitch_max"`

	// Spectral analysis
	WindowSize       int     `json:"window_size"`       // STFT window size
	HopSize          int     `json:"hop_size"`          // STFT hop size
	PeakThreshold    float64 `json:"peak_threshold"`    // Significance threshold for peak frequency
	RolloffThreshold float64 `json:"rolloff_threshold"` // Cumulative energy fraction for rolloff

	// Pitch tracking
	PitchWindowSize   int     `json:"pitch_window_size"`
	PitchHopSize      int     `json:"pitch_hop_size"`
	PitchYinThreshold float64 `json:"pitch_yin_threshold"`
}

// DefaultConfig returns the default pipeline configuration tuned for
// short vocal recordings
func DefaultConfig() *Config {
	return &Config{
		SampleRate:        44100,
		DownsampleFactor:  10,
		MinFreq:           70.0,
		MaxFreq:           2000.0,
		PitchMax:          1500.0,
		WindowSize:        2048,
		HopSize:           512,
		PeakThreshold:     0.05,
		RolloffThreshold:  0.85,
		PitchWindowSize:   1024,
		PitchHopSize:      512,
		PitchYinThreshold: 0.15,
	}
}

// EffectiveRate returns the sample rate after downsampling
func (c *Config) EffectiveRate() int {
	return c.SampleRate / c.DownsampleFactor
}

// Validate checks the configuration for internally consistent values
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.DownsampleFactor <= 0 {
		return fmt.Errorf("downsample factor must be positive, got %d", c.DownsampleFactor)
	}
	if c.MinFreq <= 0 || c.MaxFreq <= c.MinFreq {
		return fmt.Errorf("invalid frequency band [%v, %v]", c.MinFreq, c.MaxFreq)
	}
	if c.PitchMax <= c.MinFreq {
		return fmt.Errorf("pitch cutoff (%v) must exceed min frequency (%v)", c.PitchMax, c.MinFreq)
	}
	if c.WindowSize <= 0 || c.HopSize <= 0 {
		return fmt.Errorf("invalid STFT parameters: window %d, hop %d", c.WindowSize, c.HopSize)
	}
	if c.PitchWindowSize <= 0 || c.PitchHopSize <= 0 {
		return fmt.Errorf("invalid pitch parameters: window %d, hop %d", c.PitchWindowSize, c.PitchHopSize)
	}
	if c.RolloffThreshold <= 0 || c.RolloffThreshold > 1 {
		return fmt.Errorf("rolloff threshold must be in (0, 1], got %v", c.RolloffThreshold)
	}
	maxDetectable := float64(c.EffectiveRate()) / 2.0
	if c.MinFreq >= maxDetectable {
		return fmt.Errorf("min frequency (%v Hz) exceeds Nyquist at effective rate (%v Hz)", c.MinFreq, maxDetectable)
	}
	return nil
}
