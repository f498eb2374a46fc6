package feature

import (
	"math"

	"github.com/sonidolab/vocalib/logging"
)

// Validator applies deterministic, order-dependent corrections that keep
// extracted features within physically plausible bounds. Out-of-band
// values are corrected in place and never surfaced as errors.
type Validator struct {
	minFreq  float64
	maxFreq  float64
	pitchMax float64
	logger   logging.Logger
}

// NewValidator creates a validator for the given vocal band and pitch cutoff
func NewValidator(minFreq, maxFreq, pitchMax float64) *Validator {
	return &Validator{
		minFreq:  minFreq,
		maxFreq:  maxFreq,
		pitchMax: pitchMax,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_validator",
		}),
	}
}

// Apply corrects the record in place. The steps run in a fixed order:
// the pitch/fundamental reconciliation must come after the band checks,
// because a zeroed value short-circuits it.
func (v *Validator) Apply(r *FeatureRecord) {
	// 1. Energy and RMS cannot be negative; clamp numerical error
	if r.Energy < 0 {
		r.Energy = 0.0
	}
	if r.RootMeanSquare < 0 {
		r.RootMeanSquare = 0.0
	}

	// 2. Pitch outside the plausible vocal pitch range
	if r.Pitch < v.minFreq || r.Pitch > v.pitchMax {
		if r.Pitch != 0 {
			v.logger.Debug("pitch outside plausible range, zeroed", logging.Fields{
				"pitch": r.Pitch,
			})
		}
		r.Pitch = 0.0
	}

	// 3. Peak frequency outside the vocal band
	if r.PeakFreq < v.minFreq || r.PeakFreq > v.maxFreq {
		r.PeakFreq = 0.0
	}

	// 4. Fundamental frequency is authoritative when both are present
	if r.FundamentalFreq > 0 && r.Pitch > 0 {
		if math.Abs(r.FundamentalFreq-r.Pitch) > 1.0 {
			r.Pitch = r.FundamentalFreq
		}
	}
}
