package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestValidator() *Validator {
	return NewValidator(70.0, 2000.0, 1500.0)
}

func TestValidatorClampsNegativeEnergy(t *testing.T) {
	v := newTestValidator()

	r := &FeatureRecord{Energy: -1e-12, RootMeanSquare: -0.5}
	v.Apply(r)
	assert.Equal(t, 0.0, r.Energy)
	assert.Equal(t, 0.0, r.RootMeanSquare)
}

func TestValidatorPitchBand(t *testing.T) {
	v := newTestValidator()

	for _, tc := range []struct {
		name     string
		pitch    float64
		expected float64
	}{
		{"below band", 50.0, 0.0},
		{"above cutoff", 1600.0, 0.0},
		{"at lower bound", 70.0, 70.0},
		{"at cutoff", 1500.0, 1500.0},
		{"plausible", 440.0, 440.0},
		{"already zero", 0.0, 0.0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := &FeatureRecord{Pitch: tc.pitch}
			v.Apply(r)
			assert.Equal(t, tc.expected, r.Pitch)
		})
	}
}

func TestValidatorPeakFreqBand(t *testing.T) {
	v := newTestValidator()

	r := &FeatureRecord{PeakFreq: 2500.0}
	v.Apply(r)
	assert.Equal(t, 0.0, r.PeakFreq)

	r = &FeatureRecord{PeakFreq: 440.0}
	v.Apply(r)
	assert.Equal(t, 440.0, r.PeakFreq)

	r = &FeatureRecord{PeakFreq: 30.0}
	v.Apply(r)
	assert.Equal(t, 0.0, r.PeakFreq)
}

func TestValidatorReconciliation(t *testing.T) {
	v := newTestValidator()

	// Fundamental wins when the two disagree by more than 1 Hz
	r := &FeatureRecord{FundamentalFreq: 440.0, Pitch: 450.0}
	v.Apply(r)
	assert.Equal(t, 440.0, r.Pitch)

	// Small disagreement is left alone
	r = &FeatureRecord{FundamentalFreq: 440.0, Pitch: 440.5}
	v.Apply(r)
	assert.Equal(t, 440.5, r.Pitch)

	// A zeroed pitch short-circuits reconciliation
	r = &FeatureRecord{FundamentalFreq: 440.0, Pitch: 0.0}
	v.Apply(r)
	assert.Equal(t, 0.0, r.Pitch)

	// No fundamental, no reconciliation
	r = &FeatureRecord{FundamentalFreq: 0.0, Pitch: 440.0}
	v.Apply(r)
	assert.Equal(t, 440.0, r.Pitch)
}

func TestValidatorOrdering(t *testing.T) {
	v := newTestValidator()

	// An out-of-band pitch is zeroed by the band check before
	// reconciliation runs, so the fundamental never overwrites it
	r := &FeatureRecord{FundamentalFreq: 440.0, Pitch: 1600.0}
	v.Apply(r)
	assert.Equal(t, 0.0, r.Pitch)
	assert.Equal(t, 440.0, r.FundamentalFreq)
}

func TestValidatorIdempotent(t *testing.T) {
	v := newTestValidator()

	r := &FeatureRecord{
		Duration:        1.2,
		Energy:          -0.1,
		PeakFreq:        2500.0,
		FundamentalFreq: 440.0,
		Pitch:           450.0,
	}
	v.Apply(r)
	first := *r
	v.Apply(r)
	assert.Equal(t, first, *r)
}
