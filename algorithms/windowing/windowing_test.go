package windowing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHammingCoefficients(t *testing.T) {
	h := NewHamming(5, true)
	coeffs := h.GetCoefficients()
	require.Len(t, coeffs, 5)

	// Symmetric Hamming: 0.08 at the edges, 1.0 at the center
	assert.InDelta(t, 0.08, coeffs[0], 1e-9)
	assert.InDelta(t, 1.0, coeffs[2], 1e-9)
	assert.InDelta(t, 0.08, coeffs[4], 1e-9)
	assert.InDelta(t, coeffs[1], coeffs[3], 1e-9)
}

func TestHammingApply(t *testing.T) {
	h := NewHamming(4, true)

	signal := []float64{1, 1, 1, 1}
	windowed := h.Apply(signal)
	require.NotNil(t, windowed)
	assert.Equal(t, h.GetCoefficients(), windowed)

	// Original signal untouched
	assert.Equal(t, []float64{1, 1, 1, 1}, signal)

	// Length mismatch
	assert.Nil(t, h.Apply([]float64{1, 2}))
}

func TestHammingApplyInPlace(t *testing.T) {
	h := NewHamming(3, true)

	signal := []float64{2, 2, 2}
	require.NoError(t, h.ApplyInPlace(signal))
	assert.InDelta(t, 0.16, signal[0], 1e-9)
	assert.InDelta(t, 2.0, signal[1], 1e-9)

	err := h.ApplyInPlace([]float64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doesn't match window size")
}

func TestHannCoefficients(t *testing.T) {
	h := NewHann(5, true)
	coeffs := h.GetCoefficients()
	require.Len(t, coeffs, 5)

	// Symmetric Hann: zero at the edges, 1.0 at the center
	assert.InDelta(t, 0.0, coeffs[0], 1e-9)
	assert.InDelta(t, 1.0, coeffs[2], 1e-9)
	assert.InDelta(t, 0.0, coeffs[4], 1e-9)
}

func TestWindowTypes(t *testing.T) {
	assert.Equal(t, "hamming", NewHamming(8, true).GetType())
	assert.Equal(t, "hann", NewHann(8, true).GetType())
	assert.Equal(t, 8, NewHamming(8, false).GetSize())
}
