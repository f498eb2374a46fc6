package spectral

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonidolab/vocalib/algorithms/windowing"
)

// makeSine generates a sine wave for test signals.
func makeSine(freq float64, sampleRate int, seconds float64) []float64 {
	n := int(float64(sampleRate) * seconds)
	signal := make([]float64, n)
	for i := range n {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestSTFTComputeWithWindow(t *testing.T) {
	sampleRate := 4410
	signal := makeSine(440.0, sampleRate, 1.0)

	stft := NewSTFT()
	result, err := stft.ComputeWithWindow(signal, 2048, 512, sampleRate, windowing.NewHann(2048, true))
	require.NoError(t, err)

	expectedFrames := (len(signal)-2048)/512 + 1
	assert.Equal(t, expectedFrames, result.TimeFrames)
	assert.Equal(t, 2048/2+1, result.FreqBins)
	assert.Len(t, result.Magnitude, expectedFrames)

	// Dominant bin of every frame should land on the sine frequency
	binFreq := float64(sampleRate) / 2048.0
	for _, frame := range result.Magnitude {
		peakBin := 0
		for i, mag := range frame {
			if mag > frame[peakBin] {
				peakBin = i
			}
		}
		assert.InDelta(t, 440.0, float64(peakBin)*binFreq, binFreq*1.5)
	}
}

func TestSTFTInvalidInput(t *testing.T) {
	stft := NewSTFT()

	_, err := stft.ComputeWithWindow(nil, 2048, 512, 4410, nil)
	assert.Error(t, err)

	_, err = stft.ComputeWithWindow([]float64{1, 2, 3}, 0, 512, 4410, nil)
	assert.Error(t, err)

	_, err = stft.ComputeWithWindow([]float64{1, 2, 3}, 2048, 0, 4410, nil)
	assert.Error(t, err)

	// Shorter than one window
	_, err = stft.ComputeWithWindow(makeSine(440, 4410, 0.1), 2048, 512, 4410, nil)
	assert.Error(t, err)
}

func TestSTFTComputeSingleFrame(t *testing.T) {
	sampleRate := 4410
	signal := makeSine(440.0, sampleRate, 0.2)

	stft := NewSTFT()
	result, err := stft.ComputeSingleFrame(signal, sampleRate)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TimeFrames)
	require.Len(t, result.Magnitude, 1)
	assert.NotEmpty(t, result.Magnitude[0])

	_, err = stft.ComputeSingleFrame(nil, sampleRate)
	assert.Error(t, err)
}

func TestSpectralCentroidSingleBin(t *testing.T) {
	// 5 bins at 1000 Hz map to 0, 125, 250, 375, 500 Hz
	sc := NewSpectralCentroid(1000)

	centroid := sc.Compute([]float64{0, 0, 1, 0, 0})
	assert.InDelta(t, 250.0, centroid, 1e-9)

	// Zero spectrum has no centroid
	assert.Equal(t, 0.0, sc.Compute([]float64{0, 0, 0, 0, 0}))
	assert.Equal(t, 0.0, sc.Compute(nil))
}

func TestSpectralCentroidWeighted(t *testing.T) {
	sc := NewSpectralCentroid(1000)

	// Equal weight on 125 Hz and 375 Hz averages to 250 Hz
	centroid := sc.Compute([]float64{0, 1, 0, 1, 0})
	assert.InDelta(t, 250.0, centroid, 1e-9)
}

func TestSpectralRolloff(t *testing.T) {
	sr := NewSpectralRolloff(1000)

	// Equal energy bins: cumulative fractions 0.2, 0.4, 0.6, 0.8, 1.0;
	// the 85th percentile is first reached at the last bin (500 Hz)
	rolloff := sr.Compute([]float64{1, 1, 1, 1, 1}, 0.85)
	assert.InDelta(t, 500.0, rolloff, 1e-9)

	// All energy in the first bin: rolloff at DC
	rolloff = sr.Compute([]float64{1, 0, 0, 0, 0}, 0.85)
	assert.InDelta(t, 0.0, rolloff, 1e-9)

	assert.Equal(t, 0.0, sr.Compute(nil, 0.85))
	assert.Equal(t, 0.0, sr.Compute([]float64{0, 0, 0}, 0.85))
}

func TestPeakFrequencySine(t *testing.T) {
	sampleRate := 4410
	signal := makeSine(440.0, sampleRate, 1.0)

	stft := NewSTFT()
	result, err := stft.ComputeWithWindow(signal, 2048, 512, sampleRate, windowing.NewHann(2048, true))
	require.NoError(t, err)

	pf := NewPeakFrequency(sampleRate, 70.0, 2000.0, 0.05)
	peak := pf.Compute(result.Magnitude)
	assert.InDelta(t, 440.0, peak, 50.0)
}

func TestPeakFrequencyBandAndThreshold(t *testing.T) {
	// Single frame, 5 bins at 1000 Hz: 0, 125, 250, 375, 500 Hz
	spectrogram := [][]float64{{0, 0.5, 2.0, 0.5, 0}}

	pf := NewPeakFrequency(1000, 70.0, 480.0, 0.05)
	assert.InDelta(t, 250.0, pf.Compute(spectrogram), 1e-9)

	// Strongest bin excluded by the band
	pf = NewPeakFrequency(1000, 300.0, 480.0, 0.05)
	assert.InDelta(t, 375.0, pf.Compute(spectrogram), 1e-9)

	// No bins in band
	pf = NewPeakFrequency(1000, 600.0, 900.0, 0.05)
	assert.Equal(t, 0.0, pf.Compute(spectrogram))

	// Below significance threshold
	pf = NewPeakFrequency(1000, 70.0, 480.0, 10.0)
	assert.Equal(t, 0.0, pf.Compute(spectrogram))

	assert.Equal(t, 0.0, pf.Compute(nil))
	assert.Equal(t, 0.0, pf.Compute([][]float64{}))
}

func TestPeakFrequencySilence(t *testing.T) {
	pf := NewPeakFrequency(4410, 70.0, 2000.0, 0.05)

	silent := make([][]float64, 4)
	for i := range silent {
		silent[i] = make([]float64, 1025)
	}
	assert.Equal(t, 0.0, pf.Compute(silent))
}

func TestZeroCrossingRateNormalized(t *testing.T) {
	zcr := NewZeroCrossingRate(4410)

	// Alternating signal crosses at every step: 3 crossings over 4 samples
	assert.InDelta(t, 0.75, zcr.ComputeNormalized([]float64{1, -1, 1, -1}), 1e-9)

	// Constant and silent signals never cross
	assert.Equal(t, 0.0, zcr.ComputeNormalized([]float64{1, 1, 1, 1}))
	assert.Equal(t, 0.0, zcr.ComputeNormalized(make([]float64, 100)))

	// Degenerate inputs
	assert.Equal(t, 0.0, zcr.ComputeNormalized(nil))
	assert.Equal(t, 0.0, zcr.ComputeNormalized([]float64{1}))
}

func TestCalculatorsConcurrentMixedSpectrumSizes(t *testing.T) {
	// One calculator instance shared by many goroutines feeding spectra
	// of different bin counts, as a batch of mixed-duration recordings
	// does. Values must match the single-goroutine results.
	sc := NewSpectralCentroid(4410)
	sr := NewSpectralRolloff(4410)
	pf := NewPeakFrequency(4410, 70.0, 2000.0, 0.05)

	sizes := []int{33, 1025, 129, 513, 65}
	spectra := make([][]float64, len(sizes))
	for i, size := range sizes {
		spectrum := make([]float64, size)
		spectrum[size/3] = 2.0
		spectrum[size/2] = 1.0
		spectra[i] = spectrum
	}

	wantCentroid := make([]float64, len(spectra))
	wantRolloff := make([]float64, len(spectra))
	wantPeak := make([]float64, len(spectra))
	for i, spectrum := range spectra {
		wantCentroid[i] = sc.Compute(spectrum)
		wantRolloff[i] = sr.Compute(spectrum, 0.85)
		wantPeak[i] = pf.Compute([][]float64{spectrum})
	}

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := range 50 {
				i := (g + iter) % len(spectra)
				assert.Equal(t, wantCentroid[i], sc.Compute(spectra[i]))
				assert.Equal(t, wantRolloff[i], sr.Compute(spectra[i], 0.85))
				assert.Equal(t, wantPeak[i], pf.Compute([][]float64{spectra[i]}))
			}
		}()
	}
	wg.Wait()
}

func TestBinFrequency(t *testing.T) {
	// 5 bins at 1000 Hz: DC to Nyquist in 125 Hz steps
	assert.InDelta(t, 0.0, binFrequency(0, 5, 1000), 1e-9)
	assert.InDelta(t, 125.0, binFrequency(1, 5, 1000), 1e-9)
	assert.InDelta(t, 500.0, binFrequency(4, 5, 1000), 1e-9)
	assert.Equal(t, 0.0, binFrequency(0, 1, 1000))
}

func TestZeroCrossingRateSine(t *testing.T) {
	sampleRate := 4410
	zcr := NewZeroCrossingRate(sampleRate)

	// A sine crosses zero twice per cycle
	signal := makeSine(440.0, sampleRate, 1.0)
	expected := 2.0 * 440.0 / float64(sampleRate)
	assert.InDelta(t, expected, zcr.ComputeNormalized(signal), 0.01)

	perSecond := zcr.Compute(signal)
	assert.InDelta(t, 880.0, perSecond, 10.0)
}
