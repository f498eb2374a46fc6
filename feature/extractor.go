package feature

import (
	"fmt"

	"github.com/sonidolab/vocalib/algorithms/spectral"
	"github.com/sonidolab/vocalib/algorithms/temporal"
	"github.com/sonidolab/vocalib/algorithms/tonal"
	"github.com/sonidolab/vocalib/algorithms/windowing"
	"github.com/sonidolab/vocalib/logging"
	"github.com/sonidolab/vocalib/transcode"
)

// Extractor runs the full per-file analysis pipeline: decode, resample,
// window, then the time-domain, spectral and pitch analyzers, finishing
// with validation. Each invocation owns its waveform exclusively; the
// waveform is discarded once the feature record is built.
type Extractor struct {
	config *Config

	decoder  *transcode.Decoder
	stft     *spectral.STFT
	centroid *spectral.SpectralCentroid
	rolloff  *spectral.SpectralRolloff
	peak     *spectral.PeakFrequency
	zcr      *spectral.ZeroCrossingRate
	energy   *temporal.Energy
	pitch    *tonal.PitchTracker

	validator *Validator
	logger    logging.Logger
}

// NewExtractor creates an extractor for the given configuration. All
// frequency-domain analyzers operate at the effective (downsampled) rate.
func NewExtractor(config *Config) (*Extractor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid extractor config: %w", err)
	}

	effectiveRate := config.EffectiveRate()

	return &Extractor{
		config:   config,
		decoder:  transcode.NewDecoder(),
		stft:     spectral.NewSTFT(),
		centroid: spectral.NewSpectralCentroid(effectiveRate),
		rolloff:  spectral.NewSpectralRolloff(effectiveRate),
		peak:     spectral.NewPeakFrequency(effectiveRate, config.MinFreq, config.MaxFreq, config.PeakThreshold),
		zcr:      spectral.NewZeroCrossingRate(effectiveRate),
		energy:   temporal.NewEnergy(),
		pitch: tonal.NewPitchTrackerWithParams(tonal.PitchTrackerParams{
			SampleRate:   effectiveRate,
			WindowSize:   config.PitchWindowSize,
			HopSize:      config.PitchHopSize,
			MinFreq:      config.MinFreq,
			MaxFreq:      config.MaxFreq,
			YinThreshold: config.PitchYinThreshold,
		}),
		validator: NewValidator(config.MinFreq, config.MaxFreq, config.PitchMax),
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}, nil
}

// Config returns the extractor's configuration
func (e *Extractor) Config() *Config {
	return e.config
}

// Extract decodes the file and produces a validated feature record.
// A decode or analysis failure returns an error and leaves no partial
// record; callers skip the file and continue the batch.
func (e *Extractor) Extract(path string) (*FeatureRecord, error) {
	data, err := e.decoder.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	// Duration reports the source signal at its native rate: windowing
	// and downsampling must not distort it
	record := &FeatureRecord{
		Duration: data.Duration.Seconds(),
	}

	windowed, err := e.prepareSignal(data)
	if err != nil {
		return nil, fmt.Errorf("prepare %s: %w", path, err)
	}

	e.analyzeTimeDomain(windowed, record)

	if err := e.analyzeSpectrum(windowed, record); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	e.analyzePitch(windowed, record)

	e.validator.Apply(record)

	e.logger.Debug("extracted features", logging.Fields{
		"path":             path,
		"duration":         record.Duration,
		"peak_freq":        record.PeakFreq,
		"fundamental_freq": record.FundamentalFreq,
		"pitch":            record.Pitch,
	})

	return record, nil
}

// prepareSignal resamples the waveform to the reference rate, then to
// the effective rate, and applies a full-length symmetric Hamming window
// to suppress edge artifacts before spectral analysis.
func (e *Extractor) prepareSignal(data *transcode.AudioData) ([]float64, error) {
	reference := transcode.ResampleTo(data.PCM, data.SampleRate, e.config.SampleRate)
	downsampled := transcode.ResampleTo(reference, e.config.SampleRate, e.config.EffectiveRate())

	if len(downsampled) < 2 {
		return nil, fmt.Errorf("signal too short after downsampling: %d samples", len(downsampled))
	}

	hamming := windowing.NewHamming(len(downsampled), true)
	windowed := hamming.Apply(downsampled)
	if windowed == nil {
		return nil, fmt.Errorf("windowing failed for %d samples", len(downsampled))
	}

	return windowed, nil
}

func (e *Extractor) analyzeTimeDomain(windowed []float64, record *FeatureRecord) {
	record.Energy = e.energy.Compute(windowed)
	record.RootMeanSquare = e.energy.ComputeRMS(windowed)
	record.ZeroCrossRate = e.zcr.ComputeNormalized(windowed)
}

func (e *Extractor) analyzeSpectrum(windowed []float64, record *FeatureRecord) error {
	var result *spectral.STFTResult
	var err error

	if len(windowed) >= e.config.WindowSize {
		hann := windowing.NewHann(e.config.WindowSize, true)
		result, err = e.stft.ComputeWithWindow(windowed, e.config.WindowSize, e.config.HopSize, e.config.EffectiveRate(), hann)
	} else {
		// Short signal: one frame spanning the whole recording
		result, err = e.stft.ComputeSingleFrame(windowed, e.config.EffectiveRate())
	}
	if err != nil {
		return err
	}

	record.PeakFreq = e.peak.Compute(result.Magnitude)
	record.SpectralCentroid = e.centroid.Compute(result.Magnitude[0])
	record.SpectralRolloff = e.rolloff.Compute(result.Magnitude[0], e.config.RolloffThreshold)

	return nil
}

func (e *Extractor) analyzePitch(windowed []float64, record *FeatureRecord) {
	frames := e.pitch.Track(windowed)
	record.FundamentalFreq = e.pitch.AggregateF0(frames)

	// Pitch starts equal to the aggregate; validation reconciles the two
	// should they ever diverge
	record.Pitch = record.FundamentalFreq
}
