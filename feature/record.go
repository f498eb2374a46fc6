package feature

// FeatureRecord is the fixed nine-field acoustic descriptor produced for
// each recording. Records are created once per input file and never
// mutated after validation completes.
//
// For the frequency-valued fields a value of 0.0 doubles as "nothing
// detected" (silence, no significant peak, no voiced frame). The
// overload is kept for wire-format compatibility with existing sample
// libraries.
type FeatureRecord struct {
	Duration         float64 `json:"Duration"`         // Seconds, measured at the native rate
	Energy           float64 `json:"Energy"`           // Sum of squared windowed amplitudes
	RootMeanSquare   float64 `json:"RootMeanSquare"`   // RMS of the windowed signal
	ZeroCrossRate    float64 `json:"ZeroCrossRate"`    // Fraction of sign changes, whole signal as one frame
	PeakFreq         float64 `json:"PeakFreq"`         // Dominant in-band frequency (Hz), 0 if none
	FundamentalFreq  float64 `json:"FundamentalFreq"`  // Mean F0 over voiced frames (Hz), 0 if unvoiced
	Pitch            float64 `json:"Pitch"`            // Reported pitch (Hz), reconciled against F0
	SpectralCentroid float64 `json:"SpectralCentroid"` // Brightness proxy (Hz)
	SpectralRolloff  float64 `json:"SpectralRolloff"`  // 85% cumulative energy point (Hz)
}
