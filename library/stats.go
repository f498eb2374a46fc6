package library

import (
	"gonum.org/v1/gonum/stat"
)

// EmotionStats summarizes the feature distribution of one category
type EmotionStats struct {
	Emotion      string  `json:"emotion"`
	Count        int     `json:"count"`
	MeanPitch    float64 `json:"mean_pitch"`
	PitchStdDev  float64 `json:"pitch_std_dev"`
	MeanDuration float64 `json:"mean_duration"`
}

// Stats computes per-category distribution summaries in label insertion
// order. Used for run reports and chart annotations.
func (l *SampleLibrary) Stats() []EmotionStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]EmotionStats, 0, len(l.Emotions))

	for _, emotion := range l.Emotions {
		samples := l.Samples[emotion]
		if len(samples) == 0 {
			result = append(result, EmotionStats{Emotion: emotion})
			continue
		}

		pitches := make([]float64, len(samples))
		durations := make([]float64, len(samples))
		for i, sample := range samples {
			pitches[i] = sample.Features.Pitch
			durations[i] = sample.Features.Duration
		}

		entry := EmotionStats{
			Emotion:      emotion,
			Count:        len(samples),
			MeanPitch:    stat.Mean(pitches, nil),
			MeanDuration: stat.Mean(durations, nil),
		}
		if len(pitches) > 1 {
			entry.PitchStdDev = stat.StdDev(pitches, nil)
		}

		result = append(result, entry)
	}

	return result
}
