package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/sonidolab/vocalib/feature"
)

// Sample is an immutable association of a validated feature record with
// its source file and category label.
type Sample struct {
	FilePath string                `json:"FilePath"`
	Emotion  string                `json:"Emotion"`
	Features feature.FeatureRecord `json:"Features"`
}

// SampleLibrary groups validated samples by category label. Appends are
// serialized internally, so independent per-file workers can add their
// results concurrently. TotalSamples and Emotions are maintained
// atomically with each append: TotalSamples always equals the number of
// stored samples and Emotions always equals the key set of Samples, in
// insertion order.
//
// Repeated processing of the same file path produces duplicate entries;
// the library performs no deduplication.
type SampleLibrary struct {
	mu sync.Mutex

	TotalSamples int                 `json:"totalSamples"`
	Emotions     []string            `json:"emotions"`
	Samples      map[string][]Sample `json:"samples"`
}

// NewSampleLibrary creates an empty sample library
func NewSampleLibrary() *SampleLibrary {
	return &SampleLibrary{
		Emotions: []string{},
		Samples:  make(map[string][]Sample),
	}
}

// Add appends a sample under its emotion label, registering the label on
// first sight
func (l *SampleLibrary) Add(sample Sample) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, seen := l.Samples[sample.Emotion]; !seen {
		l.Emotions = append(l.Emotions, sample.Emotion)
		l.Samples[sample.Emotion] = []Sample{}
	}

	l.Samples[sample.Emotion] = append(l.Samples[sample.Emotion], sample)
	l.TotalSamples++
}

// Len returns the number of stored samples
func (l *SampleLibrary) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.TotalSamples
}

// EmotionLabels returns the registered labels in insertion order
func (l *SampleLibrary) EmotionLabels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.Emotions)
}

// SamplesFor returns the samples stored under the given label
func (l *SampleLibrary) SamplesFor(emotion string) []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.Samples[emotion])
}

// Save serializes the library as indented JSON. The document is written
// to a temporary file in the target directory and moved into place
// atomically, so a failed write never leaves a partial library behind.
func (l *SampleLibrary) Save(path string) error {
	l.mu.Lock()
	jsonData, err := json.MarshalIndent(l, "", "  ")
	l.mu.Unlock()
	if err != nil {
		return errors.Wrap(err, "marshal sample library failed")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrap(err, "create temporary library file failed")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "write sample library failed")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "close temporary library file failed")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "move sample library into place failed")
	}

	return nil
}

// Load reads a previously saved library from disk
func Load(path string) (*SampleLibrary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read sample library failed")
	}

	lib := NewSampleLibrary()
	if err := json.Unmarshal(raw, lib); err != nil {
		return nil, errors.Wrap(err, "parse sample library failed")
	}

	return lib, nil
}
