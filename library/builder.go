package library

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sonidolab/vocalib/feature"
	"github.com/sonidolab/vocalib/logging"
)

// Builder runs the per-file extraction pipeline over a batch of input
// files and aggregates the results into a SampleLibrary. Files are
// independent, so they are processed by a pool of workers with no
// ordering between them; the library serializes the appends.
//
// A decode or analysis failure, or an unresolvable label, skips that
// file with a diagnostic and the batch continues.
type Builder struct {
	extractor *feature.Extractor
	resolver  LabelResolver
	workers   int
	logger    logging.Logger
}

// NewBuilder creates a batch builder. workers <= 0 selects one worker
// per CPU.
func NewBuilder(config *feature.Config, resolver LabelResolver, workers int) (*Builder, error) {
	extractor, err := feature.NewExtractor(config)
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}

	if resolver == nil {
		resolver = NewFilenameResolver()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Builder{
		extractor: extractor,
		resolver:  resolver,
		workers:   workers,
		logger: logging.WithFields(logging.Fields{
			"component": "library_builder",
		}),
	}, nil
}

// Build processes every input file and returns the aggregated library.
// The returned library is complete even when some files were skipped;
// skipped files are reported through the logger only.
func (b *Builder) Build(files []string) *SampleLibrary {
	lib := NewSampleLibrary()

	if len(files) == 0 {
		return lib
	}

	workers := min(b.workers, len(files))
	jobs := make(chan string, len(files))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				b.processFile(path, lib)
			}
		}()
	}

	for _, path := range files {
		jobs <- path
	}
	close(jobs)

	wg.Wait()

	b.logger.Info("batch complete", logging.Fields{
		"files":    len(files),
		"samples":  lib.Len(),
		"emotions": len(lib.EmotionLabels()),
	})

	return lib
}

func (b *Builder) processFile(path string, lib *SampleLibrary) {
	label, ok := b.resolver.Resolve(path)
	if !ok || label == UnknownLabel {
		b.logger.Warn("no label for file, skipping", logging.Fields{
			"path": path,
		})
		return
	}

	record, err := b.extractor.Extract(path)
	if err != nil {
		b.logger.Warn("extraction failed, skipping file", logging.Fields{
			"path":  path,
			"error": err.Error(),
		})
		return
	}

	lib.Add(Sample{
		FilePath: path,
		Emotion:  label,
		Features: *record,
	})
}
