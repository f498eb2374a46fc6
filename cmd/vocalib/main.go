package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/sonidolab/vocalib/charts"
	"github.com/sonidolab/vocalib/feature"
	"github.com/sonidolab/vocalib/library"
	"github.com/sonidolab/vocalib/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "vocalib",
		Usage: "Build a labeled acoustic feature library from vocal recordings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Directory of audio files (wav, mp3)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path of the sample library JSON document",
				Value:   "sample_library.json",
			},
			&cli.StringFlag{
				Name:  "labels",
				Usage: "Optional YAML label table mapping sample identifiers to categories",
			},
			&cli.StringFlag{
				Name:  "charts",
				Usage: "Optional directory for distribution charts",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of parallel extraction workers (0 = one per CPU)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logging.Fatal(err, "vocalib failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("verbose") {
		logging.SetLevel(logging.DebugLevel)
	}

	files, err := collectAudioFiles(cmd.String("input"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s", cmd.String("input"))
	}

	logging.Info("found audio files", logging.Fields{
		"count": len(files),
		"dir":   cmd.String("input"),
	})

	resolver, err := buildResolver(cmd.String("labels"))
	if err != nil {
		return err
	}

	builder, err := library.NewBuilder(feature.DefaultConfig(), resolver, cmd.Int("workers"))
	if err != nil {
		return err
	}

	lib := builder.Build(files)

	// Serialization failure is the one fatal error of the batch
	output := cmd.String("output")
	if err := lib.Save(output); err != nil {
		return fmt.Errorf("save library: %w", err)
	}

	for _, entry := range lib.Stats() {
		logging.Info("category summary", logging.Fields{
			"emotion":       entry.Emotion,
			"samples":       entry.Count,
			"mean_pitch":    entry.MeanPitch,
			"mean_duration": entry.MeanDuration,
		})
	}

	logging.Info("library saved", logging.Fields{
		"path":     output,
		"samples":  lib.Len(),
		"emotions": len(lib.EmotionLabels()),
	})

	if chartDir := cmd.String("charts"); chartDir != "" {
		if err := charts.RenderDistributions(lib, chartDir); err != nil {
			// Charts are a secondary output; the library is already saved
			logging.Warn("chart rendering failed", logging.Fields{
				"error": err.Error(),
			})
		}
	}

	return nil
}

func collectAudioFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.wav", "*.mp3"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func buildResolver(labelTablePath string) (library.LabelResolver, error) {
	resolvers := make([]library.LabelResolver, 0, 2)

	if labelTablePath != "" {
		table, err := library.LoadTableResolver(labelTablePath)
		if err != nil {
			return nil, fmt.Errorf("load label table: %w", err)
		}
		resolvers = append(resolvers, table)
	}

	resolvers = append(resolvers, library.NewFilenameResolver())

	return library.NewResolverChain(resolvers...), nil
}
