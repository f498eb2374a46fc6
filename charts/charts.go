// Package charts renders per-category feature distribution images for a
// finished sample library. It consumes the library read-only; chart
// rendering is a secondary output and its failures never affect the
// library itself.
package charts

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sonidolab/vocalib/library"
)

// RenderDistributions writes one scatter chart per tracked metric
// (pitch, duration) into dir, one column of points per emotion.
func RenderDistributions(lib *library.SampleLibrary, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create chart directory failed")
	}

	emotions := lib.EmotionLabels()

	pitch := func(s library.Sample) float64 { return s.Features.Pitch }
	duration := func(s library.Sample) float64 { return s.Features.Duration }

	if err := renderMetric(lib, emotions, "Pitch Distribution", "Pitch (Hz)",
		filepath.Join(dir, "pitch_distribution.png"), pitch); err != nil {
		return err
	}

	return renderMetric(lib, emotions, "Duration Distribution", "Duration (s)",
		filepath.Join(dir, "duration_distribution.png"), duration)
}

func renderMetric(lib *library.SampleLibrary, emotions []string, title, yLabel, path string, metric func(library.Sample) float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	for i, emotion := range emotions {
		samples := lib.SamplesFor(emotion)

		points := make(plotter.XYs, len(samples))
		for j, sample := range samples {
			points[j].X = float64(i)
			points[j].Y = metric(sample)
		}

		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return errors.Wrapf(err, "build scatter for %q failed", emotion)
		}
		scatter.GlyphStyle.Color = plotutil.Color(i)

		p.Add(scatter)
		p.Legend.Add(emotion, scatter)
	}

	// NominalX cannot relabel an axis with no categories
	if len(emotions) > 0 {
		p.NominalX(emotions...)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save chart %s failed", path)
	}

	return nil
}
