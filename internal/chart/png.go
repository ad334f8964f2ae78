// Package chart renders speed profiles and segmented paths, as static PNG plots and as
// interactive HTML pages.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cxd309/speed-profile/internal/geometry"
	"github.com/cxd309/speed-profile/internal/profile"
	"github.com/cxd309/speed-profile/internal/segment"
)

var (
	straightColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	curveColor    = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	insetColor    = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

func kindColor(curved bool) color.Color {
	if curved {
		return curveColor
	}
	return straightColor
}

// legend adds l under label the first time label is seen.
type legend struct {
	p    *plot.Plot
	seen map[string]bool
}

func (lg *legend) add(label string, thumb plot.Thumbnailer) {
	if lg.seen[label] {
		return
	}
	lg.seen[label] = true
	lg.p.Legend.Add(label, thumb)
}

// WriteProfilePNG saves a velocity-over-time plot of prof, one line per segment coloured
// by segment kind.
func WriteProfilePNG(path string, prof *profile.Profile) error {
	if prof == nil || len(prof.Samples) == 0 {
		return fmt.Errorf("empty profile")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Speed profile - %d segments, dt=%gs", len(prof.Segments), prof.TimeStep)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Velocity"
	lg := legend{p: p, seen: map[string]bool{}}

	for i, sp := range prof.Segments {
		samples := prof.SegmentSamples(i)
		pts := make(plotter.XYs, len(samples))
		for j, s := range samples {
			pts[j] = plotter.XY{X: s.Time, Y: s.Velocity}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		curved := sp.Segment.Kind == segment.KindCurve
		line.Color = kindColor(curved)
		line.Width = vg.Points(1.5)
		p.Add(line)
		lg.add(string(sp.Segment.Kind), line)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WritePathPNG saves a plot of the segmented path, one polyline per run coloured by
// regime. Inset paths, if any, are drawn dashed.
func WritePathPNG(path string, runs []segment.Run, insets [][]geometry.Point) error {
	if len(runs) == 0 {
		return fmt.Errorf("no runs to plot")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Segmented path - %d runs", len(runs))
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	lg := legend{p: p, seen: map[string]bool{}}

	for _, run := range runs {
		line, err := plotter.NewLine(xys(run.Points))
		if err != nil {
			return err
		}
		line.Color = kindColor(run.Curved)
		line.Width = vg.Points(2)
		p.Add(line)
		if run.Curved {
			lg.add("curve", line)
		} else {
			lg.add("straight", line)
		}
	}
	for _, pts := range insets {
		if len(pts) < 2 {
			continue
		}
		line, err := plotter.NewLine(xys(pts))
		if err != nil {
			return err
		}
		line.Color = insetColor
		line.Width = vg.Points(1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		lg.add("inset", line)
	}

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func xys(pts []geometry.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return out
}
