package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cxd309/speed-profile/internal/chart"
	"github.com/cxd309/speed-profile/internal/geometry"
	"github.com/cxd309/speed-profile/internal/segment"
	"github.com/cxd309/speed-profile/internal/trackio"
)

// ArtifactOptions selects the files WriteArtifacts produces.
type ArtifactOptions struct {
	Dir    string
	Format string // trace format: csv, json or parquet
	Plots  bool   // profile.png and, for point input, path.png
	HTML   bool   // profile.html
}

// Artifacts lists the files written by WriteArtifacts. Empty paths were not written.
type Artifacts struct {
	SegmentsPath string
	PointsPath   string
	TracePath    string
	ProfilePNG   string
	PathPNG      string
	ProfileHTML  string
}

// WriteArtifacts writes out into opts.Dir, creating it if needed.
func WriteArtifacts(out *Output, opts ArtifactOptions) (Artifacts, error) {
	var a Artifacts
	if opts.Format == "" {
		opts.Format = trackio.FormatCSV
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return a, fmt.Errorf("creating output dir: %w", err)
	}

	a.SegmentsPath = filepath.Join(opts.Dir, "segments.json")
	if err := writeFile(a.SegmentsPath, func(f *os.File) error {
		return trackio.WriteSegmentsJSON(f, out.Segments)
	}); err != nil {
		return a, err
	}

	if len(out.Runs) > 0 {
		a.PointsPath = filepath.Join(opts.Dir, "points.tsv")
		if err := writeFile(a.PointsPath, func(f *os.File) error {
			return trackio.WritePointsTSV(f, joinRuns(out.Runs))
		}); err != nil {
			return a, err
		}
	}

	a.TracePath = filepath.Join(opts.Dir, "trace."+opts.Format)
	if err := trackio.WriteTrace(a.TracePath, opts.Format, out.Profile.Samples); err != nil {
		return a, fmt.Errorf("writing trace: %w", err)
	}

	if opts.Plots {
		a.ProfilePNG = filepath.Join(opts.Dir, "profile.png")
		if err := chart.WriteProfilePNG(a.ProfilePNG, out.Profile); err != nil {
			return a, err
		}
		if len(out.Runs) > 0 {
			a.PathPNG = filepath.Join(opts.Dir, "path.png")
			if err := chart.WritePathPNG(a.PathPNG, out.Runs, out.Insets); err != nil {
				return a, err
			}
		}
	}

	if opts.HTML {
		a.ProfileHTML = filepath.Join(opts.Dir, "profile.html")
		if err := writeFile(a.ProfileHTML, func(f *os.File) error {
			return chart.WriteProfileHTML(f, out.Profile)
		}); err != nil {
			return a, err
		}
	}
	return a, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// joinRuns undoes the one-point overlap between consecutive runs.
func joinRuns(runs []segment.Run) []geometry.Point {
	var pts []geometry.Point
	for i, r := range runs {
		if i > 0 && len(r.Points) > 0 {
			pts = append(pts, r.Points[1:]...)
			continue
		}
		pts = append(pts, r.Points...)
	}
	return pts
}
