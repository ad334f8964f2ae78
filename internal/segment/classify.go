package segment

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// Classify turns one run into a Segment. A run with no curved edge is a straight of its
// chord length. Otherwise it is a curve whose radius is fitted through the first, middle
// (by index) and last points and whose arc length is the chord sum.
func Classify(run Run, opts Options) (Segment, error) {
	pts := run.Points
	if len(pts) < 2 {
		return Segment{}, fmt.Errorf("classify needs at least 2 points, got %d: %w", len(pts), ErrInsufficientData)
	}
	if err := opts.Validate(); err != nil {
		return Segment{}, err
	}

	length := geometry.PathLength(pts)
	if length <= 0 {
		return Segment{}, fmt.Errorf("run of %d coincident points: %w", len(pts), ErrInvalidSegment)
	}

	curv, degenerate := opts.curvatures(pts)
	curved := false
	for i, k := range curv {
		if !degenerate[i] && k > opts.Epsilon {
			curved = true
			break
		}
	}
	if !curved {
		return Straight(length), nil
	}

	if len(pts) < 3 {
		return Segment{}, fmt.Errorf("curved run of %d points has no midpoint: %w", len(pts), ErrUnclassifiableRun)
	}
	radius, err := geometry.Circumradius(pts[0], pts[len(pts)/2], pts[len(pts)-1])
	if err != nil {
		return Segment{}, fmt.Errorf("fitting curve radius: %w", err)
	}
	radius = roundTo(radius, opts.RadiusPrecision)
	if radius <= 0 {
		return Segment{}, fmt.Errorf("fitted radius rounds to %v: %w", radius, ErrInvalidSegment)
	}
	return Curve(radius, length), nil
}

// ClassifyAll classifies runs independently on up to opts.Workers goroutines. The
// result keeps the order of runs; on failure the error of the earliest failing run is
// returned.
func ClassifyAll(runs []Run, opts Options) ([]Segment, error) {
	segs := make([]Segment, len(runs))
	errs := make([]error, len(runs))

	var g errgroup.Group
	g.SetLimit(max(1, opts.Workers))
	for i, run := range runs {
		i, run := i, run
		g.Go(func() error {
			seg, err := Classify(run, opts)
			if err != nil {
				errs[i] = fmt.Errorf("run %d: %w", i, err)
				return errs[i]
			}
			segs[i] = seg
			return nil
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return segs, nil
}

func roundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
