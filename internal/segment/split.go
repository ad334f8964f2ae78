package segment

import (
	"fmt"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// Run is the ordered, contiguous subsequence of path samples underlying one Segment.
// Consecutive runs share their boundary point.
type Run struct {
	Points []geometry.Point `json:"points"`
	Curved bool             `json:"curved"` // regime seen by Split
}

// Split cuts points into runs at every change between straight and curved edges.
// The sign of the curvature is ignored, so an S-bend stays one curved run.
//
// Dropping the first point of every run after the first and concatenating the rest
// reproduces points exactly.
func Split(points []geometry.Point, opts Options) ([]Run, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("split needs at least 2 points, got %d: %w", len(points), ErrInsufficientData)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	curv, degenerate := opts.curvatures(points)

	var (
		runs       []Run
		current    = []geometry.Point{points[0]}
		curved     bool
		haveRegime bool
	)
	for i := range curv {
		if !degenerate[i] {
			edgeCurved := curv[i] > opts.Epsilon
			switch {
			case !haveRegime:
				curved, haveRegime = edgeCurved, true
			case edgeCurved != curved:
				runs = append(runs, Run{Points: current, Curved: curved})
				current = []geometry.Point{points[i]}
				curved = edgeCurved
			}
		}
		current = append(current, points[i+1])
	}
	return append(runs, Run{Points: current, Curved: curved}), nil
}
