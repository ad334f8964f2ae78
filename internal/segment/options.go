package segment

import (
	"fmt"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// Metric selects how edge curvature is estimated from the samples.
type Metric string

const (
	// MetricDeflection uses the turn angle between consecutive edges. It does not depend
	// on how the path is oriented.
	MetricDeflection Metric = "deflection"
	// MetricSlope uses |dy/dx| / ds per edge. A straight that is neither horizontal nor
	// vertical reads as curved under this metric.
	MetricSlope Metric = "slope"
)

// Options tunes segmentation and classification.
type Options struct {
	Metric Metric
	// Epsilon is the curvature magnitude at or below which an edge counts as straight.
	Epsilon float64
	// RadiusPrecision is the number of decimal places kept on fitted radii; negative
	// disables rounding.
	RadiusPrecision int
	// Workers bounds the goroutines used by ClassifyAll.
	Workers int
}

// DefaultOptions returns the deflection metric with a 1e-9 threshold and radii rounded
// to two decimals.
func DefaultOptions() Options {
	return Options{
		Metric:          MetricDeflection,
		Epsilon:         1e-9,
		RadiusPrecision: 2,
		Workers:         1,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	switch o.Metric {
	case "", MetricDeflection, MetricSlope:
	default:
		return fmt.Errorf("unknown curvature metric %q", o.Metric)
	}
	if o.Epsilon < 0 {
		return fmt.Errorf("curvature epsilon must be non-negative, got %v", o.Epsilon)
	}
	return nil
}

// curvatures returns one value per edge of pts and marks zero-length edges, which carry
// no direction and never decide a regime.
func (o Options) curvatures(pts []geometry.Point) ([]float64, []bool) {
	n := len(pts)
	if n < 2 {
		return nil, nil
	}
	curv := make([]float64, n-1)
	degenerate := make([]bool, n-1)
	for i := 0; i < n-1; i++ {
		degenerate[i] = pts[i] == pts[i+1]
	}

	if o.Metric == MetricSlope {
		for i := 0; i < n-1; i++ {
			curv[i] = geometry.EdgeCurvature(pts[i], pts[i+1])
		}
		return curv, degenerate
	}

	turns, ok := vertexTurns(pts)
	for i := 0; i < n-1; i++ {
		if degenerate[i] {
			continue
		}
		// The smaller turn at either end keeps the edges that meet a tangent junction
		// on their own side of it.
		switch {
		case ok[i] && ok[i+1]:
			curv[i] = min(turns[i], turns[i+1])
		case ok[i]:
			curv[i] = turns[i]
		case ok[i+1]:
			curv[i] = turns[i+1]
		}
	}
	return curv, degenerate
}

// vertexTurns returns the turn angle at every vertex, measured against the nearest
// neighbours that differ from it. ok[j] is false at the ends of pts.
func vertexTurns(pts []geometry.Point) ([]float64, []bool) {
	n := len(pts)
	prev := make([]int, n)
	next := make([]int, n)
	prev[0] = -1
	for j := 1; j < n; j++ {
		if pts[j-1] != pts[j] {
			prev[j] = j - 1
		} else {
			prev[j] = prev[j-1]
		}
	}
	next[n-1] = n
	for j := n - 2; j >= 0; j-- {
		if pts[j+1] != pts[j] {
			next[j] = j + 1
		} else {
			next[j] = next[j+1]
		}
	}

	turns := make([]float64, n)
	ok := make([]bool, n)
	for j := range pts {
		if prev[j] < 0 || next[j] >= n {
			continue
		}
		turns[j] = geometry.Turn(pts[prev[j]], pts[j], pts[next[j]])
		ok[j] = true
	}
	return turns, ok
}
