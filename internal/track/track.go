// Package track samples a declarative track, a list of line and arc primitives, into the
// dense point sequence the segmenter consumes.
package track

import (
	"errors"
	"fmt"
	"math"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// DefaultPointsPerPrimitive is the number of samples taken along each primitive,
// endpoints included.
const DefaultPointsPerPrimitive = 50

// ErrInvalidPrimitive is returned for a primitive that cannot be sampled.
var ErrInvalidPrimitive = errors.New("invalid track primitive")

// Coord is an [x, y] pair as it appears in track files.
type Coord [2]float64

// Point converts c to a geometry.Point.
func (c Coord) Point() geometry.Point { return geometry.Pt(c[0], c[1]) }

// Primitive is one line or arc of a track. Arcs run counter-clockwise around
// CenterPoint from StartPoint to EndPoint.
type Primitive struct {
	IsCurve     bool    `json:"is_curve"`
	StartPoint  Coord   `json:"start_point"`
	EndPoint    Coord   `json:"end_point"`
	Radius      float64 `json:"radius,omitempty"`
	CenterPoint Coord   `json:"center_point,omitzero"`
}

// Sample returns the concatenated samples of every primitive in order. Adjacent
// primitives that share an endpoint produce a duplicated point at the junction.
func Sample(primitives []Primitive, pointsPerPrimitive int) ([]geometry.Point, error) {
	if pointsPerPrimitive < 2 {
		return nil, fmt.Errorf("need at least 2 points per primitive, got %d", pointsPerPrimitive)
	}
	out := make([]geometry.Point, 0, len(primitives)*pointsPerPrimitive)
	for i, p := range primitives {
		var (
			pts []geometry.Point
			err error
		)
		if p.IsCurve {
			pts, err = sampleArc(p, pointsPerPrimitive)
		} else {
			pts = sampleLine(p, pointsPerPrimitive)
		}
		if err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		out = append(out, pts...)
	}
	return out, nil
}

func sampleLine(p Primitive, n int) []geometry.Point {
	xs := linspace(p.StartPoint[0], p.EndPoint[0], n)
	ys := linspace(p.StartPoint[1], p.EndPoint[1], n)
	pts := make([]geometry.Point, n)
	for i := range pts {
		pts[i] = geometry.Pt(xs[i], ys[i])
	}
	return pts
}

func sampleArc(p Primitive, n int) ([]geometry.Point, error) {
	if !(p.Radius > 0) || math.IsInf(p.Radius, 1) {
		return nil, fmt.Errorf("arc radius %v: %w", p.Radius, ErrInvalidPrimitive)
	}
	cx, cy := p.CenterPoint[0], p.CenterPoint[1]
	start := math.Atan2(p.StartPoint[1]-cy, p.StartPoint[0]-cx)
	end := math.Atan2(p.EndPoint[1]-cy, p.EndPoint[0]-cx)
	if end < start {
		end += 2 * math.Pi
	}
	angles := linspace(start, end, n)
	pts := make([]geometry.Point, n)
	for i, th := range angles {
		s, c := math.Sincos(th)
		pts[i] = geometry.Pt(cx+p.Radius*c, cy+p.Radius*s)
	}
	return pts, nil
}

// linspace returns n evenly spaced values from start to stop inclusive; the last value
// is exactly stop.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
