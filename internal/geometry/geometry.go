// Package geometry provides the planar primitives used to segment a sampled path:
// points, chord distances, three-point circle fits and discrete curvature estimates.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrDegenerateGeometry is returned when a circle cannot be fitted through three points
// because they are (nearly) collinear or coincident.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// collinearTolerance bounds the triangle area, relative to a*b*c/max(a,b,c), below which
// three points are treated as collinear. Heron's formula loses roughly half of the
// available precision on thin triangles, so the bound sits well above 1e-8.
const collinearTolerance = 1e-6

// Point is a 2D sample of the path. Units follow the source data.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Vec returns p as a gonum vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// FromVec converts a gonum vector back to a Point.
func FromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Distance returns the straight-line distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// Circumradius returns the radius of the circle through first, mid and last using
// Heron's formula. It fails with ErrDegenerateGeometry instead of returning Inf or NaN.
func Circumradius(first, mid, last Point) (float64, error) {
	a := Distance(first, mid)
	b := Distance(mid, last)
	c := Distance(first, last)

	prod := a * b * c
	if prod == 0 {
		return 0, fmt.Errorf("circumradius through %v %v %v: coincident points: %w", first, mid, last, ErrDegenerateGeometry)
	}

	s := (a + b + c) / 2
	area := math.Sqrt(math.Max(0, s*(s-a)*(s-b)*(s-c)))
	longest := math.Max(a, math.Max(b, c))
	if area <= collinearTolerance*prod/longest {
		return 0, fmt.Errorf("circumradius through %v %v %v: collinear points: %w", first, mid, last, ErrDegenerateGeometry)
	}
	return prod / (4 * area), nil
}

// EdgeCurvature returns the slope-based curvature proxy |dy/dx| / ds of the edge p1->p2.
// It is 0 for vertical or zero-length edges. The value depends on the axis alignment of
// the edge; Turn is the rotation-invariant alternative.
func EdgeCurvature(p1, p2 Point) float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	ds := math.Hypot(dx, dy)
	if dx == 0 || ds == 0 {
		return 0
	}
	return math.Abs(dy/dx) / ds
}

// Turn returns the absolute deflection angle in radians, in [0, π], between the edges
// a->b and b->c. It is 0 when either edge has zero length.
func Turn(a, b, c Point) float64 {
	in := r2.Sub(b.Vec(), a.Vec())
	out := r2.Sub(c.Vec(), b.Vec())
	if r2.Norm(in) == 0 || r2.Norm(out) == 0 {
		return 0
	}
	return math.Abs(math.Atan2(r2.Cross(in, out), r2.Dot(in, out)))
}

// Chords returns the length of every consecutive edge along pts.
func Chords(pts []Point) []float64 {
	if len(pts) < 2 {
		return nil
	}
	out := make([]float64, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		out[i-1] = Distance(pts[i-1], pts[i])
	}
	return out
}

// PathLength returns the chord-length approximation of the distance along pts.
func PathLength(pts []Point) float64 {
	return floats.Sum(Chords(pts))
}
