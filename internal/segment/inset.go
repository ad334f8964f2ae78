package segment

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/cxd309/speed-profile/internal/geometry"
)

// Inset returns a copy of pts with every interior point moved offset units along the
// left normal of the local tangent. The tangent is the normalised average of the
// incoming and outgoing edge directions; where it vanishes the point is kept. A
// negative offset moves points to the right. Endpoints never move.
func Inset(pts []geometry.Point, offset float64) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	copy(out, pts)
	if offset == 0 {
		return out
	}

	for i := 1; i < len(pts)-1; i++ {
		in := unit(r2.Sub(pts[i].Vec(), pts[i-1].Vec()))
		next := unit(r2.Sub(pts[i+1].Vec(), pts[i].Vec()))
		tangent := r2.Scale(0.5, r2.Add(in, next))
		norm := r2.Norm(tangent)
		if norm < 1e-12 {
			continue
		}
		tangent = r2.Scale(1/norm, tangent)
		normal := r2.Vec{X: -tangent.Y, Y: tangent.X}
		out[i] = geometry.FromVec(r2.Add(pts[i].Vec(), r2.Scale(offset, normal)))
	}
	return out
}

// InsetRuns applies Inset to every run.
func InsetRuns(runs []Run, offset float64) [][]geometry.Point {
	out := make([][]geometry.Point, len(runs))
	for i, run := range runs {
		out[i] = Inset(run.Points, offset)
	}
	return out
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}
