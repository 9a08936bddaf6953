// Package sat2d tests two convex polygons for overlap with the Separating Axis Theorem
// and computes the minimum translation vector (MTV) that pulls them apart.
//
// Candidate axes are the unit edge normals of both polygons. The first axis on
// which the projected intervals are disjoint ends the test; otherwise the axis
// with the smallest interval overlap becomes the MTV axis.
package sat2d

import (
	"cmp"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DegenerateEdgeLength is the length under which an edge yields no axis.
const DegenerateEdgeLength = 1e-12

// fallbackAxes are tested when neither polygon has a usable edge (single points).
var fallbackAxes = []mgl64.Vec2{{1, 0}, {0, 1}}

// Result is the outcome of a polygon overlap test.
// Axis and Depth are only meaningful when Overlaps is true.
type Result struct {
	Overlaps bool
	// Axis is the unit direction polygon A must move to leave B
	Axis mgl64.Vec2
	// Depth is the overlap of the projected intervals along Axis
	Depth float64
}

// MTV returns the translation to apply to polygon A: Axis scaled by Depth
func (r Result) MTV() mgl64.Vec2 {
	return r.Axis.Mul(r.Depth)
}

// MTVLength returns the overlap length
func (r Result) MTVLength() float64 {
	return r.Depth
}

// Compare orders two results by absolute MTV length, ascending
func Compare(a, b Result) int {
	return cmp.Compare(math.Abs(a.MTVLength()), math.Abs(b.MTVLength()))
}

// Test checks polygons a and b for overlap.
// Polygons are vertex rings in any winding; rings of one or two points are valid.
func Test(a, b []mgl64.Vec2) Result {
	if len(a) == 0 || len(b) == 0 {
		return Result{}
	}

	axes := edgeAxes(nil, a)
	axes = edgeAxes(axes, b)
	if len(axes) == 0 {
		axes = fallbackAxes
	}

	best := Result{Depth: math.Inf(1)}
	for _, axis := range axes {
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)

		// Separating axis found
		if maxA < minB || maxB < minA {
			return Result{}
		}

		// Moving A backward by (maxA - minB) or forward by (maxB - minA) ends the overlap
		candidate := Result{Overlaps: true, Axis: axis, Depth: maxB - minA}
		if backward := maxA - minB; backward < candidate.Depth {
			candidate = Result{Overlaps: true, Axis: axis.Mul(-1), Depth: backward}
		}

		if Compare(candidate, best) < 0 {
			best = candidate
		}
	}

	return best
}

// edgeAxes appends the unit normal of every non-degenerate edge of polygon
func edgeAxes(axes []mgl64.Vec2, polygon []mgl64.Vec2) []mgl64.Vec2 {
	for i := range polygon {
		edge := polygon[(i+1)%len(polygon)].Sub(polygon[i])
		length := edge.Len()
		if length < DegenerateEdgeLength {
			continue
		}

		axes = append(axes, mgl64.Vec2{-edge.Y() / length, edge.X() / length})
	}

	return axes
}

// project returns the interval covered by polygon along axis
func project(polygon []mgl64.Vec2, axis mgl64.Vec2) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, p := range polygon {
		d := p.Dot(axis)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}

	return min, max
}
