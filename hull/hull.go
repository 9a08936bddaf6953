// Package hull flattens 3D point sets onto a plane and orders the result as a 2D convex ring.
//
// The plane is given by its normal n. Points are expressed in the basis
// (axisX, axisY) where axisX = Orthogonal(n) and axisY = axisX × n; the same
// basis is used to lift 2D results back into world space.
//
// The ring is built with a single-pass angular scan:
//  1. Seed on the point with the lowest x (first one on ties)
//  2. Sort the other points by the angle of (point - seed) against the x axis,
//     nearest first for equal angles. Angles are taken around the seed, not the
//     origin, so the order is a true sweep whatever the translation of the input
//  3. Walk the sorted points; before appending one, drop the last hull point once
//     if the turn from the last hull edge to the candidate is 180° or more
//
// The scan pops at most one point per candidate, so it is not a general 2D hull:
// arbitrary point sets can end up with reflex vertices and points left outside
// the ring. For the projection of a convex polyhedron's vertices, every point is
// a hull corner, a point on a hull edge, or a face seen edge-on merged by
// Tolerance, and the ring is convex. Collinear edge points may remain; they only
// add redundant separating axes.
//
// Projected points closer than Tolerance on both coordinates are merged. The
// corners of a face seen edge-on land a few ulps apart, and the tiny edges
// between them would give the angular sort arbitrary directions.
package hull

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Tolerance is the per-coordinate distance under which two projected points are the same point
const Tolerance = 1e-9

// Orthogonal returns a unit vector perpendicular to v.
// It crosses v with the world axis least aligned with it (x first, then y, on ties).
func Orthogonal(v mgl64.Vec3) mgl64.Vec3 {
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())

	var axis mgl64.Vec3
	switch {
	case ax <= ay && ax <= az:
		axis = mgl64.Vec3{1, 0, 0}
	case ay <= az:
		axis = mgl64.Vec3{0, 1, 0}
	default:
		axis = mgl64.Vec3{0, 0, 1}
	}

	o := v.Cross(axis)
	if o.LenSqr() == 0 {
		// only the zero vector gets here
		return mgl64.Vec3{1, 0, 0}
	}

	return o.Normalize()
}

// Basis returns the 2D projection axes of the plane orthogonal to normal.
// normal is expected to be unit length.
func Basis(normal mgl64.Vec3) (axisX, axisY mgl64.Vec3) {
	axisX = Orthogonal(normal)
	axisY = axisX.Cross(normal)

	return axisX, axisY
}

// Project normalizes axis, flattens every point onto the plane orthogonal to it
// and removes duplicate projections (within Tolerance), keeping first occurrences in order.
func Project(points []mgl64.Vec3, axis mgl64.Vec3) []mgl64.Vec2 {
	if axis.LenSqr() != 0 {
		axis = axis.Normalize()
	}
	axisX, axisY := Basis(axis)

	projection := make([]mgl64.Vec2, 0, len(points))
	for _, p := range points {
		projection = appendDistinct(projection, mgl64.Vec2{p.Dot(axisX), p.Dot(axisY)})
	}

	return projection
}

// ConvexHull projects points on the plane orthogonal to axis and returns their 2D hull
func ConvexHull(points []mgl64.Vec3, axis mgl64.Vec3) []mgl64.Vec2 {
	return Hull(Project(points, axis))
}

// Hull orders distinct 2D points as a convex ring, see the package documentation.
// Inputs with two points or fewer are returned unchanged.
func Hull(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) <= 2 {
		return append([]mgl64.Vec2(nil), points...)
	}

	seedIndex := firstPoint(points)
	seed := points[seedIndex]

	rest := make([]mgl64.Vec2, 0, len(points)-1)
	rest = append(rest, points[:seedIndex]...)
	rest = append(rest, points[seedIndex+1:]...)

	sort.SliceStable(rest, func(i, j int) bool {
		di, dj := rest[i].Sub(seed), rest[j].Sub(seed)
		ai, aj := angleToXAxis(di), angleToXAxis(dj)
		if ai != aj {
			return ai < aj
		}
		// a far point sorted before a nearer one on the same ray would be popped as a reversal
		return di.LenSqr() < dj.LenSqr()
	})

	ring := make([]mgl64.Vec2, 0, len(points))
	ring = append(ring, seed, rest[0])

	for _, current := range rest[1:] {
		last := ring[len(ring)-1]
		prevEdge := last.Sub(ring[len(ring)-2])
		nextEdge := current.Sub(last)

		if turnAngle(prevEdge, nextEdge) >= 180 {
			ring = ring[:len(ring)-1]
		}

		ring = append(ring, current)
	}

	return ring
}

// firstPoint returns the index of the point with the lowest x, the first one on ties
func firstPoint(points []mgl64.Vec2) int {
	index := 0
	for i, p := range points {
		if p.X() < points[index].X() {
			index = i
		}
	}

	return index
}

// angleToXAxis returns the signed angle of v against the x axis, in degrees in (-180, 180]
func angleToXAxis(v mgl64.Vec2) float64 {
	return mgl64.RadToDeg(math.Atan2(v.Y(), v.X()))
}

// turnAngle returns the counter-clockwise angle from a to b, in degrees in [0, 360).
// Left turns are below 180, right turns above, a reversal is exactly 180.
func turnAngle(a, b mgl64.Vec2) float64 {
	cross := a.X()*b.Y() - a.Y()*b.X()
	angle := mgl64.RadToDeg(math.Atan2(cross, a.Dot(b)))
	if angle < 0 {
		angle += 360
	}

	return angle
}

func appendDistinct(points []mgl64.Vec2, point mgl64.Vec2) []mgl64.Vec2 {
	for _, p := range points {
		if math.Abs(p.X()-point.X()) < Tolerance && math.Abs(p.Y()-point.Y()) < Tolerance {
			return points
		}
	}

	return append(points, point)
}
