package polysat

import (
	"math"
	"sync"

	"github.com/akmonengine/polysat/actor"
	"github.com/akmonengine/polysat/hull"
	"github.com/akmonengine/polysat/sat2d"
	"github.com/go-gl/mathgl/mgl64"
)

// Collision is the result of a narrow-phase query between two bodies.
// MTV, MTVLength and Normal are only set when Collide is true.
type Collision struct {
	Collide bool
	// MTV is the unit direction the first body must move to separate from the second
	MTV mgl64.Vec3
	// MTVLength is the penetration depth along MTV
	MTVLength float64
	// Normal is the face normal whose projection plane produced the MTV
	Normal mgl64.Vec3
}

// axisResult pairs a 2D overlap result with the candidate normal that produced it
type axisResult struct {
	overlap sat2d.Result
	normal  mgl64.Vec3
}

// Query runs the separating axis search between two convex bodies.
//
// Both bodies' face normals are scanned independently. For each normal, both
// bodies are projected on the plane orthogonal to it and their 2D hulls are
// tested with sat2d. A single separating normal means no collision. Otherwise
// the normal with the smallest overlap wins and its 2D MTV is lifted back to
// world space with the projection basis of that normal.
func Query(one, two *actor.Body) Collision {
	resultOne, separated := scanAxes(one, two, one.GlobalNormals())
	if separated {
		return Collision{}
	}

	resultTwo, separated := scanAxes(one, two, two.GlobalNormals())
	if separated {
		return Collision{}
	}

	best := resultOne
	if best == nil || (resultTwo != nil && math.Abs(resultTwo.overlap.MTVLength()) < math.Abs(best.overlap.MTVLength())) {
		best = resultTwo
	}
	if best == nil {
		// Neither body has a normal to test against
		return Collision{}
	}

	return Collision{
		Collide:   true,
		MTV:       liftMTV(best.overlap.Axis, best.normal),
		MTVLength: best.overlap.MTVLength(),
		Normal:    best.normal,
	}
}

// scanAxes tests every normal of the set and returns the smallest overlap, nil for an empty set.
// It stops on the first separating normal and reports separated.
func scanAxes(one, two *actor.Body, normals []mgl64.Vec3) (best *axisResult, separated bool) {
	for _, normal := range normals {
		overlap := sat2d.Test(one.ConvexHull(normal), two.ConvexHull(normal))
		if !overlap.Overlaps {
			return nil, true
		}

		if best == nil || sat2d.Compare(overlap, best.overlap) < 0 {
			best = &axisResult{overlap: overlap, normal: normal}
		}
	}

	return best, false
}

// liftMTV maps a 2D direction of the plane orthogonal to normal back to world space.
//
// The plane frame is (axisX, axisY, normal) with axisX and axisY built exactly
// as hull.Project builds them, so the matrix with these columns inverts the
// projection. The result is unit length.
func liftMTV(direction mgl64.Vec2, normal mgl64.Vec3) mgl64.Vec3 {
	planeZ := normal.Normalize()
	planeX, planeY := hull.Basis(planeZ)

	frame := mgl64.Mat3FromCols(planeX, planeY, planeZ)
	mtv := frame.Mul3x1(direction.Vec3(0))
	if mtv.LenSqr() == 0 {
		return mtv
	}

	return mtv.Normalize()
}

// Contact is a colliding pair found by the narrow phase
type Contact struct {
	BodyA     *actor.Body
	BodyB     *actor.Body
	Collision Collision
}

// BroadPhase finds the pairs of bodies whose bounding boxes overlap, using the spatial grid
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body, bounds []actor.AABB, workersCount int) <-chan Pair {
	spatialGrid.Clear()
	for i := range bodies {
		spatialGrid.Insert(i, bounds[i])
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairsParallel(bodies, bounds, workersCount)
}

// NarrowPhase runs Query on every candidate pair across workersCount goroutines.
// Contacts are returned in no particular order.
func NarrowPhase(pairs <-chan Pair, workersCount int) []Contact {
	contactsChan := make(chan Contact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(contactsChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairs {
					if collision := Query(p.BodyA, p.BodyB); collision.Collide {
						contactsChan <- Contact{
							BodyA:     p.BodyA,
							BodyB:     p.BodyB,
							Collision: collision,
						}
					}
				}
			}()
		}
		wg.Wait()
	}()

	contacts := make([]Contact, 0)
	for c := range contactsChan {
		contacts = append(contacts, c)
	}

	return contacts
}
