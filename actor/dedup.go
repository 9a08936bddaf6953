package actor

import "github.com/go-gl/mathgl/mgl64"

// Deduplication policy applied while a mesh is built.
//
// Vertices are kept once per exact value. Normals are kept once per direction:
// a candidate is dropped when it equals a kept normal or when its cross product
// with a kept normal is exactly the zero vector, so opposite face normals
// collapse into a single separating axis. Both scans are O(n²) and only run at
// load time.

// AppendDistinctVertex appends vertex unless an equal vertex is already present.
func AppendDistinctVertex(vertices []mgl64.Vec3, vertex mgl64.Vec3) []mgl64.Vec3 {
	for _, v := range vertices {
		if v == vertex {
			return vertices
		}
	}

	return append(vertices, vertex)
}

// AppendDistinctNormal normalizes normal and appends it unless a kept normal
// shares its direction. Zero-length normals carry no direction and are dropped.
func AppendDistinctNormal(normals []mgl64.Vec3, normal mgl64.Vec3) []mgl64.Vec3 {
	if normal.LenSqr() == 0 {
		return normals
	}
	normal = normal.Normalize()

	for _, n := range normals {
		if n == normal || n.Cross(normal) == (mgl64.Vec3{}) {
			return normals
		}
	}

	return append(normals, normal)
}
