package actor

import "github.com/go-gl/mathgl/mgl64"

// BoxRecords returns the 12 triangles of a box centered on the origin, as mesh records.
// The box is defined by its half-extents (half-width, half-height, half-depth)
func BoxRecords(halfExtents mgl64.Vec3) []Record {
	hx := halfExtents.X()
	hy := halfExtents.Y()
	hz := halfExtents.Z()

	// The 6 faces with their vertices (CCW seen from outside)
	faces := []struct {
		normal   mgl64.Vec3
		vertices [4]mgl64.Vec3
	}{
		// +X face
		{
			normal:   mgl64.Vec3{1, 0, 0},
			vertices: [4]mgl64.Vec3{{hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}, {hx, -hy, hz}},
		},
		// -X face
		{
			normal:   mgl64.Vec3{-1, 0, 0},
			vertices: [4]mgl64.Vec3{{-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}, {-hx, -hy, -hz}},
		},
		// +Y face
		{
			normal:   mgl64.Vec3{0, 1, 0},
			vertices: [4]mgl64.Vec3{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}},
		},
		// -Y face
		{
			normal:   mgl64.Vec3{0, -1, 0},
			vertices: [4]mgl64.Vec3{{-hx, -hy, hz}, {-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}},
		},
		// +Z face
		{
			normal:   mgl64.Vec3{0, 0, 1},
			vertices: [4]mgl64.Vec3{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}},
		},
		// -Z face
		{
			normal:   mgl64.Vec3{0, 0, -1},
			vertices: [4]mgl64.Vec3{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}},
		},
	}

	records := make([]Record, 0, len(faces)*6)
	for _, face := range faces {
		for _, i := range [6]int{0, 1, 2, 0, 2, 3} {
			records = append(records, Record{Vertex: face.vertices[i], Normal: face.normal})
		}
	}

	return records
}

// NewBoxMesh builds the deduplicated mesh of a box: 8 vertices, 3 normal directions
func NewBoxMesh(halfExtents mgl64.Vec3) Mesh {
	return NewMesh(BoxRecords(halfExtents))
}
