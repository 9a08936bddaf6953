package actor

import (
	"github.com/akmonengine/polysat/hull"
	"github.com/go-gl/mathgl/mgl64"
)

// Body is a convex polyhedron: deduplicated local geometry plus a world pose.
//
// World-space geometry is never stored. GlobalVertices and GlobalNormals build
// fresh slices from the local geometry and the transforms of the current pose,
// so concurrent readers are safe as long as no one calls SetPose meanwhile.
type Body struct {
	Name string

	vertices []mgl64.Vec3
	normals  []mgl64.Vec3

	pose           Pose
	positionMatrix mgl64.Mat4
	rotationMatrix mgl64.Mat4
}

// NewBody creates a body at the identity pose from a mesh.
// The mesh slices are copied.
func NewBody(mesh Mesh) *Body {
	b := &Body{
		vertices: append([]mgl64.Vec3(nil), mesh.Vertices...),
		normals:  append([]mgl64.Vec3(nil), mesh.Normals...),
	}
	b.applyPose(NewPose())

	return b
}

// SetPose moves the body. Angles are in degrees.
func (b *Body) SetPose(position mgl64.Vec3, angleX, angleY, angleZ float64) {
	b.applyPose(Pose{Position: position, AngleX: angleX, AngleY: angleY, AngleZ: angleZ})
}

func (b *Body) applyPose(pose Pose) {
	b.pose = pose
	b.positionMatrix = pose.PositionMatrix()
	b.rotationMatrix = pose.RotationMatrix()
}

// Pose returns the current pose
func (b *Body) Pose() Pose {
	return b.pose
}

// LocalVertices returns a copy of the local-space vertices
func (b *Body) LocalVertices() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), b.vertices...)
}

// LocalNormals returns a copy of the local-space face normals
func (b *Body) LocalNormals() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), b.normals...)
}

// GlobalVertices returns the vertices transformed by the position matrix
func (b *Body) GlobalVertices() []mgl64.Vec3 {
	global := make([]mgl64.Vec3, len(b.vertices))
	for i, v := range b.vertices {
		global[i] = b.positionMatrix.Mul4x1(v.Vec4(1)).Vec3()
	}

	return global
}

// GlobalNormals returns the normals rotated by the rotation matrix and re-normalized
func (b *Body) GlobalNormals() []mgl64.Vec3 {
	global := make([]mgl64.Vec3, len(b.normals))
	for i, n := range b.normals {
		// rotation can drift the length slightly
		global[i] = mgl64.TransformNormal(n, b.rotationMatrix).Normalize()
	}

	return global
}

// ConvexHull returns the 2D hull of the global vertices projected on the plane orthogonal to axis
func (b *Body) ConvexHull(axis mgl64.Vec3) []mgl64.Vec2 {
	return hull.ConvexHull(b.GlobalVertices(), axis)
}

// AABB returns the world-space bounding box of the body
func (b *Body) AABB() AABB {
	return ComputeAABB(b.GlobalVertices())
}
