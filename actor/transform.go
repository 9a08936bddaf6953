package actor

import "github.com/go-gl/mathgl/mgl64"

// Pose represents a body placement in world space.
// Angles are Euler angles in degrees, applied X then Y then Z.
type Pose struct {
	Position mgl64.Vec3
	AngleX   float64
	AngleY   float64
	AngleZ   float64
}

// NewPose creates an identity pose
func NewPose() Pose {
	return Pose{Position: mgl64.Vec3{0, 0, 0}}
}

// RotationMatrix composes identity, rotate X, rotate Y, rotate Z.
func (p Pose) RotationMatrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(p.AngleX)).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(p.AngleY))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(p.AngleZ)))
}

// PositionMatrix composes identity, translate, rotate X, rotate Y, rotate Z.
func (p Pose) PositionMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).Mul4(p.RotationMatrix())
}
