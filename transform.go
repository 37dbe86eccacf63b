package sequoia

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// scaleEpsilon guards divisions when inverting a transform. Axes with a scale
// magnitude at or below this are left undivided rather than exploding.
const scaleEpsilon = 1e-4

// applyRotation rotates p by the Euler angles rot (in degrees), applying the
// X axis first, then Y, then Z. This is the canonical rotation order for the
// whole engine; the draw matrix composes its rotations the same way.
func applyRotation(p, rot mgl32.Vec3) mgl32.Vec3 {
	sinX, cosX := sincos(mgl32.DegToRad(rot.X()))
	sinY, cosY := sincos(mgl32.DegToRad(rot.Y()))
	sinZ, cosZ := sincos(mgl32.DegToRad(rot.Z()))

	x, y, z := p.X(), p.Y(), p.Z()

	// X axis
	y, z = y*cosX-z*sinX, y*sinX+z*cosX
	// Y axis
	x, z = x*cosY+z*sinY, -x*sinY+z*cosY
	// Z axis
	x, y = x*cosZ-y*sinZ, x*sinZ+y*cosZ

	return mgl32.Vec3{x, y, z}
}

// applyInverseRotation undoes applyRotation: the negated angles are applied
// in the reverse axis order (Z, then Y, then X).
func applyInverseRotation(p, rot mgl32.Vec3) mgl32.Vec3 {
	sinX, cosX := sincos(mgl32.DegToRad(-rot.X()))
	sinY, cosY := sincos(mgl32.DegToRad(-rot.Y()))
	sinZ, cosZ := sincos(mgl32.DegToRad(-rot.Z()))

	x, y, z := p.X(), p.Y(), p.Z()

	// Z axis
	x, y = x*cosZ-y*sinZ, x*sinZ+y*cosZ
	// Y axis
	x, z = x*cosY+z*sinY, -x*sinY+z*cosY
	// X axis
	y, z = y*cosX-z*sinX, y*sinX+z*cosX

	return mgl32.Vec3{x, y, z}
}

// sincos computes sin and cos of a float32 angle in radians.
func sincos(rad float32) (sin, cos float32) {
	s, c := math.Sincos(float64(rad))
	return float32(s), float32(c)
}

// localMatrix returns the node's local transform as a 4x4 matrix:
//
//	Translate * RotZ * RotY * RotX * Scale
//
// Applied to a column vector this scales first, rotates X then Y then Z, and
// translates last, which agrees with PointToWorld's arithmetic.
func localMatrix(n *Node) mgl32.Mat4 {
	m := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	if n.Rotation != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(n.Rotation.Z())))
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(n.Rotation.Y())))
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(n.Rotation.X())))
	}
	if n.Scale != (mgl32.Vec3{1, 1, 1}) {
		m = m.Mul4(mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z()))
	}
	return m
}

// --- Coordinate conversion ---

// PointToWorld transforms a point from this node's local space to world space.
// The point is scaled, rotated, and translated by the node's transform, then
// handed to the parent until the root is reached.
func (n *Node) PointToWorld(local mgl32.Vec3) mgl32.Vec3 {
	p := mgl32.Vec3{
		local.X() * n.Scale.X(),
		local.Y() * n.Scale.Y(),
		local.Z() * n.Scale.Z(),
	}
	p = applyRotation(p, n.Rotation)
	p = p.Add(n.Position)
	if n.Parent != nil {
		return n.Parent.PointToWorld(p)
	}
	return p
}

// PointToLocal transforms a point from world space to this node's local space.
// Ancestors are undone first (outermost transform first), then this node's
// translation, rotation, and scale are inverted in that order. Axes with a
// near-zero scale are left undivided.
func (n *Node) PointToLocal(world mgl32.Vec3) mgl32.Vec3 {
	p := world
	if n.Parent != nil {
		p = n.Parent.PointToLocal(p)
	}
	p = p.Sub(n.Position)
	p = applyInverseRotation(p, n.Rotation)

	x, y, z := p.X(), p.Y(), p.Z()
	if abs(n.Scale.X()) > scaleEpsilon {
		x /= n.Scale.X()
	}
	if abs(n.Scale.Y()) > scaleEpsilon {
		y /= n.Scale.Y()
	}
	if abs(n.Scale.Z()) > scaleEpsilon {
		z /= n.Scale.Z()
	}
	return mgl32.Vec3{x, y, z}
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.PointToWorld(mgl32.Vec3{})
}

// WorldRotation returns the sum of this node's Euler angles and those of all
// ancestors. This is an approximation: summing Euler angles is only exact when
// the rotations share an axis, which holds for the flat hierarchies and
// single-axis spins this engine is built around.
func (n *Node) WorldRotation() mgl32.Vec3 {
	if n.Parent == nil {
		return n.Rotation
	}
	return n.Rotation.Add(n.Parent.WorldRotation())
}

// RotateAround orbits the node's position about an arbitrary axis through
// pivot, by angle degrees, and adds the swept angle to the node's Euler
// rotation so its facing tracks the orbit. The axis need not be normalized;
// a near-zero axis is a no-op.
func (n *Node) RotateAround(pivot, axis mgl32.Vec3, angle float32) {
	lenSq := axis.Dot(axis)
	if lenSq < scaleEpsilon*scaleEpsilon {
		return
	}
	a := axis.Mul(1 / float32(math.Sqrt(float64(lenSq))))

	sin, cos := sincos(mgl32.DegToRad(angle))
	t := 1 - cos

	r := n.Position.Sub(pivot)
	dot := a.Dot(r)

	// Rodrigues rotation of the pivot-relative offset.
	n.Position = mgl32.Vec3{
		t*dot*a.X() + cos*r.X() + sin*(a.Y()*r.Z()-a.Z()*r.Y()),
		t*dot*a.Y() + cos*r.Y() + sin*(a.Z()*r.X()-a.X()*r.Z()),
		t*dot*a.Z() + cos*r.Z() + sin*(a.X()*r.Y()-a.Y()*r.X()),
	}.Add(pivot)

	n.Rotation = n.Rotation.Add(a.Mul(angle))
}

// abs is a float32 absolute value.
func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// --- Transform property setters ---

// SetPosition sets the node's local position.
func (n *Node) SetPosition(x, y, z float32) {
	n.Position = mgl32.Vec3{x, y, z}
}

// SetRotation sets the node's local Euler rotation in degrees.
func (n *Node) SetRotation(x, y, z float32) {
	n.Rotation = mgl32.Vec3{x, y, z}
}

// SetScale sets the node's local scale factors.
func (n *Node) SetScale(x, y, z float32) {
	n.Scale = mgl32.Vec3{x, y, z}
}

// Translate adds the given offsets to the node's local position.
func (n *Node) Translate(dx, dy, dz float32) {
	n.Position = n.Position.Add(mgl32.Vec3{dx, dy, dz})
}
