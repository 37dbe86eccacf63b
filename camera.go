package sequoia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pitchLimit keeps the camera from flipping over the zenith or nadir.
const pitchLimit = 89

// flyAnim holds active fly-to tweens for camera X, Y, and Z.
type flyAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
	doneX  bool
	doneY  bool
	doneZ  bool
}

// Camera is a first-person viewpoint: a world position plus yaw and pitch in
// degrees. Yaw -90 looks down -Z; pitch 0 is level.
type Camera struct {
	// Position is the eye point in world space.
	Position mgl32.Vec3
	// Yaw is the heading angle in degrees, measured in the XZ plane.
	Yaw float32
	// Pitch is the elevation angle in degrees, clamped to ±89 by Look.
	Pitch float32

	// FOV is the vertical field of view in degrees.
	FOV float32
	// Near and Far are the clip plane distances.
	Near, Far float32

	// Sensitivity scales mouse movement to degrees per pixel.
	Sensitivity float32

	flyTween *flyAnim
}

// NewCamera creates a camera at (0, 1, 5) looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 1, 5},
		Yaw:         -90,
		Pitch:       0,
		FOV:         45,
		Near:        0.1,
		Far:         200,
		Sensitivity: 0.1,
	}
}

// Forward returns the unit view direction derived from yaw and pitch.
func (c *Camera) Forward() mgl32.Vec3 {
	sinY, cosY := sincos(mgl32.DegToRad(c.Yaw))
	sinP, cosP := sincos(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{cosP * cosY, sinP, cosP * sinY}
}

// FlatForward returns the view direction projected onto the XZ plane.
// Walking follows this so looking up or down doesn't change ground speed.
func (c *Camera) FlatForward() mgl32.Vec3 {
	sinY, cosY := sincos(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{cosY, 0, sinY}
}

// Right returns the unit vector pointing to the camera's right in the XZ
// plane: FlatForward crossed with the up axis.
func (c *Camera) Right() mgl32.Vec3 {
	sinY, cosY := sincos(mgl32.DegToRad(c.Yaw))
	return mgl32.Vec3{-sinY, 0, cosY}
}

// Look turns the camera by a pointer delta in pixels. dx turns right, dy
// looks up. Sensitivity is applied here; pitch is clamped to ±pitchLimit.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// ViewMatrix returns the world-to-view matrix for the current position and
// orientation.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

// ProjectionMatrix returns the perspective projection for the given aspect
// ratio (width over height).
func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// FlyTo animates the camera position to target over duration seconds.
// Orientation is unchanged; combine with Look for cinematic moves.
func (c *Camera) FlyTo(target mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.flyTween = &flyAnim{
		tweenX: gween.New(c.Position.X(), target.X(), duration, easeFn),
		tweenY: gween.New(c.Position.Y(), target.Y(), duration, easeFn),
		tweenZ: gween.New(c.Position.Z(), target.Z(), duration, easeFn),
	}
}

// update advances any active fly-to animation.
func (c *Camera) update(dt float32) {
	ft := c.flyTween
	if ft == nil {
		return
	}
	x, doneX := ft.tweenX.Update(dt)
	y, doneY := ft.tweenY.Update(dt)
	z, doneZ := ft.tweenZ.Update(dt)
	c.Position = mgl32.Vec3{x, y, z}
	ft.doneX, ft.doneY, ft.doneZ = doneX, doneY, doneZ
	if doneX && doneY && doneZ {
		c.flyTween = nil
	}
}
