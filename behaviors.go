package sequoia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Reusable node behaviors. Each Attach call builds fresh closure state,
// so the same helper can drive any number of nodes independently.

// AttachSpin makes a node revolve in place about an axis through its own
// position at degPerSec. The node's children orbit with it.
func AttachSpin(n *Node, axis mgl32.Vec3, degPerSec float32) {
	n.OnUpdate = func(nd *Node, dt float32) {
		nd.RotateAround(nd.Position, axis, degPerSec*dt)
	}
}

// AttachOrbit makes a node circle a fixed pivot (in its parent's space)
// about an axis at degPerSec, reorienting as it goes.
func AttachOrbit(n *Node, pivot, axis mgl32.Vec3, degPerSec float32) {
	n.OnUpdate = func(nd *Node, dt float32) {
		nd.RotateAround(pivot, axis, degPerSec*dt)
	}
}

const doorSwingSpeed = 120 // degrees per second

// doorSwing is the shared state between a door's update and interact
// closures. angle tracks how far the door has swung from its rest pose.
type doorSwing struct {
	angle float32
	tween *gween.Tween
}

// AttachDoorSwing wires a hinged door: interacting toggles it between
// closed and swung open around the hinge point (parent space, axis +Y),
// at a constant angular speed. The door opens away from the camera:
// openAngle is used when the camera stands on the door's forward side
// and its negation on the other, so the panel never sweeps through the
// player. Pass a negative openAngle for mirrored hinges.
func AttachDoorSwing(s *Scene, door *Node, hinge mgl32.Vec3, openAngle float32) {
	st := &doorSwing{}

	door.OnUpdate = func(nd *Node, dt float32) {
		if st.tween == nil {
			return
		}
		target, done := st.tween.Update(dt)
		step := target - st.angle
		if step != 0 {
			nd.RotateAround(hinge, worldUp, step)
			st.angle = target
		}
		if done {
			st.tween = nil
		}
	}

	door.OnInteract = func(nd *Node) {
		var target float32
		if abs(st.angle) > 1 {
			target = 0 // closing
		} else {
			// World rotation decides which way "forward" faces after the
			// parent chain; the XZ dot picks the side the camera is on.
			sin, cos := sincos(mgl32.DegToRad(nd.WorldRotation().Y()))
			pos := nd.WorldPosition()
			dx := s.camera.Position.X() - pos.X()
			dz := s.camera.Position.Z() - pos.Z()
			if dx*sin+dz*cos > 0 {
				target = openAngle
			} else {
				target = -openAngle
			}
		}
		dist := abs(target - st.angle)
		if dist == 0 {
			st.tween = nil
			return
		}
		st.tween = gween.New(st.angle, target, dist/doorSwingSpeed, ease.Linear)
	}
}
