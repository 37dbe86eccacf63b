package sequoia

import "github.com/go-gl/mathgl/mgl32"

// Player defaults. Height is the eye-to-feet distance, so the camera
// floats Height above whatever the feet are standing on.
const (
	defaultPlayerRadius = 0.3
	defaultPlayerHeight = 1.5
	defaultPlayerSpeed  = 6.0
	defaultJumpSpeed    = 5.0
	defaultGravity      = 9.8
)

// MoveIntent is one frame of movement input, already decoded from
// whatever device produced it.
type MoveIntent struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
}

// Player walks a camera through the scene as a gravity-bound capsule.
// It owns no node: the camera position is the single source of truth,
// and collisions are resolved against the scene's registered obstacles.
type Player struct {
	Radius    float32
	Height    float32
	Speed     float32 // horizontal, units per second
	JumpSpeed float32
	Gravity   float32

	// GroundY is the fallback floor height used when no collider catches
	// the fall. The eye rests at GroundY + Height.
	GroundY float32

	velocityY float32
	grounded  bool
}

// NewPlayer returns a player with showroom-scale defaults.
func NewPlayer() *Player {
	return &Player{
		Radius:    defaultPlayerRadius,
		Height:    defaultPlayerHeight,
		Speed:     defaultPlayerSpeed,
		JumpSpeed: defaultJumpSpeed,
		Gravity:   defaultGravity,
	}
}

// Grounded reports whether the player ended the last update standing on
// the floor plane or a collider.
func (p *Player) Grounded() bool { return p.grounded }

// Update integrates one frame of movement against the scene and its
// camera. Vertical motion is resolved first: apply gravity, clamp to the
// floor plane, then back the move out if it landed inside a collider.
// Horizontal motion then tries X and Z independently so a blocked axis
// still lets the other slide along the wall.
func (p *Player) Update(s *Scene, in MoveIntent, dt float32) {
	cam := s.Camera()
	pos := cam.Position

	p.velocityY -= p.Gravity * dt
	dy := p.velocityY * dt
	pos = mgl32.Vec3{pos.X(), pos.Y() + dy, pos.Z()}
	p.grounded = false
	if pos.Y() < p.GroundY+p.Height {
		pos = mgl32.Vec3{pos.X(), p.GroundY + p.Height, pos.Z()}
		p.velocityY = 0
		p.grounded = true
	}
	if s.Collides(pos, p.Radius, p.Height) {
		pos = mgl32.Vec3{pos.X(), pos.Y() - dy, pos.Z()}
		if p.velocityY < 0 {
			p.grounded = true
		}
		p.velocityY = 0
	}

	var fwd, side float32
	if in.Forward {
		fwd++
	}
	if in.Back {
		fwd--
	}
	if in.Left {
		side--
	}
	if in.Right {
		side++
	}

	blocked := false
	if fwd != 0 || side != 0 {
		sin, cos := sincos(mgl32.DegToRad(cam.Yaw))
		step := p.Speed * dt
		dx := (fwd*cos - side*sin) * step
		dz := (fwd*sin + side*cos) * step

		pos = mgl32.Vec3{pos.X() + dx, pos.Y(), pos.Z()}
		if s.Collides(pos, p.Radius, p.Height) {
			pos = mgl32.Vec3{pos.X() - dx, pos.Y(), pos.Z()}
			blocked = true
		}
		pos = mgl32.Vec3{pos.X(), pos.Y(), pos.Z() + dz}
		if s.Collides(pos, p.Radius, p.Height) {
			pos = mgl32.Vec3{pos.X(), pos.Y(), pos.Z() - dz}
			blocked = true
		}
	}

	if in.Jump && p.grounded {
		p.velocityY = p.JumpSpeed
	}

	cam.Position = pos

	if blocked && s.store != nil {
		s.store.EmitEvent(InteractionEvent{Type: EventBlocked})
	}
}
