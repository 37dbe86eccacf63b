package sequoia

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Range is a closed interval used for randomized emitter parameters.
type Range struct {
	Min, Max float32
}

// Random returns a random float32 in [Min, Max].
func (r Range) Random() float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float32()*(r.Max-r.Min)
}

// particle holds per-particle simulation state. Unexported; managed by ParticleEmitter.
type particle struct {
	pos        mgl32.Vec3
	vel        mgl32.Vec3
	life       float32 // remaining lifetime in seconds
	maxLife    float32 // initial lifetime (for computing t)
	startSize  float32
	endSize    float32
	size       float32
	startColor Color
	endColor   Color
	color      Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second.
	EmitRate float32
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in units per second.
	Speed Range
	// Direction is the base emission direction in emitter-local space.
	// Zero falls back to +Y.
	Direction mgl32.Vec3
	// Spread is the cone half-angle around Direction, in degrees. Zero
	// emits exactly along Direction.
	Spread float32
	// StartSize is the range of billboard edge lengths at birth, in world
	// units, interpolated to EndSize over lifetime.
	StartSize Range
	// EndSize is the range of billboard edge lengths at death.
	EndSize Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity mgl32.Vec3
	// StartColor is the color at birth, interpolated to EndColor over
	// lifetime. Alpha interpolates too; particles always alpha-blend.
	StartColor Color
	// EndColor is the color at death.
	EndColor Color
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
// Particles simulate in the emitter node's local space and render as
// camera-facing quads, unlit, in the blended pass. Attach the emitter to the
// scene through its Node.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float32
	active    bool
	node      *Node
}

// NewParticleEmitter creates a ParticleEmitter with a preallocated pool and
// the scene node that carries it. The emitter starts inactive.
func NewParticleEmitter(name string, cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	e := &ParticleEmitter{
		config:    cfg,
		particles: make([]particle, max),
	}
	n := &Node{Name: name, Type: NodeTypeParticles}
	nodeDefaults(n)
	n.CastsShadow = false
	n.emitter = e
	e.node = n
	return e
}

// Node returns the scene node carrying this emitter.
func (e *ParticleEmitter) Node() *Node {
	return e.node
}

// Emitter returns the particle emitter carried by this node, or nil for
// other node types.
func (n *Node) Emitter() *ParticleEmitter {
	return n.emitter
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// update advances particle simulation by dt seconds.
func (e *ParticleEmitter) update(dt float32) {
	grav := e.config.Gravity.Mul(dt)

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			// Swap with last alive particle.
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vel = p.vel.Add(grav)
		p.pos = p.pos.Add(p.vel.Mul(dt))

		// Interpolate properties.
		t := 1 - p.life/p.maxLife
		p.size = lerp32(p.startSize, p.endSize, t)
		p.color = lerpColor(p.startColor, p.endColor, t)

		i++
	}

	// Emit new particles.
	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1 {
			e.emitAccum--
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle() {
	p := &e.particles[e.alive]

	dir := e.config.Direction
	if l := dir.Len(); l > scaleEpsilon {
		dir = dir.Mul(1 / l)
	} else {
		dir = worldUp
	}
	if e.config.Spread > 0 {
		dir = randomCone(dir, e.config.Spread)
	}
	p.vel = dir.Mul(e.config.Speed.Random())
	p.pos = mgl32.Vec3{}

	p.life = e.config.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1
	}
	p.maxLife = p.life

	p.startSize = e.config.StartSize.Random()
	p.endSize = e.config.EndSize.Random()
	p.size = p.startSize

	p.startColor = e.config.StartColor
	p.endColor = e.config.EndColor
	p.color = p.startColor

	e.alive++
}

// cloneFor returns a new emitter with the same config and active flag but an
// empty pool, carried by owner. Used by Node.Clone.
func (e *ParticleEmitter) cloneFor(owner *Node) *ParticleEmitter {
	c := &ParticleEmitter{
		config:    e.config,
		particles: make([]particle, len(e.particles)),
		active:    e.active,
		node:      owner,
	}
	return c
}

// randomCone returns a unit vector uniformly distributed within the cone of
// the given half-angle (degrees) around axis. Axis must be unit length.
func randomCone(axis mgl32.Vec3, halfAngleDeg float32) mgl32.Vec3 {
	minCos := float32(math.Cos(float64(mgl32.DegToRad(halfAngleDeg))))
	cosT := minCos + rand.Float32()*(1-minCos)
	sinT := float32(math.Sqrt(float64(1 - cosT*cosT)))
	phi := rand.Float32() * 2 * math.Pi
	sinP, cosP := sincos(phi)

	helper := worldUp
	if abs(axis.Y()) > 0.99 {
		helper = mgl32.Vec3{1, 0, 0}
	}
	t1 := axis.Cross(helper).Normalize()
	t2 := axis.Cross(t1)
	return axis.Mul(cosT).Add(t1.Mul(sinT * cosP)).Add(t2.Mul(sinT * sinP))
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// lerpColor linearly interpolates all four components between a and b by t.
func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: lerp32(a.R, b.R, t),
		G: lerp32(a.G, b.G, t),
		B: lerp32(a.B, b.B, t),
		A: lerp32(a.A, b.A, t),
	}
}
