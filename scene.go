package sequoia

import "github.com/go-gl/mathgl/mgl32"

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	// Node is the node whose handler ran, nil for events with no target
	// (EventBlocked).
	Node *Node
}

const defaultStackCap = 32

// Scene is the top-level object that owns the node tree, the camera, the
// lighting and fog environment, and the per-frame render buffers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	camera     *Camera
	updateFunc func(dt float32)

	// Environment
	ClearColor Color
	Ambient    Color
	Sun        DirectionalLight

	FogEnabled bool
	FogDensity float32
	FogColor   Color

	ShadowsEnabled bool
	ShadowLight    mgl32.Vec4 // light position, w=0 for directional
	ShadowPlane    mgl32.Vec4 // plane coefficients a,b,c,d

	// Collision
	obstacles        []*Node
	collisionQueries int // queries since the last Update; debug stat

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string

	// Render state
	stack       []mgl32.Mat4
	lightBuf    []shadePointLight
	env         lightEnv
	vertScratch []rasterVertex
	stats       renderStats
	pass        renderPass
	st          rasterState
	view        mgl32.Mat4
	viewProj    mgl32.Mat4
	eye         mgl32.Vec3
}

// NewScene creates a scene with a pre-created root group, a default
// camera, and a night-showroom environment: dark blue clear color, dim
// blue ambient, warm sun from (1,1,1), exponential fog matching the
// clear color, and shadows projected onto the y=0 ground plane.
func NewScene() *Scene {
	night := Color{R: 0.02, G: 0.02, B: 0.1, A: 1}
	return &Scene{
		root:   NewGroup("root"),
		camera: NewCamera(),

		ClearColor: night,
		Ambient:    Color{R: 0.1, G: 0.1, B: 0.25, A: 1},
		Sun:        defaultSun(),

		FogEnabled: true,
		FogDensity: 0.03,
		FogColor:   night,

		ShadowsEnabled: true,
		ShadowLight:    mgl32.Vec4{1, 1, 1, 0},
		ShadowPlane:    mgl32.Vec4{0, 1, 0, 0},

		ScreenshotDir: "screenshots",

		stack: make([]mgl32.Mat4, 0, defaultStackCap),
	}
}

// Root returns the scene's root group node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetUpdateFunc installs an application callback that runs at the start
// of every Update, before node behaviors.
func (s *Scene) SetUpdateFunc(fn func(dt float32)) {
	s.updateFunc = fn
}

// Update advances one frame of scene logic: the application callback,
// then every node's update behavior depth-first, then camera animation.
func (s *Scene) Update(dt float32) {
	s.collisionQueries = 0
	if s.updateFunc != nil {
		s.updateFunc(dt)
	}
	s.root.update(dt)
	s.camera.update(dt)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame render stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Dispose releases the whole node tree and drops the obstacle registry.
// The scene must not be used afterwards.
func (s *Scene) Dispose() {
	if s.root != nil {
		s.root.Dispose()
		s.root = nil
	}
	s.obstacles = nil
	s.store = nil
}
