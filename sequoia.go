package sequoia

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Material colors may exceed 1 before lighting; the rasterizer clamps at
// submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// Scaled returns the color with R, G, B multiplied by f. Alpha is unchanged.
func (c Color) Scaled(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Add returns the component-wise sum of c and other. Alpha is taken from c.
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A}
}

// Modulate returns the component-wise product of c and other. Alpha is taken from c.
func (c Color) Modulate(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A}
}

// clamp01 clamps v to [0, 1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamped returns the color with all components clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// Vec4 converts the color to an mgl32 vector (R, G, B, A).
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// NodeType distinguishes rendering and query behavior for a Node.
type NodeType uint8

const (
	NodeTypeGroup     NodeType = iota // grouping node with no geometry of its own
	NodeTypeMesh                      // renders a triangle mesh (primitives or custom geometry)
	NodeTypeModel                     // renders an imported glTF model with per-submesh materials
	NodeTypeText                      // renders line text built from stroke-font quads
	NodeTypeCollider                  // invisible box volume used for collision queries
	NodeTypeLight                     // positional light source, contributes to shading only
	NodeTypeParticles                 // particle emitter, rendered as blended billboards
)

// CullFace selects which triangle winding the rasterizer discards.
type CullFace uint8

const (
	CullNone  CullFace = iota // rasterize both windings
	CullBack                  // discard triangles facing away from the camera
	CullFront                 // discard triangles facing toward the camera
)

// EventType identifies a kind of scene event forwarded to the entity store.
type EventType uint8

const (
	EventInteract EventType = iota // fires when an interaction ray triggers a node
	EventBlocked                   // fires when player movement is cancelled by a collision
)

// worldUp is the fixed up axis. The engine is Y-up throughout.
var worldUp = mgl32.Vec3{0, 1, 0}
