package sequoia

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenRotation,
// TweenScale, TweenDiffuse) and call Update(dt) each frame. If the target
// node is disposed, the group stops immediately.
//
// There is no global animation manager — users call Update themselves,
// typically from the scene update function or a node's OnUpdate.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// vecTween wires the three components of a Vec3 field into a group.
func vecTween(node *Node, field *mgl32.Vec3, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(field[i], to[i], duration, fn)
		g.fields[i] = &field[i]
	}
	return g
}

// TweenPosition creates a TweenGroup that animates node.Position to the given
// target over the specified duration using the easing function.
func TweenPosition(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return vecTween(node, &node.Position, to, duration, fn)
}

// TweenRotation creates a TweenGroup that animates node.Rotation (Euler
// degrees) to the given target over the specified duration.
func TweenRotation(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return vecTween(node, &node.Rotation, to, duration, fn)
}

// TweenScale creates a TweenGroup that animates node.Scale to the given
// target over the specified duration using the easing function.
func TweenScale(node *Node, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return vecTween(node, &node.Scale, to, duration, fn)
}

// TweenDiffuse creates a TweenGroup that animates all four components of the
// node material's diffuse color to the target over the specified duration.
// Crossing the alpha = 1 boundary moves the node between the opaque and
// transparent passes on the frame it crosses.
func TweenDiffuse(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	d := &node.Material.Diffuse
	g.tweens[0] = gween.New(d.R, to.R, duration, fn)
	g.tweens[1] = gween.New(d.G, to.G, duration, fn)
	g.tweens[2] = gween.New(d.B, to.B, duration, fn)
	g.tweens[3] = gween.New(d.A, to.A, duration, fn)
	g.fields[0] = &d.R
	g.fields[1] = &d.G
	g.fields[2] = &d.B
	g.fields[3] = &d.A
	return g
}
