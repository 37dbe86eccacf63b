package sequoia

import "github.com/go-gl/mathgl/mgl32"

const (
	// interactRadius is the perpendicular distance within which a leaf
	// counts as "on" the interaction ray.
	interactRadius = 1.5

	// interactRange is the furthest distance along the ray at which a
	// leaf can be picked up.
	interactRange = 10.0
)

// rayHit tracks the current best candidate while walking the graph.
type rayHit struct {
	node *Node
	dist float32
}

// findNearest descends the tree testing leaf world positions against the
// ray. The test is a sphere of interactRadius around each leaf centre,
// not a mesh intersection: good enough for picking doors and props, and
// it never misses a thin object the way a precise triangle test would.
func findNearest(n *Node, origin, dir mgl32.Vec3, best *rayHit) {
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if c.Type == NodeTypeGroup {
			findNearest(c, origin, dir, best)
			continue
		}
		if c.Type == NodeTypeLight {
			// Lights occupy the graph for traversal but have no body to
			// point at.
			continue
		}
		pos := c.WorldPosition()
		t := pos.Sub(origin).Dot(dir)
		if t <= 0 || t >= best.dist {
			continue
		}
		closest := origin.Add(dir.Mul(t))
		if distSq := pos.Sub(closest).LenSqr(); distSq < interactRadius*interactRadius {
			best.node = c
			best.dist = t
		}
	}
}

// PickNode returns the nearest leaf within interactRadius of the ray and
// closer than interactRange, or nil. Collider leaves are valid targets:
// a collision box centred on a model is often the easiest thing for the
// ray to hit, and its Interact bubbles to the model's group.
func (s *Scene) PickNode(origin, dir mgl32.Vec3) *Node {
	best := rayHit{dist: interactRange}
	findNearest(s.root, origin, dir, &best)
	return best.node
}

// Interact casts a ray from the camera through the view centre and
// triggers the nearest pick's interact behavior, which bubbles up the
// tree until a handler runs. Returns the node whose handler ran, or nil
// when nothing was hit or nothing handled it.
func (s *Scene) Interact() *Node {
	target := s.PickNode(s.camera.Position, s.camera.Forward())
	if target == nil {
		return nil
	}
	handled := target.Interact()
	if handled != nil && s.store != nil {
		s.store.EmitEvent(InteractionEvent{
			Type:     EventInteract,
			Node:     handled,
			EntityID: handled.EntityID,
		})
	}
	return handled
}
