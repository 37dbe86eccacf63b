package sequoia

import "github.com/go-gl/mathgl/mgl32"

// Collision tests approximate the player as a vertical capsule (radius,
// height) and each obstacle as an oriented box. The capsule centre is
// transformed into the box's local frame, where the box is axis-aligned,
// and the capsule extents are rescaled to match.

// colliderScaleGuard is the cutoff below which a scale axis is treated
// as unscaled when inverting. Looser than scaleEpsilon on purpose:
// collision volumes are hand-placed and a tiny axis means a paper-thin
// wall, not a degenerate transform.
const colliderScaleGuard = 0.001

// colliderOverlaps reports whether a capsule at point with the given
// radius and height overlaps the collider box.
func colliderOverlaps(box *Node, point mgl32.Vec3, radius, height float32) bool {
	local := box.PointToLocal(point)

	hw := box.Size.X() * 0.5
	hh := box.Size.Y() * 0.5
	hd := box.Size.Z() * 0.5

	invX, invY, invZ := float32(1), float32(1), float32(1)
	if abs(box.Scale.X()) > colliderScaleGuard {
		invX = 1 / box.Scale.X()
	}
	if abs(box.Scale.Y()) > colliderScaleGuard {
		invY = 1 / box.Scale.Y()
	}
	if abs(box.Scale.Z()) > colliderScaleGuard {
		invZ = 1 / box.Scale.Z()
	}

	// Conservative: inflate by the larger of the two horizontal axes so a
	// non-uniformly scaled box still blocks from every side.
	localRadius := radius * max32(abs(invX), abs(invZ))
	localHeight := height * abs(invY)

	if local.X() < -(hw+localRadius) || local.X() > hw+localRadius {
		return false
	}
	if local.Z() < -(hd+localRadius) || local.Z() > hd+localRadius {
		return false
	}

	// Feet below the top face, head above the bottom face.
	return local.Y()-localHeight < hh && local.Y() > -hh
}

// collideSubtree walks a registered obstacle tree and reports the first
// collider hit. Invisible subtrees still collide: hiding a wall does not
// let the player through it.
func collideSubtree(n *Node, point mgl32.Vec3, radius, height float32) bool {
	if n.Type == NodeTypeCollider && colliderOverlaps(n, point, radius, height) {
		return true
	}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if collideSubtree(c, point, radius, height) {
			return true
		}
	}
	return false
}

// Collides reports whether a capsule at point overlaps any collider in
// the scene's registered obstacle roots. Short-circuits on the first hit.
func (s *Scene) Collides(point mgl32.Vec3, radius, height float32) bool {
	s.collisionQueries++
	for _, root := range s.obstacles {
		if root == nil {
			continue
		}
		if collideSubtree(root, point, radius, height) {
			return true
		}
	}
	return false
}

// RegisterObstacle adds a node tree to the set consulted by Collides.
// Registration is explicit: nodes added to the scene graph, and clones
// of registered trees, do not collide until registered themselves.
func (s *Scene) RegisterObstacle(n *Node) {
	if n == nil {
		panic("sequoia: RegisterObstacle called with nil node")
	}
	for _, o := range s.obstacles {
		if o == n {
			return
		}
	}
	s.obstacles = append(s.obstacles, n)
}

// UnregisterObstacle removes a previously registered obstacle root.
func (s *Scene) UnregisterObstacle(n *Node) {
	for i, o := range s.obstacles {
		if o == n {
			copy(s.obstacles[i:], s.obstacles[i+1:])
			s.obstacles[len(s.obstacles)-1] = nil
			s.obstacles = s.obstacles[:len(s.obstacles)-1]
			return
		}
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
