package sequoia

import "github.com/go-gl/mathgl/mgl32"

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — sequoia is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used
// for all node types to avoid interface dispatch on the hot path; Type selects
// how the renderer and the query systems treat the node.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local, parent-relative). Rotation is Euler angles in
	// degrees, applied X then Y then Z.
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	// Visibility
	Visible     bool
	CastsShadow bool

	// Material used when drawing mesh and text geometry. Model nodes carry
	// their own per-submesh materials and ignore this field.
	Material Material

	// Mesh geometry (NodeTypeMesh, NodeTypeText)
	Mesh *Mesh

	// Imported model (NodeTypeModel)
	Model *Model

	// Text content (NodeTypeText); rebuilt into Mesh by SetText
	text string

	// Particle pool (NodeTypeParticles); advanced by update
	emitter *ParticleEmitter

	// Box volume extents: width, height, depth (NodeTypeCollider)
	Size mgl32.Vec3

	// Light fields (NodeTypeLight)
	LightColor Color
	Intensity  float32

	// Metadata
	UserData any
	EntityID uint32

	// Per-node callbacks (nil by default; zero cost when unused).
	// Both receive the node they fire on, so a single function value can be
	// shared across nodes and survives Clone.
	OnUpdate   func(n *Node, dt float32)
	OnInteract func(n *Node)

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = mgl32.Vec3{1, 1, 1}
	n.Visible = true
	n.CastsShadow = true
	n.Material = DefaultMaterial()
}

// NewGroup creates a grouping node with no geometry of its own.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewCube creates a mesh node rendering a unit cube centered on the origin.
func NewCube(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: sharedCubeMesh()}
	nodeDefaults(n)
	return n
}

// NewCylinder creates a mesh node rendering a capped cylinder of radius 0.5
// extending from z=0 to z=1 along the +Z axis.
func NewCylinder(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: sharedCylinderMesh()}
	nodeDefaults(n)
	return n
}

// NewPlane creates a mesh node rendering a subdivided quad spanning -1..1 on
// X and Z with its normal on +Y. The subdivisions give per-vertex lighting
// enough samples to show point light falloff across the surface.
func NewPlane(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: sharedPlaneMesh()}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a mesh node with caller-provided geometry.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := &Node{Name: name, Type: NodeTypeMesh, Mesh: mesh}
	nodeDefaults(n)
	return n
}

// NewModel creates a node rendering an imported model's submeshes with the
// materials and textures recorded at load time.
func NewModel(name string, model *Model) *Node {
	n := &Node{Name: name, Type: NodeTypeModel, Model: model}
	nodeDefaults(n)
	return n
}

// NewText creates a node rendering content as stroke-font line text, built
// from thin quads in the node's local XY plane, centered on the origin.
// Text does not cast shadows.
func NewText(name, content string) *Node {
	n := &Node{Name: name, Type: NodeTypeText}
	nodeDefaults(n)
	n.CastsShadow = false
	n.setTextMesh(content)
	return n
}

// NewCollider creates an invisible box volume used by collision queries.
// Width, height, and depth are local extents, centered on the node's origin,
// and are scaled by the node's own Scale when tested. Colliders do not cast
// shadows and are skipped by the renderer.
func NewCollider(name string, width, height, depth float32) *Node {
	n := &Node{Name: name, Type: NodeTypeCollider, Size: mgl32.Vec3{width, height, depth}}
	nodeDefaults(n)
	n.CastsShadow = false
	return n
}

// NewPointLight creates a positional light node. The light contributes to
// vertex shading from its world position; it draws nothing itself.
func NewPointLight(name string, color Color, intensity float32) *Node {
	n := &Node{Name: name, Type: NodeTypeLight, LightColor: color, Intensity: intensity}
	nodeDefaults(n)
	n.CastsShadow = false
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("sequoia: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("sequoia: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
		debugCheckLeafAttach(n, child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("sequoia: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("sequoia: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("sequoia: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
		debugCheckLeafAttach(n, child)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("sequoia: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("sequoia: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Find returns the first node named name in this subtree (depth-first,
// including n itself), or nil if no such node exists.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Cloning ---

// Clone returns a deep copy of this node and its subtree. Meshes, models, and
// textures are shared between the original and the clone; transforms,
// materials, and flags are copied. Callback fields are carried over as-is,
// which is safe for callbacks that operate on their *Node argument. Behaviors
// holding per-attachment state (door swings, tweens) must be re-attached on
// the clone. A particle emitter is cloned with the same config but an empty
// pool. The clone has a fresh ID, no parent, and a zero EntityID.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:        n.Name,
		Type:        n.Type,
		Position:    n.Position,
		Rotation:    n.Rotation,
		Scale:       n.Scale,
		Visible:     n.Visible,
		CastsShadow: n.CastsShadow,
		Material:    n.Material,
		Mesh:        n.Mesh,
		Model:       n.Model,
		text:        n.text,
		Size:        n.Size,
		LightColor:  n.LightColor,
		Intensity:   n.Intensity,
		UserData:    n.UserData,
		OnUpdate:    n.OnUpdate,
		OnInteract:  n.OnInteract,
	}
	c.ID = nextNodeID()
	if n.emitter != nil {
		c.emitter = n.emitter.cloneFor(c)
	}
	for _, child := range n.children {
		c.AddChild(child.Clone())
	}
	return c
}

// --- Interaction ---

// Interact triggers the node's interaction logic. If the node has an
// OnInteract callback it runs; otherwise the event bubbles to the parent.
// Returns the node whose callback handled the event, or nil if the event
// reached the root unhandled.
func (n *Node) Interact() *Node {
	if n.OnInteract != nil {
		n.OnInteract(n)
		return n
	}
	if n.Parent != nil {
		return n.Parent.Interact()
	}
	return nil
}

// --- Update propagation ---

// update runs the node's OnUpdate callback, advances any particle pool, and
// recurses into children.
func (n *Node) update(dt float32) {
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
	}
	if n.emitter != nil {
		n.emitter.update(dt)
	}
	for _, child := range n.children {
		child.update(dt)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	n.Model = nil
	n.emitter = nil
	n.Material.Texture = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnInteract = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
