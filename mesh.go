package sequoia

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a single mesh vertex. Position and Normal are in the mesh's local
// space; UV is a texture coordinate with (0, 0) at the top-left of the image.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is indexed triangle geometry. Meshes are immutable once built and may
// be shared by any number of nodes; the primitive constructors all hand out
// one shared instance per shape.
//
// Winding is counter-clockwise for front faces, matching the rasterizer's
// culling convention.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// addQuad appends a quad as two triangles. Corners are given in
// counter-clockwise order as seen from the front face.
func (m *Mesh) addQuad(a, b, c, d Vertex) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b, c, d)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// --- Shared primitive meshes (no sync.Once — sequoia is single-threaded) ---

// Primitive meshes are built on first use and shared by every node that
// renders that shape.
var (
	cubeMeshShared     *Mesh
	cylinderMeshShared *Mesh
	planeMeshShared    *Mesh
)

func sharedCubeMesh() *Mesh {
	if cubeMeshShared == nil {
		cubeMeshShared = NewCubeMesh()
	}
	return cubeMeshShared
}

func sharedCylinderMesh() *Mesh {
	if cylinderMeshShared == nil {
		cylinderMeshShared = NewCylinderMesh(0.5, 1.0, 20, 20)
	}
	return cylinderMeshShared
}

func sharedPlaneMesh() *Mesh {
	if planeMeshShared == nil {
		planeMeshShared = NewPlaneMesh(20)
	}
	return planeMeshShared
}
