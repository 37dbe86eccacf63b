package sequoia

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Primitive mesh builders ---

// NewCubeMesh builds a unit cube centered on the origin (extent -0.5..0.5 on
// every axis) with per-face normals and UVs.
func NewCubeMesh() *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}

	faces := []struct {
		normal     mgl32.Vec3
		a, b, c, d mgl32.Vec3 // counter-clockwise as seen from outside
	}{
		{mgl32.Vec3{0, 0, 1},
			mgl32.Vec3{-0.5, -0.5, 0.5}, mgl32.Vec3{0.5, -0.5, 0.5},
			mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{-0.5, 0.5, 0.5}},
		{mgl32.Vec3{0, 0, -1},
			mgl32.Vec3{0.5, -0.5, -0.5}, mgl32.Vec3{-0.5, -0.5, -0.5},
			mgl32.Vec3{-0.5, 0.5, -0.5}, mgl32.Vec3{0.5, 0.5, -0.5}},
		{mgl32.Vec3{1, 0, 0},
			mgl32.Vec3{0.5, -0.5, 0.5}, mgl32.Vec3{0.5, -0.5, -0.5},
			mgl32.Vec3{0.5, 0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}},
		{mgl32.Vec3{-1, 0, 0},
			mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{-0.5, -0.5, 0.5},
			mgl32.Vec3{-0.5, 0.5, 0.5}, mgl32.Vec3{-0.5, 0.5, -0.5}},
		{mgl32.Vec3{0, 1, 0},
			mgl32.Vec3{-0.5, 0.5, 0.5}, mgl32.Vec3{0.5, 0.5, 0.5},
			mgl32.Vec3{0.5, 0.5, -0.5}, mgl32.Vec3{-0.5, 0.5, -0.5}},
		{mgl32.Vec3{0, -1, 0},
			mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, -0.5, -0.5},
			mgl32.Vec3{0.5, -0.5, 0.5}, mgl32.Vec3{-0.5, -0.5, 0.5}},
	}

	for _, f := range faces {
		m.addQuad(
			Vertex{Position: f.a, Normal: f.normal, UV: mgl32.Vec2{0, 1}},
			Vertex{Position: f.b, Normal: f.normal, UV: mgl32.Vec2{1, 1}},
			Vertex{Position: f.c, Normal: f.normal, UV: mgl32.Vec2{1, 0}},
			Vertex{Position: f.d, Normal: f.normal, UV: mgl32.Vec2{0, 0}},
		)
	}
	return m
}

// NewCylinderMesh builds a capped cylinder of the given radius extending from
// z=0 to z=height along +Z. segments is the circumference subdivision count,
// rings the subdivision along the length; both are clamped to a minimum of 3
// and 1 respectively.
func NewCylinderMesh(radius, height float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 1 {
		rings = 1
	}

	m := &Mesh{}

	// Side surface. The seam vertex is duplicated so UVs wrap cleanly.
	for ring := 0; ring <= rings; ring++ {
		z := height * float32(ring) / float32(rings)
		v := float32(ring) / float32(rings)
		for seg := 0; seg <= segments; seg++ {
			theta := 2 * math.Pi * float64(seg) / float64(segments)
			sin, cos := math.Sincos(theta)
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{radius * float32(cos), radius * float32(sin), z},
				Normal:   mgl32.Vec3{float32(cos), float32(sin), 0},
				UV:       mgl32.Vec2{float32(seg) / float32(segments), 1 - v},
			})
		}
	}
	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			i00 := uint32(ring)*stride + uint32(seg)
			i10 := i00 + 1
			i01 := i00 + stride
			i11 := i01 + 1
			m.Indices = append(m.Indices, i00, i10, i11, i00, i11, i01)
		}
	}

	// Caps. Separate vertices because the normals differ from the side.
	m.buildCylinderCap(radius, height, segments, true)
	m.buildCylinderCap(radius, 0, segments, false)

	return m
}

// buildCylinderCap appends a triangle fan closing one end of a cylinder.
func (m *Mesh) buildCylinderCap(radius, z float32, segments int, top bool) {
	normal := mgl32.Vec3{0, 0, 1}
	if !top {
		normal = mgl32.Vec3{0, 0, -1}
	}
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{
		Position: mgl32.Vec3{0, 0, z},
		Normal:   normal,
		UV:       mgl32.Vec2{0.5, 0.5},
	})
	for seg := 0; seg <= segments; seg++ {
		theta := 2 * math.Pi * float64(seg) / float64(segments)
		sin, cos := math.Sincos(theta)
		m.Vertices = append(m.Vertices, Vertex{
			Position: mgl32.Vec3{radius * float32(cos), radius * float32(sin), z},
			Normal:   normal,
			UV:       mgl32.Vec2{0.5 + 0.5*float32(cos), 0.5 - 0.5*float32(sin)},
		})
	}
	for seg := 0; seg < segments; seg++ {
		a := center + 1 + uint32(seg)
		b := a + 1
		if top {
			m.Indices = append(m.Indices, center, a, b)
		} else {
			m.Indices = append(m.Indices, center, b, a)
		}
	}
}

// NewPlaneMesh builds a flat grid spanning -1..1 on X and Z at y=0, facing
// +Y, with divisions subdivisions per side (clamped to a minimum of 1).
func NewPlaneMesh(divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}

	m := &Mesh{}
	stride := uint32(divisions + 1)
	normal := mgl32.Vec3{0, 1, 0}

	for j := 0; j <= divisions; j++ {
		z := -1 + 2*float32(j)/float32(divisions)
		for i := 0; i <= divisions; i++ {
			x := -1 + 2*float32(i)/float32(divisions)
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{x, 0, z},
				Normal:   normal,
				UV:       mgl32.Vec2{float32(i) / float32(divisions), float32(j) / float32(divisions)},
			})
		}
	}
	for j := 0; j < divisions; j++ {
		for i := 0; i < divisions; i++ {
			i00 := uint32(j)*stride + uint32(i)
			i10 := i00 + 1
			i01 := i00 + stride
			i11 := i01 + 1
			// Counter-clockwise as seen from +Y.
			m.Indices = append(m.Indices, i01, i11, i10, i01, i10, i00)
		}
	}
	return m
}

// NewLineMesh builds a single thin quad running from one point to another,
// thickness units wide, both windings so it reads from either side. A
// degenerate segment produces an empty mesh.
func NewLineMesh(from, to mgl32.Vec3, thickness float32) *Mesh {
	m := &Mesh{}
	dir := to.Sub(from)
	if dir.Len() < scaleEpsilon {
		return m
	}
	side := dir.Cross(worldUp)
	if side.Len() < scaleEpsilon {
		// Vertical segment; widen along X instead.
		side = dir.Cross(mgl32.Vec3{1, 0, 0})
	}
	half := side.Normalize().Mul(thickness / 2)
	front := dir.Cross(half).Normalize()
	back := front.Mul(-1)

	v0, v1 := from.Add(half), from.Sub(half)
	v2, v3 := to.Sub(half), to.Add(half)
	m.addQuad(
		Vertex{Position: v0, Normal: front, UV: mgl32.Vec2{0, 1}},
		Vertex{Position: v1, Normal: front, UV: mgl32.Vec2{1, 1}},
		Vertex{Position: v2, Normal: front, UV: mgl32.Vec2{1, 0}},
		Vertex{Position: v3, Normal: front, UV: mgl32.Vec2{0, 0}},
	)
	m.addQuad(
		Vertex{Position: v3, Normal: back, UV: mgl32.Vec2{0, 1}},
		Vertex{Position: v2, Normal: back, UV: mgl32.Vec2{1, 1}},
		Vertex{Position: v1, Normal: back, UV: mgl32.Vec2{1, 0}},
		Vertex{Position: v0, Normal: back, UV: mgl32.Vec2{0, 0}},
	)
	return m
}

// NewQuadMesh builds a single quad of the given width and height in the XY
// plane, centered on the origin, facing +Z. Useful for billboards and flat
// panels.
func NewQuadMesh(width, height float32) *Mesh {
	m := &Mesh{}
	hw, hh := width/2, height/2
	normal := mgl32.Vec3{0, 0, 1}
	m.addQuad(
		Vertex{Position: mgl32.Vec3{-hw, -hh, 0}, Normal: normal, UV: mgl32.Vec2{0, 1}},
		Vertex{Position: mgl32.Vec3{hw, -hh, 0}, Normal: normal, UV: mgl32.Vec2{1, 1}},
		Vertex{Position: mgl32.Vec3{hw, hh, 0}, Normal: normal, UV: mgl32.Vec2{1, 0}},
		Vertex{Position: mgl32.Vec3{-hw, hh, 0}, Normal: normal, UV: mgl32.Vec2{0, 0}},
	)
	return m
}
