package sequoia

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// renderPass identifies which pipeline pass is executing.
type renderPass uint8

const (
	passOpaque      renderPass = iota // lit geometry, depth write on
	passShadow                        // planar-projected silhouettes, translucent black
	passTransparent                   // blended geometry, two culling sub-passes
)

// shadowColor is the flat translucent black stamped over shadow silhouettes.
var shadowColor = Color{0, 0, 0, 0.5}

// shadowDepthBias pulls shadow fragments slightly toward the viewer so they
// win the depth test against the surface they are projected onto.
const shadowDepthBias = -0.0005

// nearClipW is the minimum clip-space w a vertex may have. Triangles with any
// vertex at or behind this are dropped whole rather than clipped.
const nearClipW = 0.01

// buildShadowMatrix constructs the planar projection that flattens geometry
// onto plane as lit from light. light.W()==0 describes a directional light,
// 1 a positional one. The layout is column-major, so it multiplies onto the
// matrix stack like any other transform.
//
// A light direction parallel to the plane degenerates to a near-zero matrix
// and simply produces collapsed shadow geometry; this is not validated.
func buildShadowMatrix(plane, light mgl32.Vec4) mgl32.Mat4 {
	dot := plane.Dot(light)

	var m mgl32.Mat4
	m[0] = dot - light.X()*plane.X()
	m[4] = -light.X() * plane.Y()
	m[8] = -light.X() * plane.Z()
	m[12] = -light.X() * plane.W()

	m[1] = -light.Y() * plane.X()
	m[5] = dot - light.Y()*plane.Y()
	m[9] = -light.Y() * plane.Z()
	m[13] = -light.Y() * plane.W()

	m[2] = -light.Z() * plane.X()
	m[6] = -light.Z() * plane.Y()
	m[10] = dot - light.Z()*plane.Z()
	m[14] = -light.Z() * plane.W()

	m[3] = -light.W() * plane.X()
	m[7] = -light.W() * plane.Y()
	m[11] = -light.W() * plane.Z()
	m[15] = dot - light.W()*plane.W()

	return m
}

// --- Matrix stack ---

// pushMatrix multiplies m onto the top of the stack and pushes the result.
// Every push must be matched by exactly one popMatrix on every exit path;
// unbalanced traversal corrupts the transforms of subsequent siblings.
func (s *Scene) pushMatrix(m mgl32.Mat4) {
	s.stack = append(s.stack, s.topMatrix().Mul4(m))
}

// popMatrix discards the top of the matrix stack.
func (s *Scene) popMatrix() {
	s.stack = s.stack[:len(s.stack)-1]
}

// topMatrix returns the current composite model matrix.
func (s *Scene) topMatrix() mgl32.Mat4 {
	return s.stack[len(s.stack)-1]
}

// --- Frame rendering ---

// RenderFrame rasterizes one frame of the scene into fb using the scene's
// camera: clear, opaque pass, shadow pass, then the two transparent
// sub-passes. Safe to call headless; nothing here touches the window system.
func (s *Scene) RenderFrame(fb *FrameBuffer) {
	var t0 time.Time
	if s.debug {
		s.stats = renderStats{}
		t0 = time.Now()
	}

	fb.Clear(s.ClearColor)

	cam := s.camera
	aspect := float32(fb.Width) / float32(fb.Height)
	s.view = cam.ViewMatrix()
	s.viewProj = cam.ProjectionMatrix(aspect).Mul4(s.view)
	s.eye = cam.Position

	// Resolve this frame's lighting environment.
	s.lightBuf = collectPointLights(s.root, s.lightBuf[:0])
	s.env = lightEnv{
		ambient: mgl32.Vec3{s.Ambient.R, s.Ambient.G, s.Ambient.B},
		sun:     s.Sun,
		points:  s.lightBuf,
	}
	if s.Sun.Enabled {
		if l := s.Sun.Direction.Len(); l > 0 {
			s.env.sunDir = s.Sun.Direction.Mul(1 / l)
		} else {
			s.env.sun.Enabled = false
		}
	}

	s.stack = s.stack[:0]
	s.stack = append(s.stack, mgl32.Ident4())

	// Pass 1: opaque geometry.
	s.pass = passOpaque
	s.st = rasterState{depthTest: true, depthWrite: true}
	s.drawOpaqueIn(fb, s.root)
	if s.debug {
		s.stats.opaqueTime = time.Since(t0)
		t0 = time.Now()
	}

	// Pass 2: planar shadows. The projection matrix sits below every object
	// transform, the filter applies to top-level objects only, and groups
	// bring their whole subtree.
	if s.ShadowsEnabled {
		s.pass = passShadow
		s.st = rasterState{depthTest: true, blend: true, depthBias: shadowDepthBias}
		s.pushMatrix(buildShadowMatrix(s.ShadowPlane, s.ShadowLight))
		s.pushMatrix(localMatrix(s.root))
		for _, obj := range s.root.children {
			if obj.Visible && !obj.Material.IsTransparent() && obj.CastsShadow {
				s.drawSubtree(fb, obj)
			}
		}
		s.popMatrix()
		s.popMatrix()
	}
	if s.debug {
		s.stats.shadowTime = time.Since(t0)
		t0 = time.Now()
	}

	// Pass 3: transparent geometry, back faces then front faces, with depth
	// writes held off until both sub-passes are done.
	s.pass = passTransparent
	s.st = rasterState{depthTest: true, blend: true, cull: CullFront}
	s.drawTransparentIn(fb, s.root)
	s.st.cull = CullBack
	s.drawTransparentIn(fb, s.root)

	if s.debug {
		s.stats.transparentTime = time.Since(t0)
		s.stats.lights = len(s.lightBuf)
		debugCheckStackBalanced(s)
		s.debugLog()
	}
}

// drawOpaqueIn pushes the group's transform and draws its opaque content:
// sub-groups recurse, leaves draw only when their material is opaque.
func (s *Scene) drawOpaqueIn(fb *FrameBuffer, n *Node) {
	if !n.Visible {
		return
	}
	s.pushMatrix(localMatrix(n))
	for _, child := range n.children {
		if child.Type == NodeTypeGroup {
			s.drawOpaqueIn(fb, child)
		} else if child.Visible && !child.Material.IsTransparent() && child.Type != NodeTypeParticles {
			s.drawSubtree(fb, child)
		}
	}
	s.popMatrix()
}

// drawTransparentIn mirrors drawOpaqueIn for the transparent partition.
// Particle emitters always land here: billboards blend regardless of their
// node material.
func (s *Scene) drawTransparentIn(fb *FrameBuffer, n *Node) {
	if !n.Visible {
		return
	}
	s.pushMatrix(localMatrix(n))
	for _, child := range n.children {
		if child.Type == NodeTypeGroup {
			s.drawTransparentIn(fb, child)
		} else if child.Visible && (child.Material.IsTransparent() || child.Type == NodeTypeParticles) {
			s.drawSubtree(fb, child)
		}
	}
	s.popMatrix()
}

// drawSubtree pushes the node's transform, draws its geometry, and recurses
// into all children with no partition filtering. The shadow pass enters here
// for whole top-level objects; the opaque and transparent passes enter here
// for leaves.
func (s *Scene) drawSubtree(fb *FrameBuffer, n *Node) {
	if !n.Visible {
		return
	}
	s.pushMatrix(localMatrix(n))
	s.drawGeometry(fb, n)
	for _, child := range n.children {
		s.drawSubtree(fb, child)
	}
	s.popMatrix()
}

// drawGeometry rasterizes the node's own geometry with the current stack top
// as its model matrix. Groups, colliders, and lights have none.
func (s *Scene) drawGeometry(fb *FrameBuffer, n *Node) {
	switch n.Type {
	case NodeTypeMesh, NodeTypeText:
		if n.Mesh != nil {
			s.drawMesh(fb, n.Mesh, &n.Material)
		}
	case NodeTypeModel:
		if n.Model != nil {
			for i := range n.Model.Submeshes {
				sub := &n.Model.Submeshes[i]
				s.drawMesh(fb, sub.Mesh, &sub.Material)
			}
		}
	case NodeTypeParticles:
		if n.emitter != nil {
			s.drawParticles(fb, n.emitter)
		}
	}
}

// drawMesh shades, projects, and rasterizes one mesh under the current model
// matrix. During the shadow pass the material is ignored and vertices carry
// the flat shadow color instead of lighting.
func (s *Scene) drawMesh(fb *FrameBuffer, mesh *Mesh, mat *Material) {
	world := s.topMatrix()

	// Normals use the inverse-transpose so non-uniform scales keep them
	// perpendicular. A singular matrix (zero scale) zeroes the normals,
	// which degrades to ambient-only shading.
	normalMat := world.Mat3().Inv().Transpose()

	if cap(s.vertScratch) < len(mesh.Vertices) {
		s.vertScratch = make([]rasterVertex, len(mesh.Vertices))
	}
	verts := s.vertScratch[:len(mesh.Vertices)]

	shadowPass := s.pass == passShadow

	for i := range mesh.Vertices {
		src := &mesh.Vertices[i]
		worldPos := world.Mul4x1(src.Position.Vec4(1)).Vec3()

		var col Color
		if shadowPass {
			col = shadowColor
		} else {
			normal := normalMat.Mul3x1(src.Normal)
			if l := normal.Len(); l > 0 {
				normal = normal.Mul(1 / l)
			}
			col = shadeVertex(worldPos, normal, mat, s.eye, &s.env)
		}
		if s.FogEnabled {
			col = s.applyFog(col, worldPos)
		}

		clip := s.viewProj.Mul4x1(worldPos.Vec4(1))
		v := &verts[i]
		v.color = col
		v.u = src.UV.X()
		v.v = src.UV.Y()
		if clip.W() <= nearClipW {
			v.invW = 0 // behind the near plane; triangles using it are dropped
			continue
		}
		invW := 1 / clip.W()
		v.invW = invW
		ndcX := clip.X() * invW
		ndcY := clip.Y() * invW
		ndcZ := clip.Z() * invW
		v.x = (ndcX*0.5 + 0.5) * float32(fb.Width-1)
		v.y = (1 - (ndcY*0.5 + 0.5)) * float32(fb.Height-1)
		v.depth = ndcZ*0.5 + 0.5
	}

	st := s.st
	if !shadowPass {
		st.texture = mat.Texture
	}

	tris := 0
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		v0 := &verts[mesh.Indices[i]]
		v1 := &verts[mesh.Indices[i+1]]
		v2 := &verts[mesh.Indices[i+2]]
		if v0.invW == 0 || v1.invW == 0 || v2.invW == 0 {
			continue
		}
		fillTriangle(fb, v0, v1, v2, &st)
		tris++
	}

	if s.debug {
		s.stats.drawnMeshes++
		switch s.pass {
		case passOpaque:
			s.stats.opaqueTris += tris
		case passShadow:
			s.stats.shadowTris += tris
		case passTransparent:
			s.stats.transparentTris += tris
		}
	}
}

// drawParticles rasterizes an emitter's pool as camera-facing quads under the
// current model matrix. Particles are unlit: each carries its interpolated
// color directly. They render only in the blended pass, and the quads are
// wound front-facing, so the front-culling sub-pass skips them and the pool
// is rasterized exactly once per frame.
func (s *Scene) drawParticles(fb *FrameBuffer, e *ParticleEmitter) {
	if s.pass != passTransparent || e.alive == 0 {
		return
	}
	world := s.topMatrix()

	// The view matrix rotation rows are the camera basis in world space.
	right := mgl32.Vec3{s.view.At(0, 0), s.view.At(0, 1), s.view.At(0, 2)}
	up := mgl32.Vec3{s.view.At(1, 0), s.view.At(1, 1), s.view.At(1, 2)}

	st := s.st
	var quad [4]rasterVertex
	tris := 0
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		center := mgl32.TransformCoordinate(p.pos, world)
		col := p.color
		if s.FogEnabled {
			col = s.applyFog(col, center)
		}

		h := p.size * 0.5
		r := right.Mul(h)
		u := up.Mul(h)
		corners := [4]mgl32.Vec3{
			center.Sub(r).Sub(u),
			center.Add(r).Sub(u),
			center.Add(r).Add(u),
			center.Sub(r).Add(u),
		}
		behind := false
		for ci := range corners {
			if !s.projectVertex(fb, corners[ci], col, &quad[ci]) {
				behind = true
				break
			}
		}
		if behind {
			continue
		}
		fillTriangle(fb, &quad[0], &quad[1], &quad[2], &st)
		fillTriangle(fb, &quad[0], &quad[2], &quad[3], &st)
		tris += 2
	}

	if s.debug && tris > 0 {
		s.stats.drawnMeshes++
		s.stats.transparentTris += tris
	}
}

// projectVertex projects a world-space point into fb pixel coordinates,
// filling out with the given color. Returns false when the point is at or
// behind the near plane.
func (s *Scene) projectVertex(fb *FrameBuffer, worldPos mgl32.Vec3, col Color, out *rasterVertex) bool {
	clip := s.viewProj.Mul4x1(worldPos.Vec4(1))
	if clip.W() <= nearClipW {
		return false
	}
	invW := 1 / clip.W()
	out.color = col
	out.u = 0
	out.v = 0
	out.invW = invW
	out.x = (clip.X()*invW*0.5 + 0.5) * float32(fb.Width-1)
	out.y = (1 - (clip.Y()*invW*0.5 + 0.5)) * float32(fb.Height-1)
	out.depth = clip.Z()*invW*0.5 + 0.5
	return true
}

// applyFog blends col toward the scene fog color by squared-exponential
// falloff of the eye distance: f = exp(-(density*d)^2).
func (s *Scene) applyFog(col Color, worldPos mgl32.Vec3) Color {
	d := worldPos.Sub(s.eye).Len()
	x := float64(s.FogDensity * d)
	f := float32(math.Exp(-x * x))
	if f > 1 {
		f = 1
	}
	return Color{
		R: col.R*f + s.FogColor.R*(1-f),
		G: col.G*f + s.FogColor.G*(1-f),
		B: col.B*f + s.FogColor.B*(1-f),
		A: col.A,
	}
}
