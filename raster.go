package sequoia

// rasterVertex is a vertex projected to screen space, carrying its lit color
// and texture coordinate for interpolation.
type rasterVertex struct {
	x, y  float32 // pixel coordinates
	depth float32 // window-space depth in [0, 1]
	invW  float32 // 1/clip.w, for perspective-correct interpolation
	color Color   // lit vertex color, straight alpha
	u, v  float32 // texture coordinates
}

// rasterState captures the fixed-function toggles in effect for a draw call.
// The render passes flip these the way the GL state machine would.
type rasterState struct {
	depthTest  bool
	depthWrite bool
	blend      bool
	cull       CullFace
	depthBias  float32 // added to interpolated depth before test and write

	// texture modulates the interpolated color when set.
	texture *Texture
}

// fillTriangle rasterizes one screen-space triangle into fb under the given
// state. Facing is determined by the screen-space signed area: after the Y
// flip of the viewport transform, front faces (counter-clockwise in world
// winding) come out negative.
//
// The inner loop allocates nothing.
func fillTriangle(fb *FrameBuffer, v0, v1, v2 *rasterVertex, st *rasterState) {
	area2 := (v1.x-v0.x)*(v2.y-v0.y) - (v2.x-v0.x)*(v1.y-v0.y)
	if area2 == 0 {
		return
	}
	front := area2 < 0
	if st.cull == CullBack && !front {
		return
	}
	if st.cull == CullFront && front {
		return
	}

	// Normalize orientation so the inside test is "all weights >= 0".
	sign := float32(1)
	if front {
		sign = -1
		area2 = -area2
	}
	invArea := 1 / area2

	// Clamped integer bounding box.
	minX := int(min3(v0.x, v1.x, v2.x))
	minY := int(min3(v0.y, v1.y, v2.y))
	maxX := int(max3(v0.x, v1.x, v2.x)) + 1
	maxY := int(max3(v0.y, v1.y, v2.y)) + 1
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > fb.Width-1 {
		maxX = fb.Width - 1
	}
	if maxY > fb.Height-1 {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Edge function increments: w0 spans edge v1->v2, w1 spans v2->v0,
	// w2 spans v0->v1.
	a0, b0 := sign*(v1.y-v2.y), sign*(v2.x-v1.x)
	a1, b1 := sign*(v2.y-v0.y), sign*(v0.x-v2.x)
	a2, b2 := sign*(v0.y-v1.y), sign*(v1.x-v0.x)

	// Evaluate at the center of the top-left bounding box pixel.
	px := float32(minX) + 0.5
	py := float32(minY) + 0.5
	w0Row := sign * ((v2.x-v1.x)*(py-v1.y) - (v2.y-v1.y)*(px-v1.x))
	w1Row := sign * ((v0.x-v2.x)*(py-v2.y) - (v0.y-v2.y)*(px-v2.x))
	w2Row := sign * ((v1.x-v0.x)*(py-v0.y) - (v1.y-v0.y)*(px-v0.x))

	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		rowBase := y * fb.Width

		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				l0 := w0 * invArea
				l1 := w1 * invArea
				l2 := w2 * invArea

				depth := l0*v0.depth + l1*v1.depth + l2*v2.depth + st.depthBias
				idx := rowBase + x

				if !st.depthTest || depth < fb.Depth[idx] {
					// Perspective-correct attribute weights.
					iw := l0*v0.invW + l1*v1.invW + l2*v2.invW
					p0 := l0 * v0.invW / iw
					p1 := l1 * v1.invW / iw
					p2 := l2 * v2.invW / iw

					col := Color{
						R: p0*v0.color.R + p1*v1.color.R + p2*v2.color.R,
						G: p0*v0.color.G + p1*v1.color.G + p2*v2.color.G,
						B: p0*v0.color.B + p1*v1.color.B + p2*v2.color.B,
						A: p0*v0.color.A + p1*v1.color.A + p2*v2.color.A,
					}
					if st.texture != nil {
						u := p0*v0.u + p1*v1.u + p2*v2.u
						v := p0*v0.v + p1*v1.v + p2*v2.v
						col = col.Modulate(st.texture.Sample(u, v))
					}

					writePixel(fb, idx, col, st.blend)
					if st.depthWrite {
						fb.Depth[idx] = depth
					}
				}
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
}

// writePixel stores col at the flat pixel index, alpha-blending over the
// existing color when blend is set. The destination stays opaque, so the
// blend is a straight lerp by source alpha.
func writePixel(fb *FrameBuffer, idx int, col Color, blend bool) {
	i := idx * 4
	if blend && col.A < 1 {
		a := clamp01(col.A)
		inv := 1 - a
		fb.Color[i] = uint8(clamp01(col.R)*a*255 + float32(fb.Color[i])*inv + 0.5)
		fb.Color[i+1] = uint8(clamp01(col.G)*a*255 + float32(fb.Color[i+1])*inv + 0.5)
		fb.Color[i+2] = uint8(clamp01(col.B)*a*255 + float32(fb.Color[i+2])*inv + 0.5)
		fb.Color[i+3] = 255
		return
	}
	fb.Color[i] = uint8(clamp01(col.R)*255 + 0.5)
	fb.Color[i+1] = uint8(clamp01(col.G)*255 + 0.5)
	fb.Color[i+2] = uint8(clamp01(col.B)*255 + 0.5)
	fb.Color[i+3] = uint8(clamp01(col.A)*255 + 0.5)
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
