package sequoia

import "testing"

// flatVertex builds a screen-space vertex with no perspective (invW 1).
func flatVertex(x, y, depth float32, col Color) rasterVertex {
	return rasterVertex{x: x, y: y, depth: depth, invW: 1, color: col}
}

// frontTriangle returns a right triangle over pixels (1,1)..(9,9) wound
// front-facing (negative screen-space area).
func frontTriangle(depth float32, col Color) (rasterVertex, rasterVertex, rasterVertex) {
	return flatVertex(1, 1, depth, col),
		flatVertex(1, 9, depth, col),
		flatVertex(9, 1, depth, col)
}

func TestFillTriangleCoverage(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})

	v0, v1, v2 := frontTriangle(0.5, Color{1, 0, 0, 1})
	st := rasterState{}
	fillTriangle(fb, &v0, &v1, &v2, &st)

	if got := fb.ColorAt(2, 2); got.R < 0.99 {
		t.Errorf("ColorAt(2,2).R = %v, want 1 inside the triangle", got.R)
	}
	if got := fb.ColorAt(12, 12); got.R != 0 {
		t.Errorf("ColorAt(12,12).R = %v, want 0 outside the triangle", got.R)
	}
	// Just past the hypotenuse x+y=10.
	if got := fb.ColorAt(5, 5); got.R != 0 {
		t.Errorf("ColorAt(5,5).R = %v, want 0 beyond the hypotenuse", got.R)
	}
}

func TestFillTriangleCulling(t *testing.T) {
	red := Color{1, 0, 0, 1}

	draw := func(cull CullFace, reversed bool) Color {
		fb := NewFrameBuffer(16, 16)
		fb.Clear(Color{0, 0, 0, 1})
		v0, v1, v2 := frontTriangle(0.5, red)
		st := rasterState{cull: cull}
		if reversed {
			fillTriangle(fb, &v0, &v2, &v1, &st)
		} else {
			fillTriangle(fb, &v0, &v1, &v2, &st)
		}
		return fb.ColorAt(2, 2)
	}

	if got := draw(CullBack, false); got.R < 0.99 {
		t.Error("CullBack should keep front-facing triangles")
	}
	if got := draw(CullBack, true); got.R != 0 {
		t.Error("CullBack should discard back-facing triangles")
	}
	if got := draw(CullFront, false); got.R != 0 {
		t.Error("CullFront should discard front-facing triangles")
	}
	if got := draw(CullFront, true); got.R < 0.99 {
		t.Error("CullFront should keep back-facing triangles")
	}
}

func TestFillTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{depthTest: true, depthWrite: true}

	n0, n1, n2 := frontTriangle(0.3, Color{1, 0, 0, 1})
	f0, f1, f2 := frontTriangle(0.7, Color{0, 1, 0, 1})

	fillTriangle(fb, &n0, &n1, &n2, &st)
	fillTriangle(fb, &f0, &f1, &f2, &st)

	got := fb.ColorAt(2, 2)
	if got.R < 0.99 || got.G != 0 {
		t.Errorf("ColorAt(2,2) = %v, want near triangle to win", got)
	}
	assertNear(t, "depth", fb.DepthAt(2, 2), 0.3)

	// Same pair in the other order: the near triangle overdraws.
	fb.Clear(Color{0, 0, 0, 1})
	fillTriangle(fb, &f0, &f1, &f2, &st)
	fillTriangle(fb, &n0, &n1, &n2, &st)
	got = fb.ColorAt(2, 2)
	if got.R < 0.99 || got.G != 0 {
		t.Errorf("ColorAt(2,2) = %v, want near triangle to overdraw", got)
	}
}

func TestFillTriangleDepthWriteOff(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{depthTest: true}

	v0, v1, v2 := frontTriangle(0.3, Color{1, 0, 0, 1})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	if d := fb.DepthAt(2, 2); d != 1 {
		t.Errorf("DepthAt(2,2) = %v, want 1 with depth writes off", d)
	}

	// A second draw at the same depth still passes against the far plane.
	g0, g1, g2 := frontTriangle(0.3, Color{0, 1, 0, 1})
	fillTriangle(fb, &g0, &g1, &g2, &st)
	if got := fb.ColorAt(2, 2); got.G < 0.99 {
		t.Errorf("ColorAt(2,2) = %v, want second draw to land", got)
	}
}

func TestFillTriangleDepthBias(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})

	base := rasterState{depthTest: true, depthWrite: true}
	v0, v1, v2 := frontTriangle(0.5, Color{1, 0, 0, 1})
	fillTriangle(fb, &v0, &v1, &v2, &base)

	// Equal depth fails the strict test...
	flat := rasterState{depthTest: true}
	g0, g1, g2 := frontTriangle(0.5, Color{0, 1, 0, 1})
	fillTriangle(fb, &g0, &g1, &g2, &flat)
	if got := fb.ColorAt(2, 2); got.G != 0 {
		t.Error("equal depth should lose the strict depth test")
	}

	// ...but a negative bias pulls the fragment in front.
	biased := rasterState{depthTest: true, depthBias: -0.1}
	fillTriangle(fb, &g0, &g1, &g2, &biased)
	if got := fb.ColorAt(2, 2); got.G < 0.99 {
		t.Error("negative depth bias should win the depth test")
	}
}

func TestFillTriangleBlend(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{blend: true}

	v0, v1, v2 := frontTriangle(0.5, Color{1, 1, 1, 0.5})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	got := fb.ColorAt(2, 2)
	if diff := float64(got.R - 0.5); diff > 0.01 || diff < -0.01 {
		t.Errorf("blended R = %v, want ~0.5 over black", got.R)
	}
	assertNear(t, "dst alpha", got.A, 1)
}

func TestFillTriangleColorInterpolation(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{}

	// White fades in from the v2 corner; at pixel (8,2) its barycentric
	// weight is 105/196.
	v0 := flatVertex(1, 1, 0.5, Color{0, 0, 0, 1})
	v1 := flatVertex(1, 15, 0.5, Color{0, 0, 0, 1})
	v2 := flatVertex(15, 1, 0.5, Color{1, 1, 1, 1})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	got := fb.ColorAt(8, 2)
	want := float32(105.0 / 196.0)
	if diff := float64(got.R - want); diff > 0.01 || diff < -0.01 {
		t.Errorf("interpolated R = %v, want ~%v", got.R, want)
	}
}

func TestFillTrianglePerspectiveCorrection(t *testing.T) {
	fb := NewFrameBuffer(20, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{}

	// v1 is four times farther than the others (invW 0.25). At pixel
	// (8,8) the affine weights are (7.25, 8.75, 8)/24; perspective
	// correction shrinks v1's share to ~0.1255, so the black corner
	// contributes far less than the affine 0.365.
	v0 := flatVertex(0, 8, 0.5, Color{1, 1, 1, 1})
	v1 := rasterVertex{x: 16, y: 8, depth: 0.5, invW: 0.25, color: Color{0, 0, 0, 1}}
	v2 := flatVertex(8, 9.5, 0.5, Color{1, 1, 1, 1})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	got := fb.ColorAt(8, 8)
	want := float32(0.8746)
	if diff := float64(got.R - want); diff > 0.01 || diff < -0.01 {
		t.Errorf("perspective R = %v, want ~%v", got.R, want)
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{}

	// Colinear vertices have zero area and must not draw.
	v0 := flatVertex(1, 1, 0.5, Color{1, 0, 0, 1})
	v1 := flatVertex(5, 5, 0.5, Color{1, 0, 0, 1})
	v2 := flatVertex(9, 9, 0.5, Color{1, 0, 0, 1})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	if got := fb.ColorAt(5, 5); got.R != 0 {
		t.Errorf("ColorAt(5,5).R = %v, want 0 for degenerate triangle", got.R)
	}
}

func TestFillTriangleClampsToBounds(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.Clear(Color{0, 0, 0, 1})
	st := rasterState{}

	// Vertices spill off every edge; the bounding box clamps and the
	// visible part still draws.
	v0 := flatVertex(-5, -5, 0.5, Color{1, 0, 0, 1})
	v1 := flatVertex(10, -2, 0.5, Color{1, 0, 0, 1})
	v2 := flatVertex(-2, 10, 0.5, Color{1, 0, 0, 1})
	fillTriangle(fb, &v0, &v1, &v2, &st)

	if got := fb.ColorAt(0, 0); got.R < 0.99 {
		t.Errorf("ColorAt(0,0).R = %v, want 1 for clipped triangle", got.R)
	}
}
