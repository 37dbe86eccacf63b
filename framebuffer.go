package sequoia

import "github.com/hajimehoshi/ebiten/v2"

// FrameBuffer is a CPU-side render target: an RGBA color buffer plus a depth
// buffer, both stored as flat slices indexed y*Width+x. All rasterization
// writes here; Blit uploads the result to an ebiten image once per frame.
type FrameBuffer struct {
	Width  int
	Height int

	// Color holds 4 bytes per pixel (RGBA, straight alpha).
	Color []uint8

	// Depth holds window-space depth in [0, 1] per pixel, cleared to 1
	// (the far plane). The depth test passes when the incoming depth is
	// less than the stored value.
	Depth []float32
}

// NewFrameBuffer creates a framebuffer of the given size.
// Panics if either dimension is not positive.
func NewFrameBuffer(width, height int) *FrameBuffer {
	if width <= 0 || height <= 0 {
		panic("sequoia: framebuffer dimensions must be positive")
	}
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Color:  make([]uint8, width*height*4),
		Depth:  make([]float32, width*height),
	}
}

// Resize adjusts the framebuffer to a new size. Existing contents are
// discarded. Buffers are reused when large enough (high-water mark, never
// shrinks).
func (fb *FrameBuffer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		panic("sequoia: framebuffer dimensions must be positive")
	}
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width = width
	fb.Height = height
	if cap(fb.Color) < width*height*4 {
		fb.Color = make([]uint8, width*height*4)
	} else {
		fb.Color = fb.Color[:width*height*4]
	}
	if cap(fb.Depth) < width*height {
		fb.Depth = make([]float32, width*height)
	} else {
		fb.Depth = fb.Depth[:width*height]
	}
}

// Clear fills the color buffer with c and resets every depth sample to the
// far plane.
func (fb *FrameBuffer) Clear(c Color) {
	r := uint8(clamp01(c.R)*255 + 0.5)
	g := uint8(clamp01(c.G)*255 + 0.5)
	b := uint8(clamp01(c.B)*255 + 0.5)
	a := uint8(clamp01(c.A)*255 + 0.5)

	// Seed the first pixel, then double the filled region with copy.
	fb.Color[0] = r
	fb.Color[1] = g
	fb.Color[2] = b
	fb.Color[3] = a
	for filled := 4; filled < len(fb.Color); filled *= 2 {
		copy(fb.Color[filled:], fb.Color[:filled])
	}

	fb.Depth[0] = 1
	for filled := 1; filled < len(fb.Depth); filled *= 2 {
		copy(fb.Depth[filled:], fb.Depth[:filled])
	}
}

// ColorAt returns the color of the pixel at (x, y) with components scaled
// back to [0, 1]. Out-of-bounds coordinates return the zero Color.
func (fb *FrameBuffer) ColorAt(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{
		R: float32(fb.Color[i]) / 255,
		G: float32(fb.Color[i+1]) / 255,
		B: float32(fb.Color[i+2]) / 255,
		A: float32(fb.Color[i+3]) / 255,
	}
}

// DepthAt returns the depth of the pixel at (x, y). Out-of-bounds coordinates
// return 1 (the far plane).
func (fb *FrameBuffer) DepthAt(x, y int) float32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 1
	}
	return fb.Depth[y*fb.Width+x]
}

// Blit uploads the color buffer to dst. dst must match the framebuffer's
// size; the alpha channel is fully opaque after a Clear, so the pixels are
// valid premultiplied data.
func (fb *FrameBuffer) Blit(dst *ebiten.Image) {
	dst.WritePixels(fb.Color)
}
