package sequoia

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"

	_ "image/jpeg"
	_ "image/png"
)

// Texture is a CPU-side RGBA image sampled during rasterization.
// Pix is row-major from the top-left, matching glTF texture space, so
// UVs sample directly with no vertical flip.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA, 4 bytes per texel
}

// textureCache dedupes file loads by path. No lock: sequoia is
// single-threaded.
var textureCache = map[string]*Texture{}

// LoadTexture reads and decodes an image file, caching by path.
func LoadTexture(path string) (*Texture, error) {
	if t, ok := textureCache[path]; ok {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sequoia: read texture %s: %w", path, err)
	}
	t, err := DecodeTexture(data)
	if err != nil {
		return nil, fmt.Errorf("sequoia: decode texture %s: %w", path, err)
	}
	textureCache[path] = t
	return t, nil
}

// DecodeTexture decodes PNG or JPEG bytes into a sampleable texture.
func DecodeTexture(data []byte) (*Texture, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return &Texture{Width: b.Dx(), Height: b.Dy(), Pix: rgba.Pix}, nil
}

// Sample returns the texel nearest to (u,v) with repeat wrapping.
func (t *Texture) Sample(u, v float32) Color {
	if t.Width == 0 || t.Height == 0 {
		return ColorWhite
	}
	u -= float32(math.Floor(float64(u)))
	v -= float32(math.Floor(float64(v)))
	x := int(u * float32(t.Width))
	y := int(v * float32(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	i := (y*t.Width + x) * 4
	return Color{
		R: float32(t.Pix[i]) / 255,
		G: float32(t.Pix[i+1]) / 255,
		B: float32(t.Pix[i+2]) / 255,
		A: float32(t.Pix[i+3]) / 255,
	}
}
