package sequoia

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Text nodes triangulate their string from a built-in stroke font: each
// glyph is a set of polylines on a 60x100 grid (baseline 0, cap height
// 100), and every segment becomes a thin quad, front and back faces, so
// unlit or emissive text reads from both sides. Glyph space is scaled by
// textScale and the string is centered on the node origin.

const (
	textScale     = 0.01
	glyphAdvance  = 80
	glyphBaseline = 60 // glyph-space shift so the string centres vertically
	strokeHalf    = 3  // half thickness of a stroke, glyph units
)

// Text returns the node's current string. Empty for non-text nodes.
func (n *Node) Text() string {
	return n.text
}

// SetText replaces a text node's string and rebuilds its mesh.
func (n *Node) SetText(content string) {
	if n.Type != NodeTypeText {
		panic("sequoia: SetText on non-text node " + n.Name)
	}
	n.setTextMesh(content)
}

func (n *Node) setTextMesh(content string) {
	n.text = content
	n.Mesh = buildTextMesh(content)
}

// buildTextMesh lays the string out on one line, advancing a fixed
// glyphAdvance per rune, and centres the result: x spans half the raw
// width each side of the origin, y is dropped by glyphBaseline so the
// caps straddle the origin the way the showroom signs expect.
func buildTextMesh(content string) *Mesh {
	runes := []rune(content)
	mesh := &Mesh{}
	rawWidth := float32(len(runes) * glyphAdvance)

	penX := -rawWidth / 2
	for _, r := range runes {
		strokes, ok := strokeFont[foldGlyph(r)]
		if ok {
			for _, line := range strokes {
				for i := 0; i+1 < len(line); i++ {
					addStrokeQuad(mesh, penX, line[i], line[i+1])
				}
			}
		}
		penX += glyphAdvance
	}
	return mesh
}

// foldGlyph maps lowercase onto the uppercase glyph set.
func foldGlyph(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// addStrokeQuad extrudes one stroke segment into a quad, both windings,
// in node-local units.
func addStrokeQuad(mesh *Mesh, penX float32, a, b mgl32.Vec2) {
	dir := b.Sub(a)
	l := dir.Len()
	if l == 0 {
		return
	}
	// Perpendicular in the glyph plane, half a stroke wide.
	nx := -dir.Y() / l * strokeHalf
	ny := dir.X() / l * strokeHalf

	p := func(gx, gy float32) mgl32.Vec3 {
		return mgl32.Vec3{
			(penX + gx) * textScale,
			(gy - glyphBaseline) * textScale,
			0,
		}
	}
	v0 := p(a.X()+nx, a.Y()+ny)
	v1 := p(a.X()-nx, a.Y()-ny)
	v2 := p(b.X()-nx, b.Y()-ny)
	v3 := p(b.X()+nx, b.Y()+ny)

	front := mgl32.Vec3{0, 0, 1}
	back := mgl32.Vec3{0, 0, -1}
	mesh.addQuad(
		Vertex{Position: v0, Normal: front},
		Vertex{Position: v1, Normal: front},
		Vertex{Position: v2, Normal: front},
		Vertex{Position: v3, Normal: front},
	)
	mesh.addQuad(
		Vertex{Position: v3, Normal: back},
		Vertex{Position: v2, Normal: back},
		Vertex{Position: v1, Normal: back},
		Vertex{Position: v0, Normal: back},
	)
}

// strokeFont covers the caps, digits, and the punctuation a sign is
// likely to need. Coordinates are hand-placed; curves are short
// polylines, which suits the chunky neon look.
var strokeFont = map[rune][][]mgl32.Vec2{
	' ': {},
	'A': {
		{{0, 0}, {30, 100}, {60, 0}},
		{{12, 40}, {48, 40}},
	},
	'B': {
		{{0, 0}, {0, 100}, {46, 100}, {56, 88}, {56, 64}, {46, 55}, {0, 55}},
		{{46, 55}, {58, 44}, {58, 12}, {46, 0}, {0, 0}},
	},
	'C': {
		{{56, 84}, {40, 100}, {18, 100}, {4, 84}, {0, 60}, {0, 40}, {4, 16}, {18, 0}, {40, 0}, {56, 16}},
	},
	'D': {
		{{0, 0}, {0, 100}, {38, 100}, {54, 86}, {60, 60}, {60, 40}, {54, 14}, {38, 0}, {0, 0}},
	},
	'E': {
		{{60, 100}, {0, 100}, {0, 0}, {60, 0}},
		{{0, 52}, {42, 52}},
	},
	'F': {
		{{60, 100}, {0, 100}, {0, 0}},
		{{0, 55}, {40, 55}},
	},
	'G': {
		{{56, 84}, {40, 100}, {18, 100}, {4, 84}, {0, 60}, {0, 40}, {4, 16}, {18, 0}, {42, 0}, {56, 14}, {58, 38}},
		{{58, 38}, {32, 38}},
	},
	'H': {
		{{0, 0}, {0, 100}},
		{{60, 0}, {60, 100}},
		{{0, 52}, {60, 52}},
	},
	'I': {
		{{18, 100}, {42, 100}},
		{{30, 100}, {30, 0}},
		{{18, 0}, {42, 0}},
	},
	'J': {
		{{50, 100}, {50, 18}, {42, 4}, {24, 0}, {8, 6}, {2, 20}},
	},
	'K': {
		{{0, 0}, {0, 100}},
		{{55, 100}, {0, 44}},
		{{18, 58}, {58, 0}},
	},
	'L': {
		{{0, 100}, {0, 0}, {56, 0}},
	},
	'M': {
		{{0, 0}, {0, 100}, {30, 40}, {60, 100}, {60, 0}},
	},
	'N': {
		{{0, 0}, {0, 100}, {60, 0}, {60, 100}},
	},
	'O': {
		{{18, 100}, {42, 100}, {56, 84}, {60, 58}, {60, 42}, {56, 16}, {42, 0}, {18, 0}, {4, 16}, {0, 42}, {0, 58}, {4, 84}, {18, 100}},
	},
	'P': {
		{{0, 0}, {0, 100}, {46, 100}, {58, 88}, {58, 62}, {46, 50}, {0, 50}},
	},
	'Q': {
		{{18, 100}, {42, 100}, {56, 84}, {60, 58}, {60, 42}, {56, 16}, {42, 0}, {18, 0}, {4, 16}, {0, 42}, {0, 58}, {4, 84}, {18, 100}},
		{{38, 22}, {60, -6}},
	},
	'R': {
		{{0, 0}, {0, 100}, {46, 100}, {58, 88}, {58, 62}, {46, 50}, {0, 50}},
		{{30, 50}, {58, 0}},
	},
	'S': {
		{{56, 84}, {42, 100}, {16, 100}, {2, 86}, {2, 68}, {14, 56}, {44, 46}, {56, 34}, {56, 14}, {42, 0}, {14, 0}, {0, 16}},
	},
	'T': {
		{{0, 100}, {60, 100}},
		{{30, 100}, {30, 0}},
	},
	'U': {
		{{0, 100}, {0, 22}, {8, 6}, {24, 0}, {36, 0}, {52, 6}, {60, 22}, {60, 100}},
	},
	'V': {
		{{0, 100}, {30, 0}, {60, 100}},
	},
	'W': {
		{{0, 100}, {14, 0}, {30, 64}, {46, 0}, {60, 100}},
	},
	'X': {
		{{0, 0}, {60, 100}},
		{{0, 100}, {60, 0}},
	},
	'Y': {
		{{0, 100}, {30, 52}, {60, 100}},
		{{30, 52}, {30, 0}},
	},
	'Z': {
		{{0, 100}, {60, 100}, {0, 0}, {60, 0}},
	},
	'0': {
		{{18, 100}, {42, 100}, {56, 84}, {60, 58}, {60, 42}, {56, 16}, {42, 0}, {18, 0}, {4, 16}, {0, 42}, {0, 58}, {4, 84}, {18, 100}},
		{{12, 20}, {48, 80}},
	},
	'1': {
		{{16, 78}, {34, 100}, {34, 0}},
		{{16, 0}, {50, 0}},
	},
	'2': {
		{{4, 84}, {18, 100}, {42, 100}, {56, 86}, {56, 66}, {0, 8}, {0, 0}, {58, 0}},
	},
	'3': {
		{{4, 88}, {18, 100}, {44, 100}, {56, 88}, {56, 68}, {44, 56}, {22, 56}},
		{{44, 56}, {56, 44}, {56, 14}, {44, 0}, {16, 0}, {2, 12}},
	},
	'4': {
		{{44, 0}, {44, 100}, {0, 30}, {60, 30}},
	},
	'5': {
		{{54, 100}, {8, 100}, {4, 54}, {18, 62}, {38, 62}, {54, 50}, {56, 18}, {42, 0}, {14, 0}, {2, 14}},
	},
	'6': {
		{{52, 86}, {38, 100}, {18, 100}, {4, 82}, {0, 48}, {0, 24}, {10, 4}, {30, 0}, {44, 4}, {54, 20}, {54, 34}, {44, 50}, {24, 52}, {8, 44}},
	},
	'7': {
		{{0, 100}, {60, 100}, {22, 0}},
	},
	'8': {
		{{30, 56}, {12, 62}, {6, 76}, {10, 92}, {24, 100}, {36, 100}, {50, 92}, {54, 76}, {48, 62}, {30, 56}, {10, 48}, {4, 32}, {8, 10}, {22, 0}, {38, 0}, {52, 10}, {56, 32}, {50, 48}, {30, 56}},
	},
	'9': {
		{{2, 14}, {16, 0}, {36, 0}, {50, 18}, {54, 52}, {54, 76}, {44, 96}, {24, 100}, {10, 96}, {0, 80}, {0, 66}, {10, 50}, {30, 48}, {46, 56}},
	},
	'-': {
		{{12, 46}, {48, 46}},
	},
	'.': {
		{{27, 0}, {33, 0}},
	},
	'!': {
		{{30, 100}, {30, 28}},
		{{30, 6}, {30, 0}},
	},
	'?': {
		{{4, 84}, {16, 100}, {42, 100}, {56, 84}, {56, 66}, {44, 52}, {30, 44}, {30, 28}},
		{{30, 6}, {30, 0}},
	},
	'\'': {
		{{28, 100}, {26, 78}},
	},
	':': {
		{{30, 64}, {30, 56}},
		{{30, 6}, {30, 0}},
	},
}
