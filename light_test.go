package sequoia

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- shading ---

func TestShadeVertexAmbientOnly(t *testing.T) {
	mat := DefaultMaterial()
	env := lightEnv{ambient: mgl32.Vec3{0.5, 0.5, 0.5}}

	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 0, 5}, &env)
	assertNear(t, "R", got.R, 0.1) // 0.5 * material ambient 0.2
	assertNear(t, "G", got.G, 0.1)
	assertNear(t, "A", got.A, 1)
}

func TestShadeVertexEmission(t *testing.T) {
	mat := Neon(1, 0.5, 0.25)
	env := lightEnv{}

	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 0, 5}, &env)
	assertNear(t, "R", got.R, 1)
	assertNear(t, "G", got.G, 0.5)
	assertNear(t, "B", got.B, 0.25)
}

func TestShadeVertexSunDiffuse(t *testing.T) {
	mat := DefaultMaterial()
	env := lightEnv{
		sun:    DirectionalLight{Diffuse: Color{1, 0.95, 0.8, 1}, Enabled: true},
		sunDir: mgl32.Vec3{0, 1, 0},
	}

	// Surface facing the light: full N.L.
	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 5, 0}, &env)
	assertNear(t, "facing R", got.R, 0.8)
	assertNear(t, "facing G", got.G, 0.76)
	assertNear(t, "facing B", got.B, 0.64)

	// Facing away: no contribution at all.
	got = shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, &mat, mgl32.Vec3{0, 5, 0}, &env)
	assertNear(t, "away R", got.R, 0)
}

func TestShadeVertexSunAngle(t *testing.T) {
	mat := DefaultMaterial()
	invSqrt2 := float32(1 / math.Sqrt2)
	env := lightEnv{
		sun:    DirectionalLight{Diffuse: Color{1, 1, 1, 1}, Enabled: true},
		sunDir: mgl32.Vec3{0, invSqrt2, invSqrt2},
	}

	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 5, 0}, &env)
	assertNear(t, "R at 45 degrees", got.R, 0.8*invSqrt2)
}

func TestShadeVertexPointLightAttenuation(t *testing.T) {
	mat := DefaultMaterial()
	near := lightEnv{points: []shadePointLight{
		{position: mgl32.Vec3{0, 2, 0}, color: Color{1, 1, 1, 1}},
	}}
	far := lightEnv{points: []shadePointLight{
		{position: mgl32.Vec3{0, 10, 0}, color: Color{1, 1, 1, 1}},
	}}

	normal := mgl32.Vec3{0, 1, 0}
	eye := mgl32.Vec3{0, 0, 5}
	gotNear := shadeVertex(mgl32.Vec3{}, normal, &mat, eye, &near)
	gotFar := shadeVertex(mgl32.Vec3{}, normal, &mat, eye, &far)

	// att = 1 / (1 + 0.05*d)
	assertNear(t, "R at distance 2", gotNear.R, 0.8/1.1)
	assertNear(t, "R at distance 10", gotFar.R, 0.8/1.5)
	if gotFar.R >= gotNear.R {
		t.Errorf("attenuation not monotonic: near %v, far %v", gotNear.R, gotFar.R)
	}
}

func TestShadeVertexSpecularHighlight(t *testing.T) {
	mat := Material{
		Diffuse:   Color{0, 0, 0, 1},
		Specular:  Color{1, 1, 1, 1},
		Shininess: 120,
	}
	env := lightEnv{
		sun:    DirectionalLight{Diffuse: Color{1, 1, 1, 1}, Specular: Color{1, 1, 1, 1}, Enabled: true},
		sunDir: mgl32.Vec3{0, 1, 0},
	}

	// Light, view, and normal aligned: the half vector hits dead on.
	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 5, 0}, &env)
	assertNear(t, "aligned specular", got.R, 1)

	// Tilt the normal 45 degrees: (N.H)^120 collapses to nothing.
	invSqrt2 := float32(1 / math.Sqrt2)
	got = shadeVertex(mgl32.Vec3{}, mgl32.Vec3{invSqrt2, invSqrt2, 0}, &mat, mgl32.Vec3{0, 5, 0}, &env)
	if got.R > 0.01 {
		t.Errorf("tilted specular = %v, want near 0", got.R)
	}
}

func TestShadeVertexClampsToOne(t *testing.T) {
	mat := DefaultMaterial()
	env := lightEnv{ambient: mgl32.Vec3{100, 100, 100}}

	got := shadeVertex(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, &mat, mgl32.Vec3{0, 0, 5}, &env)
	assertNear(t, "R clamped", got.R, 1)
}

// --- light collection ---

func TestCollectPointLightsNested(t *testing.T) {
	root := NewGroup("root")
	g := NewGroup("rig")
	g.Position = mgl32.Vec3{0, 2, 0}
	lamp := NewPointLight("lamp", Color{1, 0.5, 0.25, 1}, 2)
	lamp.Position = mgl32.Vec3{0, 3, 0}
	g.AddChild(lamp)
	root.AddChild(g)

	lights := collectPointLights(root, nil)
	if len(lights) != 1 {
		t.Fatalf("len(lights) = %d, want 1", len(lights))
	}
	assertVec3(t, "position", lights[0].position, mgl32.Vec3{0, 5, 0})
	assertNear(t, "color R", lights[0].color.R, 2)
	assertNear(t, "color G", lights[0].color.G, 1)
}

func TestCollectPointLightsSkipsInvisible(t *testing.T) {
	root := NewGroup("root")
	g := NewGroup("dark")
	g.Visible = false
	g.AddChild(NewPointLight("hidden", Color{1, 1, 1, 1}, 1))
	root.AddChild(g)

	direct := NewPointLight("off", Color{1, 1, 1, 1}, 1)
	direct.Visible = false
	root.AddChild(direct)

	if lights := collectPointLights(root, nil); len(lights) != 0 {
		t.Errorf("len(lights) = %d, want 0", len(lights))
	}
}

func TestCollectPointLightsCap(t *testing.T) {
	root := NewGroup("root")
	for i := 0; i < 10; i++ {
		root.AddChild(NewPointLight("lamp", Color{1, 1, 1, 1}, 1))
	}

	if lights := collectPointLights(root, nil); len(lights) != maxPointLights {
		t.Errorf("len(lights) = %d, want %d", len(lights), maxPointLights)
	}
}

func TestCollectPointLightsCapWarnsInDebug(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	root := NewGroup("root")
	for i := 0; i < maxPointLights+1; i++ {
		root.AddChild(NewPointLight("lamp", Color{1, 1, 1, 1}, 1))
	}

	out := captureStderr(t, func() {
		collectPointLights(root, nil)
	})
	if !strings.Contains(out, "point light") {
		t.Errorf("expected dropped-light warning, got: %q", out)
	}
}

func TestDefaultSunShape(t *testing.T) {
	sun := defaultSun()
	if !sun.Enabled {
		t.Error("default sun should be enabled")
	}
	assertVec3(t, "direction", sun.Direction, mgl32.Vec3{1, 1, 1})
	assertNear(t, "diffuse G", sun.Diffuse.G, 0.95)
}
