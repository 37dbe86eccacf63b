package sequoia

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// maxPointLights caps how many point lights contribute to shading in a single
// frame. Extra lights are ignored; debug mode logs a warning when the cap is
// exceeded.
const maxPointLights = 7

// pointLightAttenuation is the linear distance attenuation coefficient applied
// to every point light: att = 1 / (1 + coefficient * distance).
const pointLightAttenuation = 0.05

// DirectionalLight is an infinitely distant light. Direction points from the
// scene toward the light.
type DirectionalLight struct {
	// Direction toward the light. Need not be normalized.
	Direction mgl32.Vec3
	// Diffuse is the light color multiplied with material diffuse.
	Diffuse Color
	// Specular is the highlight color.
	Specular Color
	// Enabled turns the light's contribution on or off.
	Enabled bool
}

// defaultSun returns the warm overhead light scenes start with.
func defaultSun() DirectionalLight {
	return DirectionalLight{
		Direction: mgl32.Vec3{1, 1, 1},
		Diffuse:   Color{1, 0.95, 0.8, 1},
		Specular:  Color{1, 1, 1, 1},
		Enabled:   true,
	}
}

// shadePointLight is a point light node resolved to world space for a frame.
// The original color and intensity are premultiplied at collection time.
type shadePointLight struct {
	position mgl32.Vec3
	color    Color // LightColor scaled by Intensity; used for diffuse and specular
}

// lightEnv is the lighting environment for one frame: the global ambient, the
// directional light, and all collected point lights.
type lightEnv struct {
	ambient mgl32.Vec3
	sunDir  mgl32.Vec3 // normalized; zero when the sun is disabled
	sun     DirectionalLight
	points  []shadePointLight
}

// collectPointLights gathers enabled light nodes from the subtree, resolving
// their world positions. Invisible subtrees are skipped. Returns the extended
// buffer; lights past maxPointLights are dropped.
func collectPointLights(n *Node, buf []shadePointLight) []shadePointLight {
	if !n.Visible {
		return buf
	}
	if n.Type == NodeTypeLight {
		if len(buf) < maxPointLights {
			buf = append(buf, shadePointLight{
				position: n.WorldPosition(),
				color:    n.LightColor.Scaled(n.Intensity),
			})
		} else if globalDebug {
			_, _ = fmt.Fprintf(os.Stderr, "[sequoia] warning: point light %q dropped, cap is %d per frame\n",
				n.Name, maxPointLights)
		}
		return buf
	}
	for _, child := range n.children {
		buf = collectPointLights(child, buf)
	}
	return buf
}

// shadeVertex evaluates the fixed-function lighting model for a single vertex:
//
//	emission + ambient*matAmbient + sum over lights of
//	    att * (matDiffuse*lightDiffuse*(N.L) + matSpecular*lightSpecular*(N.H)^shininess)
//
// All positions and the normal are in world space; the normal must be unit
// length. The viewer term uses the eye position (local viewer), so highlights
// track the camera. The returned alpha is the material's diffuse alpha.
func shadeVertex(pos, normal mgl32.Vec3, mat *Material, eye mgl32.Vec3, env *lightEnv) Color {
	r := mat.Emission.R + env.ambient.X()*mat.Ambient.R
	g := mat.Emission.G + env.ambient.Y()*mat.Ambient.G
	b := mat.Emission.B + env.ambient.Z()*mat.Ambient.B

	view := eye.Sub(pos)
	if vl := view.Len(); vl > 0 {
		view = view.Mul(1 / vl)
	}

	if env.sun.Enabled {
		diff, spec := lightTerms(normal, env.sunDir, view, mat.Shininess)
		r += diff*mat.Diffuse.R*env.sun.Diffuse.R + spec*mat.Specular.R*env.sun.Specular.R
		g += diff*mat.Diffuse.G*env.sun.Diffuse.G + spec*mat.Specular.G*env.sun.Specular.G
		b += diff*mat.Diffuse.B*env.sun.Diffuse.B + spec*mat.Specular.B*env.sun.Specular.B
	}

	for i := range env.points {
		pl := &env.points[i]
		toLight := pl.position.Sub(pos)
		dist := toLight.Len()
		if dist <= 0 {
			continue
		}
		l := toLight.Mul(1 / dist)
		att := 1 / (1 + pointLightAttenuation*dist)

		diff, spec := lightTerms(normal, l, view, mat.Shininess)
		r += att * (diff*mat.Diffuse.R*pl.color.R + spec*mat.Specular.R*pl.color.R)
		g += att * (diff*mat.Diffuse.G*pl.color.G + spec*mat.Specular.G*pl.color.G)
		b += att * (diff*mat.Diffuse.B*pl.color.B + spec*mat.Specular.B*pl.color.B)
	}

	return Color{clamp01(r), clamp01(g), clamp01(b), clamp01(mat.Diffuse.A)}
}

// lightTerms computes the diffuse factor N.L and the specular factor
// (N.H)^shininess for one light direction. Specular is zero when the surface
// faces away from the light or shininess is zero.
func lightTerms(normal, lightDir, view mgl32.Vec3, shininess float32) (diff, spec float32) {
	nl := normal.Dot(lightDir)
	if nl <= 0 {
		return 0, 0
	}
	diff = nl
	if shininess > 0 {
		half := lightDir.Add(view)
		if hl := half.Len(); hl > 0 {
			nh := normal.Dot(half.Mul(1 / hl))
			if nh > 0 {
				spec = float32(math.Pow(float64(nh), float64(shininess)))
			}
		}
	}
	return diff, spec
}
