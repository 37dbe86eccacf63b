package sequoia

// Material holds the surface properties used by the fixed-function shading
// model. Transparency is signalled by the diffuse alpha: any value below 1
// routes the node through the transparent render pass.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Emission  Color
	Shininess float32

	// Texture modulates the diffuse term when set. Only mesh and model
	// nodes sample it.
	Texture *Texture
}

// DefaultMaterial returns the neutral grey material assigned to new nodes.
func DefaultMaterial() Material {
	return Material{
		Ambient:  Color{0.2, 0.2, 0.2, 1},
		Diffuse:  Color{0.8, 0.8, 0.8, 1},
		Specular: Color{0, 0, 0, 1},
		Emission: Color{0, 0, 0, 1},
	}
}

// IsTransparent reports whether the material's diffuse alpha is below 1.
func (m Material) IsTransparent() bool {
	return m.Diffuse.A < 1
}

// --- Presets ---

// Glass is a dark, highly reflective material with a low diffuse alpha.
func Glass() Material {
	m := DefaultMaterial()
	m.Diffuse = Color{0, 0, 0.1, 0.2}
	m.Ambient = Color{0, 0, 0.1, 0.2}
	m.Specular = Color{1, 1, 1, 1}
	m.Shininess = 120
	return m
}

// Neon is a self-lit material: full emission in the given color with no
// diffuse response, so it reads the same regardless of scene lighting.
func Neon(r, g, b float32) Material {
	m := DefaultMaterial()
	m.Emission = Color{r, g, b, 1}
	m.Diffuse = Color{0, 0, 0, 1}
	return m
}

// Chrome is a grey metal with a bright, tight highlight.
func Chrome() Material {
	m := DefaultMaterial()
	m.Ambient = Color{0.25, 0.25, 0.25, 1}
	m.Diffuse = Color{0.4, 0.4, 0.4, 1}
	m.Specular = Color{0.77, 0.77, 0.77, 1}
	m.Shininess = 76.8
	return m
}

// Gold is a warm metal with a colored highlight.
func Gold() Material {
	m := DefaultMaterial()
	m.Ambient = Color{0.247, 0.199, 0.074, 1}
	m.Diffuse = Color{0.751, 0.606, 0.226, 1}
	m.Specular = Color{0.628, 0.555, 0.366, 1}
	m.Shininess = 51.2
	return m
}

// Plastic is a colored surface with a white highlight.
func Plastic(r, g, b float32) Material {
	m := DefaultMaterial()
	m.Ambient = Color{r * 0.2, g * 0.2, b * 0.2, 1}
	m.Diffuse = Color{r, g, b, 1}
	m.Specular = Color{1, 1, 1, 1}
	m.Shininess = 32
	return m
}

// Matte is a colored surface with no highlight at all.
func Matte(r, g, b float32) Material {
	m := DefaultMaterial()
	m.Ambient = Color{r * 0.2, g * 0.2, b * 0.2, 1}
	m.Diffuse = Color{r, g, b, 1}
	m.Specular = Color{0, 0, 0, 1}
	m.Shininess = 0
	return m
}
