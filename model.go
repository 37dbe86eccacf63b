package sequoia

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Submesh is one drawable piece of an imported model: a mesh plus the
// material it was authored with.
type Submesh struct {
	Mesh     *Mesh
	Material Material
}

// Model is a flattened glTF import. Node transforms are baked into the
// vertices at load time, so a Model draws as a flat list of submeshes
// under whatever transform its scene node carries.
type Model struct {
	Submeshes []Submesh
}

// LoadModel imports a .gltf or .glb file. Geometry is pre-transformed
// into model space; materials map base color onto diffuse/ambient and
// carry the emissive factor. A missing or undecodable texture logs a
// warning and leaves the submesh untextured; only malformed geometry is
// an error.
func LoadModel(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sequoia: open model %s: %w", path, err)
	}

	m := &Model{}
	dir := filepath.Dir(path)

	// Bake the node hierarchy: every mesh instance lands in model space.
	var walk func(idx uint32, parent mgl32.Mat4) error
	walk = func(idx uint32, parent mgl32.Mat4) error {
		nd := doc.Nodes[idx]
		world := parent.Mul4(gltfNodeMatrix(nd))
		if nd.Mesh != nil {
			if err := appendMesh(m, doc, dir, doc.Meshes[*nd.Mesh], world); err != nil {
				return err
			}
		}
		for _, c := range nd.Children {
			if err := walk(c, world); err != nil {
				return err
			}
		}
		return nil
	}

	roots := []uint32{}
	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		roots = doc.Scenes[sceneIdx].Nodes
	}
	for _, idx := range roots {
		if err := walk(idx, mgl32.Ident4()); err != nil {
			return nil, fmt.Errorf("sequoia: load model %s: %w", path, err)
		}
	}
	return m, nil
}

// gltfNodeMatrix composes a node's local transform. Decoded documents
// default the unused representation to identity, so multiplying matrix
// and TRS together handles both forms; a fully zero struct (hand-built
// node) also comes out as identity.
func gltfNodeMatrix(nd *gltf.Node) mgl32.Mat4 {
	m := mgl32.Mat4(nd.Matrix)
	if m == (mgl32.Mat4{}) {
		m = mgl32.Ident4()
	}
	q := mgl32.Quat{
		W: nd.Rotation[3],
		V: mgl32.Vec3{nd.Rotation[0], nd.Rotation[1], nd.Rotation[2]},
	}
	if q.W == 0 && q.V == (mgl32.Vec3{}) {
		q = mgl32.QuatIdent()
	}
	s := nd.Scale
	if s == ([3]float32{}) {
		s = [3]float32{1, 1, 1}
	}
	t := nd.Translation
	return m.Mul4(mgl32.Translate3D(t[0], t[1], t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

func appendMesh(m *Model, doc *gltf.Document, dir string, gm *gltf.Mesh, world mgl32.Mat4) error {
	normalMat := world.Mat3().Inv().Transpose()

	for _, prim := range gm.Primitives {
		posAcc, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posAcc], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normAcc, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = modeler.ReadNormal(doc, doc.Accessors[normAcc], nil); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}
		var uvs [][2]float32
		if uvAcc, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvAcc], nil); err != nil {
				return fmt.Errorf("read texcoords: %w", err)
			}
		}

		mesh := &Mesh{Vertices: make([]Vertex, len(positions))}
		for i, p := range positions {
			v := Vertex{Position: mgl32.TransformCoordinate(mgl32.Vec3{p[0], p[1], p[2]}, world)}
			if i < len(normals) {
				n := normalMat.Mul3x1(mgl32.Vec3{normals[i][0], normals[i][1], normals[i][2]})
				if l := n.Len(); l > 0 {
					v.Normal = n.Mul(1 / l)
				}
			}
			if i < len(uvs) {
				v.UV = mgl32.Vec2{uvs[i][0], uvs[i][1]}
			}
			mesh.Vertices[i] = v
		}

		if prim.Indices != nil {
			if mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			mesh.Indices = make([]uint32, len(positions))
			for i := range mesh.Indices {
				mesh.Indices[i] = uint32(i)
			}
		}
		if normals == nil {
			computeNormals(mesh)
		}

		m.Submeshes = append(m.Submeshes, Submesh{
			Mesh:     mesh,
			Material: gltfMaterial(doc, dir, prim.Material),
		})
	}
	return nil
}

// gltfMaterial converts a glTF PBR material onto the fixed-function
// model: base color becomes diffuse and ambient, alpha passes through
// to drive transparency, emissive factor carries over.
func gltfMaterial(doc *gltf.Document, dir string, idx *uint32) Material {
	mat := DefaultMaterial()
	if idx == nil {
		return mat
	}
	gm := doc.Materials[*idx]
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			mat.Diffuse = Color{R: f[0], G: f[1], B: f[2], A: f[3]}
			mat.Ambient = Color{R: f[0], G: f[1], B: f[2], A: 1}
		}
		if ti := pbr.BaseColorTexture; ti != nil {
			mat.Texture = resolveTexture(doc, dir, ti.Index)
		}
	}
	if ef := gm.EmissiveFactor; ef != ([3]float32{}) {
		mat.Emission = Color{R: ef[0], G: ef[1], B: ef[2], A: 1}
	}
	return mat
}

// resolveTexture loads a texture image from a file URI or an embedded
// buffer view. Failures are non-fatal: the showroom keeps rendering with
// the material's colors.
func resolveTexture(doc *gltf.Document, dir string, texIdx uint32) *Texture {
	if int(texIdx) >= len(doc.Textures) {
		return nil
	}
	src := doc.Textures[texIdx].Source
	if src == nil || int(*src) >= len(doc.Images) {
		return nil
	}
	img := doc.Images[*src]

	if img.URI != "" && !strings.HasPrefix(img.URI, "data:") {
		t, err := LoadTexture(filepath.Join(dir, img.URI))
		if err != nil {
			fmt.Fprintf(os.Stderr, "[sequoia] warning: %v\n", err)
			return nil
		}
		return t
	}
	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer].Data
		end := bv.ByteOffset + bv.ByteLength
		if int(end) > len(buf) {
			fmt.Fprintf(os.Stderr, "[sequoia] warning: image buffer view out of range\n")
			return nil
		}
		t, err := DecodeTexture(buf[bv.ByteOffset:end])
		if err != nil {
			fmt.Fprintf(os.Stderr, "[sequoia] warning: decode embedded texture: %v\n", err)
			return nil
		}
		return t
	}
	return nil
}

// computeNormals fills in area-weighted vertex normals for meshes that
// ship without them.
func computeNormals(mesh *Mesh) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := &mesh.Vertices[mesh.Indices[i]]
		b := &mesh.Vertices[mesh.Indices[i+1]]
		c := &mesh.Vertices[mesh.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		a.Normal = a.Normal.Add(n)
		b.Normal = b.Normal.Add(n)
		c.Normal = c.Normal.Add(n)
	}
	for i := range mesh.Vertices {
		if l := mesh.Vertices[i].Normal.Len(); l > 0 {
			mesh.Vertices[i].Normal = mesh.Vertices[i].Normal.Mul(1 / l)
		}
	}
}
