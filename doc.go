// Package sequoia is a software-rendered 3D scene graph for [Ebitengine].
//
// Sequoia provides the transform hierarchy, multi-pass renderer (opaque,
// planar shadows, transparent), fixed-function style lighting and fog,
// first-person player physics, and ray-based interaction that a small
// walkable 3D scene needs, all rasterized on the CPU and presented
// through an Ebitengine window.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// frame loop for you:
//
//	scene := sequoia.NewScene()
//	// ... add nodes ...
//	sequoia.Run(scene, sequoia.RunConfig{
//		Title: "My Scene", Width: 960, Height: 540,
//		Player: sequoia.NewPlayer(),
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.RenderFrame] directly:
//
//	type Game struct {
//		scene *sequoia.Scene
//		fb    *sequoia.FrameBuffer
//	}
//
//	func (g *Game) Update() error { g.scene.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) {
//		g.scene.RenderFrame(g.fb)
//		g.fb.Blit(s)
//	}
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root],
// and children inherit their parent's position, rotation, and scale.
//
// Create nodes with typed constructors: [NewGroup], [NewCube],
// [NewCylinder], [NewPlane], [NewModel], [NewText], [NewCollider], and
// [NewPointLight].
//
//	room := sequoia.NewGroup("room")
//	scene.Root().AddChild(room)
//
//	crate := sequoia.NewCube("crate")
//	crate.Position = mgl32.Vec3{0, 0.5, -3}
//	crate.Material = sequoia.Plastic(0.8, 0.5, 0.2)
//	room.AddChild(crate)
//
// # Key features
//
// Sequoia includes planar projected shadows, exponential fog, point and
// directional lights, oriented-box collision with capsule players, glTF
// model import, stroke-font 3D text, camera flights (via [gween]),
// scripted walkthroughs with screenshot capture, and ECS integration
// (via the [Donburi] adapter in sequoia/ecs).
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sequoia
