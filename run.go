package sequoia

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window and frame loop for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool

	// Player enables first-person movement when set. A nil Player leaves
	// the camera wherever application code puts it.
	Player *Player

	// Walkthrough replaces live input with a scripted sequence.
	Walkthrough *Walkthrough

	// ExitWhenDone closes the window once the walkthrough finishes.
	ExitWhenDone bool
}

// frameInput is one frame of decoded input, from the device or a
// walkthrough script.
type frameInput struct {
	intent   MoveIntent
	interact bool
}

type game struct {
	scene  *Scene
	cfg    RunConfig
	player *Player
	fb     *FrameBuffer
	look   lookState
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := float32(1.0 / float64(ebiten.TPS()))

	var in frameInput
	if g.cfg.Walkthrough != nil {
		in = g.cfg.Walkthrough.step(g.scene)
	} else {
		in.intent = ReadMoveIntent()
		in.interact = interactPressed()
		dx, dy := g.look.delta()
		if dx != 0 || dy != 0 {
			// Screen y grows downward, pitch grows upward.
			g.scene.Camera().Look(dx, -dy)
		}
	}

	if in.interact {
		g.scene.Interact()
	}
	if g.player != nil {
		g.player.Update(g.scene, in.intent, dt)
	}
	g.scene.Update(dt)

	if g.cfg.Walkthrough != nil && g.cfg.Walkthrough.Done() && g.cfg.ExitWhenDone {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.RenderFrame(g.fb)
	g.scene.flushScreenshots(g.fb)
	g.fb.Blit(screen)
	if g.cfg.ShowFPS {
		DrawFPS(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and drives the scene's update/render loop until the
// window closes or Escape is pressed. Blocks until exit.
func Run(scene *Scene, cfg RunConfig) error {
	if scene == nil {
		panic("sequoia: Run called with nil scene")
	}
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 540
	}
	if cfg.Title == "" {
		cfg.Title = "sequoia"
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Walkthrough == nil {
		// Mouse look wants raw deltas, not a visible cursor.
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	g := &game{
		scene:  scene,
		cfg:    cfg,
		player: cfg.Player,
		fb:     NewFrameBuffer(cfg.Width, cfg.Height),
	}
	return ebiten.RunGame(g)
}
