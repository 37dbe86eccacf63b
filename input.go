package sequoia

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ReadMoveIntent polls the held movement keys: WASD plus arrows, space
// to jump.
func ReadMoveIntent() MoveIntent {
	return MoveIntent{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Jump:    ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// interactPressed reports a one-shot interact trigger: left click or E.
func interactPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeyE)
}

// lookState derives per-frame mouse deltas from the captured cursor
// position. The first sample after capture only primes the baseline, so
// pointer-lock jumps never spin the camera.
type lookState struct {
	lastX  int
	lastY  int
	primed bool
}

func (l *lookState) delta() (dx, dy float32) {
	x, y := ebiten.CursorPosition()
	if !l.primed {
		l.lastX, l.lastY = x, y
		l.primed = true
		return 0, 0
	}
	dx = float32(x - l.lastX)
	dy = float32(y - l.lastY)
	l.lastX, l.lastY = x, y
	return dx, dy
}
