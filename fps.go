package sequoia

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// DrawFPS prints the current FPS and TPS in the top-left corner of dst,
// on top of whatever has been rendered there.
func DrawFPS(dst *ebiten.Image) {
	ebitenutil.DebugPrint(dst, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
