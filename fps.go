package chartview

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the FPS text is redrawn.
const fpsRefresh = 0.5

// fpsOverlay displays the current FPS and TPS in a corner of the screen.
// The text is redrawn into its own image every ~0.5 seconds.
type fpsOverlay struct {
	img       *ebiten.Image
	sinceDraw float64
	everDrawn bool
}

func newFPSOverlay() *fpsOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsOverlay{img: ebiten.NewImage(100, 32)}
}

// update advances the refresh timer by dt seconds and redraws the text
// when it expires.
func (f *fpsOverlay) update(dt float64) {
	f.sinceDraw += dt
	if f.everDrawn && f.sinceDraw < fpsRefresh {
		return
	}
	f.sinceDraw = 0
	f.everDrawn = true

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(f.img, nil)
}
