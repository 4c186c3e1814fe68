package chartview

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int

	// ChartX and ChartY place the chart's top-left corner in the window.
	// Charts without a size are sized to fill the rest of the window.
	ChartX, ChartY float64

	// Background fills the window before Draw. Nil means black.
	Background color.Color

	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool

	// Draw renders the chart. It runs every frame.
	Draw func(screen *ebiten.Image, c *Chart)

	// Update, when set, runs every tick after input and before Chart.Update.
	Update func(c *Chart, now time.Duration) error
}

// Run opens a window and drives c with ebiten: pointer and wheel input via
// EbitenInput, Chart.Update every tick, and cfg.Draw every frame. It blocks
// until the window closes.
func Run(c *Chart, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if !c.vp.HasChartDimens() {
		c.SetSize(float64(cfg.Width)-cfg.ChartX, float64(cfg.Height)-cfg.ChartY)
	}
	in := NewEbitenInput()
	in.OffsetX, in.OffsetY = cfg.ChartX, cfg.ChartY

	g := &runGame{chart: c, input: in, cfg: cfg}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(g)
}

type runGame struct {
	chart *Chart
	input *EbitenInput
	cfg   RunConfig
	fps   *fpsOverlay
	ticks int64
}

// now derives a monotonic timestamp from the tick count, so replays and
// scripted input see the same timing on every run.
func (g *runGame) now() time.Duration {
	return time.Duration(g.ticks) * time.Second / time.Duration(ebiten.TPS())
}

func (g *runGame) Update() error {
	g.ticks++
	now := g.now()
	g.input.Poll(g.chart, now)
	if g.cfg.Update != nil {
		if err := g.cfg.Update(g.chart, now); err != nil {
			return err
		}
	}
	g.chart.Update(now)
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *runGame) Draw(screen *ebiten.Image) {
	bg := g.cfg.Background
	if bg == nil {
		bg = color.Black
	}
	screen.Fill(bg)
	if g.cfg.Draw != nil {
		g.cfg.Draw(screen, g.chart)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *runGame) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
