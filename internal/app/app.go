//go:build ebiten

package app

import (
	"image/color"
	"time"

	"forest-fire/internal/core"
	"forest-fire/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const statusHeight = 18

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	pacer   *core.FixedStep

	scale    int
	tps      int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		pacer:   core.NewFixedStep(cfg.TPS),
		scale:   cfg.Scale,
		tps:     cfg.TPS,
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) error {
	if err := g.sim.Reset(seed); err != nil {
		return err
	}
	g.seed = seed
	size := g.sim.Size()
	if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter = render.NewGridPainter(size.W, size.H)
	}
	g.tickOnce = false
	g.paused = false
	return nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.setTPS(g.tps * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.setTPS(g.tps / 2)
	}

	if g.tickOnce || (!g.paused && g.pacer.ShouldStep()) {
		if g.sim.Step() {
			g.paused = true
		}
		g.tickOnce = false
	}
	return nil
}

func (g *Game) setTPS(tps int) {
	g.tps = min(max(tps, 1), 240)
	g.pacer.SetTPS(g.tps)
}

// Draw renders the current simulation state and a status line below it.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)

	status := g.sim.Name()
	if r, ok := g.sim.(core.StatusReporter); ok {
		status = r.Status()
	}
	if g.paused {
		status += "  [paused]"
	}
	h := g.sim.Size().H * g.scale
	text.Draw(screen, status, basicfont.Face7x13, 4, h+statusHeight-5, color.White)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H*g.scale + statusHeight
}
