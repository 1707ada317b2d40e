// Package preview runs a henhouse Game in an ebiten window with a flat
// square-per-entity renderer. It is a tuning aid, not a mesh pipeline.
package preview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/henhouse"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ScreenshotDir receives PNGs taken with the screenshot key. Empty means
	// "screenshots".
	ScreenshotDir string
	Bindings      *Bindings
	// Sky fills the background each frame.
	Sky color.RGBA
}

// Run opens a window and drives g until the window closes or the quit key
// is pressed.
func Run(g *henhouse.Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Sky == (color.RGBA{}) {
		cfg.Sky = color.RGBA{110, 160, 220, 255}
	}
	b := DefaultBindings()
	if cfg.Bindings != nil {
		b = *cfg.Bindings
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	shell := &gameShell{
		game:     g,
		cfg:      cfg,
		bindings: b,
		keys:     Keyboard,
		renderer: NewRenderer(cfg.Width, cfg.Height),
		shots:    &shotQueue{dir: cfg.ScreenshotDir},
	}
	g.Camera().SetViewport(cfg.Width, cfg.Height)
	return ebiten.RunGame(shell)
}

// gameShell adapts a Game to ebiten.Game.
type gameShell struct {
	game     *henhouse.Game
	cfg      RunConfig
	bindings Bindings
	keys     KeySource
	renderer *Renderer
	shots    *shotQueue
}

func (s *gameShell) Update() error {
	if s.keys.JustPressed(s.bindings.Quit) {
		return ebiten.Termination
	}
	if s.keys.JustPressed(s.bindings.Screenshot) {
		s.shots.add(s.game.State().String())
	}
	return s.game.Update(1/float64(ebiten.TPS()), s.bindings.Read(s.keys))
}

func (s *gameShell) Draw(screen *ebiten.Image) {
	screen.Fill(s.cfg.Sky)
	if s.game.State() == henhouse.StatePlaying {
		s.game.Draw(s.renderer)
		s.renderer.Flush(screen)
	}
	drawHUD(screen, s.game, s.cfg.ShowFPS)
	s.shots.flush(screen)
}

func (s *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.renderer.Width || outsideHeight != s.renderer.Height {
		s.renderer.Width, s.renderer.Height = outsideWidth, outsideHeight
		s.renderer.PixelsPerUnit = float32(outsideHeight)
		s.game.Camera().SetViewport(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
