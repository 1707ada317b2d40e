package preview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/henhouse"
)

// HUDText returns the status lines for g's current state.
func HUDText(g *henhouse.Game) string {
	switch g.State() {
	case henhouse.StateTitle:
		return "HENHOUSE\n\nEat chickens, dodge hens and drones.\nPress ENTER to start."
	case henhouse.StateWon:
		return fmt.Sprintf("You are stuffed. Health %.0f.\nPress ENTER to play again.", g.Health())
	case henhouse.StateLost:
		return "You starved.\nPress ENTER to try again."
	}
	s := fmt.Sprintf("HEALTH %5.1f  ENERGY %5.1f", g.Health(), g.Energy())
	if p := g.Player(); p != nil && p.Stunned() {
		s += "  STUNNED"
	}
	if at, ok := g.Aiming(); ok {
		s += fmt.Sprintf("\nAIM %.0f, %.0f  (IJKL move, T release)", at.X(), at.Z())
	}
	return s
}

// drawHUD prints the status text and, when showFPS is set, frame rates.
func drawHUD(screen *ebiten.Image, g *henhouse.Game, showFPS bool) {
	text := HUDText(g)
	if showFPS {
		text += fmt.Sprintf("\nFPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, text)
}
