// Package termview draws a henhouse Game as a top-down map in a terminal and
// reads play input from tcell key events.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/henhouse"
)

// glyph is how one kind of entity appears on the map.
type glyph struct {
	r     rune
	style tcell.Style
}

var kindGlyphs = map[henhouse.Kind]glyph{
	henhouse.KindPlayer:     {'@', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)},
	henhouse.KindPatrol:     {'D', tcell.StyleDefault.Foreground(tcell.ColorSilver)},
	henhouse.KindGuardian:   {'H', tcell.StyleDefault.Foreground(tcell.ColorOrange)},
	henhouse.KindPrey:       {'c', tcell.StyleDefault.Foreground(tcell.ColorWhite)},
	henhouse.KindProjectile: {'*', tcell.StyleDefault.Foreground(tcell.ColorRed)},
	henhouse.KindMarker:     {'X', tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)},
	henhouse.KindEffect:     {'~', tcell.StyleDefault.Foreground(tcell.ColorPurple)},
}

var nameGlyphs = map[string]glyph{
	henhouse.NameHouse: {'^', tcell.StyleDefault.Foreground(tcell.ColorMaroon)},
	henhouse.NameLake:  {'o', tcell.StyleDefault.Foreground(tcell.ColorBlue)},
}

// View is a henhouse.Renderer that plots root entities on a top-down grid
// centered on a point, usually the player. Only roots are plotted; parts of
// a rig share its cell.
type View struct {
	screen tcell.Screen
	// Center is the world point shown in the middle of the map.
	Center mgl32.Vec3
	// UnitsPerCell is the world distance across one terminal column. Rows
	// cover twice that to keep the map roughly square.
	UnitsPerCell float32
}

// NewView returns a View drawing to screen at 2 world units per column.
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen, UnitsPerCell: 2}
}

// Cell maps a world position to a map cell. ok is false outside the map
// area, which excludes the bottom status row.
func (v *View) Cell(p mgl32.Vec3) (x, y int, ok bool) {
	w, h := v.screen.Size()
	h-- // status row
	dx := (p.X() - v.Center.X()) / v.UnitsPerCell
	dz := (p.Z() - v.Center.Z()) / (2 * v.UnitsPerCell)
	x = w/2 + int(roundHalfAway(dx))
	y = h/2 + int(roundHalfAway(dz))
	ok = x >= 0 && x < w && y >= 0 && y < h
	return x, y, ok
}

// SubmitForDraw plots e if it is a root with a glyph.
func (v *View) SubmitForDraw(e *henhouse.Entity, _ henhouse.CameraState) {
	if e.Parent != nil {
		return
	}
	g, ok := nameGlyphs[e.Name]
	if !ok {
		g, ok = kindGlyphs[e.Kind]
	}
	if !ok {
		return
	}
	if x, y, in := v.Cell(e.WorldPosition()); in {
		v.screen.SetContent(x, y, g.r, nil, g.style)
	}
}

// Frame clears the screen, draws g centered on its player, prints the status
// row, and shows the result.
func (v *View) Frame(g *henhouse.Game) {
	v.screen.Clear()
	if p := g.Player(); p != nil {
		v.Center = p.WorldPosition()
	}
	if g.State() == henhouse.StatePlaying {
		g.Scene().Walk(func(e *henhouse.Entity) bool {
			v.SubmitForDraw(e, henhouse.CameraState{})
			return false
		})
		// The player goes last so it is never hidden.
		if p := g.Player(); p != nil {
			v.SubmitForDraw(p, henhouse.CameraState{})
		}
	}
	v.status(Status(g))
	v.screen.Show()
}

func (v *View) status(s string) {
	w, h := v.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for x := range w {
		r := ' '
		if x < len(s) {
			r = rune(s[x])
		}
		v.screen.SetContent(x, h-1, r, nil, style)
	}
}

// Status returns the one-line status for g.
func Status(g *henhouse.Game) string {
	switch g.State() {
	case henhouse.StateTitle:
		return "HENHOUSE  ENTER start  Q quit"
	case henhouse.StateWon:
		return fmt.Sprintf("WON with health %.0f  ENTER again  Q quit", g.Health())
	case henhouse.StateLost:
		return "LOST  ENTER again  Q quit"
	}
	s := fmt.Sprintf("HP %5.1f  EN %5.1f", g.Health(), g.Energy())
	if p := g.Player(); p != nil {
		pos := p.WorldPosition()
		s += fmt.Sprintf("  ALT %5.1f  SPD %.2f", pos.Y(), p.Speed)
		if p.Stunned() {
			s += "  STUNNED"
		}
	}
	if _, ok := g.Aiming(); ok {
		s += "  AIM ijkl, t release"
	}
	return s
}

func roundHalfAway(f float32) float32 {
	if f < 0 {
		return -float32(int(-f + 0.5))
	}
	return float32(int(f + 0.5))
}
