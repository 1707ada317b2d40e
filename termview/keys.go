package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/henhouse"
)

// KeyInput translates one key event into play input. quit reports a request
// to leave. Terminals deliver no release events, so held controls arrive as
// key repeats and last one frame each.
func KeyInput(ev *tcell.EventKey) (in henhouse.Input, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return in, true
	case tcell.KeyUp:
		in.Pitch = 1
	case tcell.KeyDown:
		in.Pitch = -1
	case tcell.KeyLeft:
		in.Yaw = 1
	case tcell.KeyRight:
		in.Yaw = -1
	case tcell.KeyTab:
		in.ToggleView = true
	case tcell.KeyEnter:
		in.Start = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return in, true
		case 's':
			in.Roll = -1
		case 'x':
			in.Roll = 1
		case 'a':
			in.Accelerate = true
		case 'z':
			in.Brake = true
		case 'f':
			in.Fire = true
		case 'v':
			in.Melee = true
		case 't':
			in.Tornado = true
		case 'j':
			in.AimX = -1
		case 'l':
			in.AimX = 1
		case 'i':
			in.AimZ = -1
		case 'k':
			in.AimZ = 1
		}
	}
	return in, false
}
