package preview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/henhouse"
)

// KeySource reports keyboard state for one frame.
type KeySource interface {
	// Pressed reports whether k is held this frame.
	Pressed(k ebiten.Key) bool
	// JustPressed reports whether k went down this frame.
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Keyboard reads the live ebiten keyboard.
var Keyboard KeySource = ebitenKeys{}

// Bindings maps keys to game intents.
type Bindings struct {
	PitchUp, PitchDown  ebiten.Key
	YawLeft, YawRight   ebiten.Key
	RollLeft, RollRight ebiten.Key
	Accelerate, Brake   ebiten.Key
	Fire, Melee         ebiten.Key
	Tornado, ToggleView ebiten.Key
	Start, Quit         ebiten.Key
	Screenshot          ebiten.Key

	AimLeft, AimRight ebiten.Key
	AimNear, AimFar   ebiten.Key
}

// DefaultBindings returns the standard layout: arrows steer, S/X roll, A and
// Z throttle, F fires, V pecks, T aims and releases the tornado, IJKL move
// the aim marker.
func DefaultBindings() Bindings {
	return Bindings{
		PitchUp:    ebiten.KeyArrowUp,
		PitchDown:  ebiten.KeyArrowDown,
		YawLeft:    ebiten.KeyArrowLeft,
		YawRight:   ebiten.KeyArrowRight,
		RollLeft:   ebiten.KeyS,
		RollRight:  ebiten.KeyX,
		Accelerate: ebiten.KeyA,
		Brake:      ebiten.KeyZ,
		Fire:       ebiten.KeyF,
		Melee:      ebiten.KeyV,
		Tornado:    ebiten.KeyT,
		ToggleView: ebiten.KeyTab,
		Start:      ebiten.KeyEnter,
		Quit:       ebiten.KeyQ,
		Screenshot: ebiten.KeyP,
		AimLeft:    ebiten.KeyJ,
		AimRight:   ebiten.KeyL,
		AimNear:    ebiten.KeyK,
		AimFar:     ebiten.KeyI,
	}
}

// Read builds the frame's Input from keys. Steering and throttle are held;
// everything else fires on the frame the key goes down.
func (b Bindings) Read(keys KeySource) henhouse.Input {
	return henhouse.Input{
		Pitch:      axis(keys.Pressed(b.PitchUp), keys.Pressed(b.PitchDown)),
		Yaw:        axis(keys.Pressed(b.YawLeft), keys.Pressed(b.YawRight)),
		Roll:       axis(keys.Pressed(b.RollRight), keys.Pressed(b.RollLeft)),
		Accelerate: keys.Pressed(b.Accelerate),
		Brake:      keys.Pressed(b.Brake),
		Fire:       keys.Pressed(b.Fire),
		Melee:      keys.JustPressed(b.Melee),
		Tornado:    keys.JustPressed(b.Tornado),
		ToggleView: keys.JustPressed(b.ToggleView),
		Start:      keys.JustPressed(b.Start),
		AimX:       axis(keys.JustPressed(b.AimRight), keys.JustPressed(b.AimLeft)),
		AimZ:       axis(keys.JustPressed(b.AimNear), keys.JustPressed(b.AimFar)),
	}
}

func axis(pos, neg bool) int {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}
