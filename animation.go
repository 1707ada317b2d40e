package henhouse

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const swingEpsilon = 1e-5

// Swing rocks an entity back and forth about Axis, within Range radians either
// side of its rest pose, at Speed radians per second. A zero Range spins the
// entity continuously instead. Each half-swing is a gween tween so the motion
// can be eased.
//
// Swing is advanced by the scene before motion integration and writes
// incremental rotations into the entity's orientation.
type Swing struct {
	Axis  mgl32.Vec3
	Range float32
	Speed float32
	Ease  ease.TweenFunc

	angle float32
	dir   float32
	tween *gween.Tween

	paused     bool
	pulseTicks int
	boost      float32
	boostTicks int
}

// NewSwing creates a running swing. A negative speed starts the first
// half-swing in the negative direction.
func NewSwing(axis mgl32.Vec3, rangeRad, speed float32) *Swing {
	s := &Swing{
		Axis:  safeNormalize(axis),
		Range: rangeRad,
		Speed: speed,
		Ease:  ease.Linear,
		dir:   1,
	}
	if speed < 0 {
		s.Speed = -speed
		s.dir = -1
	}
	return s
}

// NewPulseSwing creates a swing that only moves while a Pulse is active.
func NewPulseSwing(axis mgl32.Vec3, rangeRad, speed float32) *Swing {
	s := NewSwing(axis, rangeRad, speed)
	s.paused = true
	return s
}

// Angle returns the current offset from the rest pose in radians.
func (s *Swing) Angle() float32 { return s.angle }

// Boost multiplies the swing speed by factor for the next ticks ticks.
func (s *Swing) Boost(factor float32, ticks int) {
	s.boost = factor
	s.boostTicks = ticks
	s.retarget()
}

// Boosted reports whether a Boost is in effect.
func (s *Swing) Boosted() bool { return s.boostTicks > 0 }

// Pulse runs a paused swing for ticks ticks, after which it snaps back to the
// rest pose.
func (s *Swing) Pulse(ticks int) {
	s.pulseTicks = ticks
	s.retarget()
}

// Busy reports whether a Pulse is running.
func (s *Swing) Busy() bool { return s.pulseTicks > 0 }

func (s *Swing) speed() float32 {
	if s.boostTicks > 0 {
		return s.Speed * s.boost
	}
	return s.Speed
}

// retarget starts a tween from the current angle to the extreme in the
// current direction.
func (s *Swing) retarget() {
	s.tween = nil
	if s.Range == 0 {
		return
	}
	to := s.dir * s.Range
	dist := to - s.angle
	if dist < 0 {
		dist = -dist
	}
	sp := s.speed()
	if sp <= 0 || dist < swingEpsilon {
		return
	}
	fn := s.Ease
	if fn == nil {
		fn = ease.Linear
	}
	s.tween = gween.New(s.angle, to, dist/sp, fn)
}

// advance returns the rotation in radians to apply for a dt-second tick.
func (s *Swing) advance(dt float32) float32 {
	if s.boostTicks > 0 {
		s.boostTicks--
		if s.boostTicks == 0 {
			s.retarget()
		}
	}
	if s.paused {
		if s.pulseTicks <= 0 {
			return 0
		}
		s.pulseTicks--
		if s.pulseTicks == 0 {
			back := -s.angle
			s.angle = 0
			s.tween = nil
			return back
		}
	}

	if s.Range == 0 {
		d := s.dir * s.speed() * dt
		s.angle += d
		return d
	}
	if s.tween == nil {
		s.retarget()
		if s.tween == nil {
			s.dir = -s.dir
			s.retarget()
			if s.tween == nil {
				return 0
			}
		}
	}
	val, finished := s.tween.Update(dt)
	d := val - s.angle
	s.angle = val
	if finished {
		s.dir = -s.dir
		s.retarget()
	}
	return d
}

// apply advances the swing and rotates e in its own frame.
func (s *Swing) apply(e *Entity, dt float32) {
	if d := s.advance(dt); d != 0 {
		e.Rotate(mgl32.QuatRotate(d, s.Axis))
	}
}

// Vec3Tween animates a Vec3 field from its current value to a target. It is
// used for camera glides and marker moves. Call Update(dt) each tick.
type Vec3Tween struct {
	tweens [3]*gween.Tween
	field  *mgl32.Vec3
	target *Entity
	Done   bool
}

// Update advances the tween by dt seconds and writes the result. If the target
// entity has been disposed, Done is set and no write occurs.
func (t *Vec3Tween) Update(dt float32) {
	if t.Done {
		return
	}
	if t.target != nil && t.target.IsDisposed() {
		t.Done = true
		return
	}
	allDone := true
	for i := range t.tweens {
		val, finished := t.tweens[i].Update(dt)
		t.field[i] = val
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone
}

// TweenVec3 creates a tween that animates *field to `to`.
func TweenVec3(field *mgl32.Vec3, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *Vec3Tween {
	t := &Vec3Tween{field: field}
	for i := range t.tweens {
		t.tweens[i] = gween.New(field[i], to[i], duration, fn)
	}
	return t
}

// TweenPosition animates e.Position to `to`.
func TweenPosition(e *Entity, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *Vec3Tween {
	t := TweenVec3(&e.Position, to, duration, fn)
	t.target = e
	return t
}
