package henhouse

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Signals is the shared per-tick state the behaviors read and publish. It is
// rebuilt at the start of every tick; guardians run before prey so the escape
// point they publish is visible to prey in the same tick.
type Signals struct {
	Player *Entity

	// EscapePoint is the player's ground position, published by any guardian
	// in its warning region.
	EscapePoint mgl32.Vec3
	HasEscape   bool

	SuckPoint mgl32.Vec3
	HasSuck   bool
}

// runBehaviors sets targets, speeds, and headings for every bucketed entity.
func (s *Scene) runBehaviors(sig *Signals) {
	for _, e := range s.guardians {
		s.guardianBehavior(e, sig)
	}
	for _, e := range s.patrols {
		s.patrolBehavior(e, sig)
	}
	for _, e := range s.prey {
		s.preyBehavior(e, sig)
	}
}

// wander runs the Approach/Idle machine shared by every autonomous kind.
//
// Farther than arrive from Target the entity approaches at speed. Within it,
// the entity idles with zero speed while Rest counts down; once Rest is
// exhausted, pick supplies a new target, Rest is redrawn from rest, and face
// turns the entity toward it. flat measures distance on the ground plane.
func (s *Scene) wander(e *Entity, speed, arrive float32, rest IntRange, flat bool,
	pick func() mgl32.Vec3, face func(mgl32.Vec3)) {
	d := e.Target.Sub(e.WorldPosition())
	if flat {
		d = horizontal(d)
	}
	if d.Len() > arrive {
		e.Speed = speed
		return
	}
	if e.Rest <= 0 {
		e.Target = pick()
		e.Rest = rest.Random(s.rng)
		face(e.Target)
		e.Speed = 0
		return
	}
	e.Rest--
	e.Speed = 0
}

// patrolBehavior drives a drone toward the player's projected position.
func (s *Scene) patrolBehavior(e *Entity, sig *Signals) {
	if e.Stunned() {
		e.Speed = 0
		return
	}
	cfg := &s.cfg.Patrol
	pick := func() mgl32.Vec3 {
		if sig.Player == nil {
			return e.WorldPosition()
		}
		return sig.Player.WorldPosition().Add(sig.Player.Velocity().Mul(cfg.Lead))
	}
	s.wander(e, cfg.Speed, cfg.ArriveRadius, cfg.Rest, false, pick, e.PointAt)
	if e.Speed > 0 {
		e.PointAt(e.Target)
	}
}

// guardianBehavior drives a hen: a wide wander around Home while the player is
// far, a tight region in front of the player while it is near.
func (s *Scene) guardianBehavior(e *Entity, sig *Signals) {
	cfg := &s.cfg.Guardian
	pos := e.WorldPosition()

	if sig.HasSuck && pos.Sub(sig.SuckPoint).Len() <= cfg.SuckRadius {
		if !e.Stunned() {
			s.emit(EventStunned, e, cfg.SuckStun)
		}
		e.StunFor(cfg.SuckStun)
	}
	if e.Stunned() {
		e.Speed = 0
		return
	}

	center, radius := e.Home, cfg.HomeRadius
	if p := sig.Player; p != nil {
		pp := p.WorldPosition()
		if horizontal(pp.Sub(pos)).Len() < cfg.AlertDistance {
			ahead := safeNormalize(horizontal(p.ForwardDir())).Mul(cfg.WarnAhead)
			center = s.clampToWorld(mgl32.Vec3{pp[0] + ahead[0], pos[1], pp[2] + ahead[2]})
			radius = cfg.WarnRadius
			sig.EscapePoint = mgl32.Vec3{pp[0], pos[1], pp[2]}
			sig.HasEscape = true
		}
	}
	center[1] = pos[1]
	e.MovingCenter = center
	e.MovingRangeRadius = radius

	// A target left over from the other region is abandoned.
	if horizontal(e.Target.Sub(center)).Len() > radius+cfg.ArriveRadius {
		e.Target = pos
		e.Rest = 0
	}

	pick := func() mgl32.Vec3 { return s.pointInDisc(center, radius) }
	s.wander(e, cfg.Speed, cfg.ArriveRadius, cfg.Rest, true, pick, func(t mgl32.Vec3) { e.FaceToward(t) })
}

// preyBehavior drives a chicken: pulled into the suck point, fleeing the
// escape point, otherwise wandering.
func (s *Scene) preyBehavior(e *Entity, sig *Signals) {
	cfg := &s.cfg.Prey
	pos := e.WorldPosition()

	if sig.HasSuck && pos.Sub(sig.SuckPoint).Len() <= cfg.SuckRadius {
		e.Position = sig.SuckPoint
		e.Speed = 0
		return
	}
	if e.Stunned() {
		e.Speed = 0
		return
	}

	if sig.HasEscape {
		away := horizontal(pos.Sub(sig.EscapePoint))
		if away.Len() <= cfg.EscapeRadius {
			if away.Len() < degenerateEpsilon {
				a := s.rng.Float64() * 2 * math.Pi
				away = mgl32.Vec3{float32(math.Cos(a)), 0, float32(math.Sin(a))}
			}
			flee := s.clampToWorld(pos.Add(away.Mul(cfg.FleeFactor)))
			flee[1] = pos[1]
			e.Target = flee
			e.MovingCenter = flee
			e.Rest = 0
			e.FaceToward(flee)
			e.Speed = cfg.Speed
			return
		}
	}

	if e.MovingRangeRadius == 0 {
		e.MovingRangeRadius = cfg.WanderRadius
	}
	center := e.MovingCenter
	center[1] = pos[1]
	pick := func() mgl32.Vec3 { return s.pointInDisc(center, e.MovingRangeRadius) }
	s.wander(e, cfg.Speed, cfg.ArriveRadius, cfg.Rest, true, pick, func(t mgl32.Vec3) { e.FaceToward(t) })
}

// pointInDisc returns a uniformly distributed point within radius of center on
// center's horizontal plane, clamped to the world.
func (s *Scene) pointInDisc(center mgl32.Vec3, radius float32) mgl32.Vec3 {
	a := s.rng.Float64() * 2 * math.Pi
	r := float64(radius) * math.Sqrt(s.rng.Float64())
	p := mgl32.Vec3{
		center[0] + float32(r*math.Cos(a)),
		center[1],
		center[2] + float32(r*math.Sin(a)),
	}
	return s.clampToWorld(p)
}

// clampToWorld limits the horizontal components of p to the world extent.
func (s *Scene) clampToWorld(p mgl32.Vec3) mgl32.Vec3 {
	ext := s.cfg.World.Extent
	if ext <= 0 {
		return p
	}
	p[0] = mgl32.Clamp(p[0], -ext, ext)
	p[2] = mgl32.Clamp(p[2], -ext, ext)
	return p
}
