package henhouse

import "github.com/go-gl/mathgl/mgl32"

// Blocked is returned by ResolveConsumption when an alert guardian covers the
// probe point.
const Blocked = -1

// ResolveConsumption tests a melee probe against every guardian and prey
// within the consume radius. An un-stunned guardian in range blocks the probe
// outright and Blocked is returned with nothing destroyed. Otherwise every prey
// in range is flagged for destruction and the count is returned. Entities
// already flagged are ignored.
func (s *Scene) ResolveConsumption(probe mgl32.Vec3) int {
	r := s.cfg.Interaction.ConsumeRadius
	var caught []*Entity
	var guard *Entity
	s.Walk(func(e *Entity) bool {
		if e.shouldBeDestroyed || guard != nil {
			return true
		}
		switch e.Kind {
		case KindGuardian:
			if !e.Stunned() && e.WorldPosition().Sub(probe).Len() <= r {
				guard = e
			}
		case KindPrey:
			if e.WorldPosition().Sub(probe).Len() <= r {
				caught = append(caught, e)
			}
		}
		return true
	})
	if guard != nil {
		s.emit(EventBlocked, guard, 0)
		return Blocked
	}
	for _, e := range caught {
		e.Destroy()
		s.emit(EventConsumed, e, 1)
	}
	return len(caught)
}

// resolveInteractions runs the per-tick pairwise checks. It reads the buckets
// built by collect, so entities flagged earlier in the same pass are skipped.
func (s *Scene) resolveInteractions() {
	s.resolveProjectiles()
	s.resolveRams()
	s.followBackdrops()
}

// resolveProjectiles destroys patrols and stuns guardians struck by a
// projectile; the projectile is spent either way.
func (s *Scene) resolveProjectiles() {
	cfg := &s.cfg.Interaction
	for _, p := range s.projectiles {
		if p.shouldBeDestroyed {
			continue
		}
		pp := p.WorldPosition()
		for _, t := range s.patrols {
			if t.shouldBeDestroyed {
				continue
			}
			if t.WorldPosition().Sub(pp).Len() <= cfg.HitPatrolRadius {
				t.Destroy()
				p.Destroy()
				s.emit(EventProjectileHit, t, 0)
				break
			}
		}
		if p.shouldBeDestroyed {
			continue
		}
		for _, t := range s.guardians {
			if t.WorldPosition().Sub(pp).Len() <= cfg.HitGuardRadius {
				t.StunFor(cfg.HitStun)
				p.Destroy()
				s.emit(EventProjectileHit, t, 0)
				s.emit(EventStunned, t, cfg.HitStun)
				break
			}
		}
	}
}

// resolveRams stuns the player and destroys any patrol that reached it.
func (s *Scene) resolveRams() {
	if s.player == nil {
		return
	}
	cfg := &s.cfg.Patrol
	pp := s.player.WorldPosition()
	for _, t := range s.patrols {
		if t.shouldBeDestroyed {
			continue
		}
		if t.WorldPosition().Sub(pp).Len() <= cfg.RamRadius {
			t.Destroy()
			s.player.StunFor(cfg.RamStun)
			s.emit(EventRammed, t, 0)
			s.emit(EventStunned, s.player, cfg.RamStun)
		}
	}
}

// followBackdrops pins every backdrop to the player's position.
func (s *Scene) followBackdrops() {
	if s.player == nil {
		return
	}
	pp := s.player.WorldPosition()
	for _, b := range s.backdrops {
		b.Position = pp
	}
}
