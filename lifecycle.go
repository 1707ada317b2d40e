package henhouse

// lifetimeEpsilon absorbs accumulated rounding so an entity with lifetime L
// expires on tick round(L/step).
const lifetimeEpsilon = 1e-9

// advanceLifecycle ticks the entity's render clock and stun counter. It
// reports whether the entity was stunned at the start of the tick.
func advanceLifecycle(e *Entity, step float64) bool {
	if !e.ConstantRender {
		e.RenderTime += step
		if e.RenderTime >= e.LifeTime-lifetimeEpsilon {
			e.shouldBeDestroyed = true
		}
	}
	if e.Stun > 0 {
		e.Stun--
		return true
	}
	return false
}

// Sweep removes every entity flagged for destruction from the active set.
// A removed entity takes its whole subtree with it. The sweep hook runs once
// per flagged entity before disposal; entities it returns become new roots.
// Returns the number of entities removed, descendants included.
func (s *Scene) Sweep() int {
	removed := 0
	var spawned []*Entity

	kept := s.roots[:0]
	for _, r := range s.roots {
		if r.shouldBeDestroyed {
			removed += s.discard(r, &spawned)
			continue
		}
		removed += s.sweepChildren(r, &spawned)
		kept = append(kept, r)
	}
	clear(s.roots[len(kept):])
	s.roots = kept

	for _, e := range spawned {
		s.Add(e)
	}
	if removed > 0 {
		logger.Debug("sweep", "removed", removed, "spawned", len(spawned))
	}
	return removed
}

func (s *Scene) sweepChildren(e *Entity, spawned *[]*Entity) int {
	removed := 0
	i := 0
	for i < len(e.children) {
		c := e.children[i]
		if c.shouldBeDestroyed {
			removed += s.discard(c, spawned)
			e.RemoveChildAt(i)
			continue
		}
		removed += s.sweepChildren(c, spawned)
		i++
	}
	return removed
}

// discard runs the hook and emits a destroy event for e and for every flagged
// descendant, then disposes the subtree. Returns the number of entities
// disposed.
func (s *Scene) discard(e *Entity, spawned *[]*Entity) int {
	n := 0
	e.Walk(func(c *Entity) bool {
		n++
		if c == e || c.shouldBeDestroyed {
			if s.hook != nil {
				*spawned = append(*spawned, s.hook(c)...)
			}
			s.emit(EventDestroyed, c, subtreeSize(c))
		}
		if s.player == c {
			s.player = nil
		}
		return true
	})
	e.dispose()
	return n
}

func subtreeSize(e *Entity) int {
	n := 0
	e.Walk(func(*Entity) bool {
		n++
		return true
	})
	return n
}
