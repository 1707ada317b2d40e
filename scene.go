package henhouse

import (
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SweepHook is called for every entity the sweep removes, before it is
// disposed. Returned entities are added to the active set as new roots in the
// same frame.
type SweepHook func(e *Entity) []*Entity

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithSeed makes every random draw in the scene reproducible.
func WithSeed(seed uint64) SceneOption {
	return func(s *Scene) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) SceneOption {
	return func(s *Scene) {
		s.cfg = cfg
	}
}

// WithEventSink attaches an EventSink at construction.
func WithEventSink(sink EventSink) SceneOption {
	return func(s *Scene) {
		s.sink = sink
	}
}

// Scene owns the active entity set: an ordered list of roots, each carrying
// its own subtree. It runs the per-tick pipeline (behaviors, interactions,
// integration) and the end-of-frame sweep.
type Scene struct {
	cfg   Config
	roots []*Entity
	rng   *rand.Rand
	sink  EventSink
	hook  SweepHook
	debug bool

	player  *Entity
	signals Signals

	suckPoint mgl32.Vec3
	suckTicks int

	accum float64
	ticks uint64

	commands []drawCommand

	// per-tick buckets, rebuilt by collect
	guardians   []*Entity
	prey        []*Entity
	patrols     []*Entity
	projectiles []*Entity
	backdrops   []*Entity
}

// NewScene creates an empty scene. Without WithSeed the random source is
// seeded from the clock.
func NewScene(opts ...SceneOption) *Scene {
	s := &Scene{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return s
}

// Config returns the scene's configuration.
func (s *Scene) Config() *Config {
	return &s.cfg
}

// Rand returns the scene's random source.
func (s *Scene) Rand() *rand.Rand {
	return s.rng
}

// Ticks returns the number of ticks run so far.
func (s *Scene) Ticks() uint64 {
	return s.ticks
}

// Add inserts e into the active set as a root, detaching it from any parent
// first, and composes its subtree so world positions are valid immediately.
// The first KindPlayer entity added becomes the scene's player.
func (s *Scene) Add(e *Entity) {
	if e == nil {
		panic("henhouse: cannot add nil entity")
	}
	if globalDebug {
		debugCheckDisposed(e, "Add")
	}
	e.RemoveFromParent()
	for _, r := range s.roots {
		if r == e {
			return
		}
	}
	s.roots = append(s.roots, e)
	updateWorldTransforms(e, mgl32.Ident4())
	if s.player == nil && e.Kind == KindPlayer {
		s.player = e
	}
}

// Remove detaches a root from the active set immediately without disposing
// it. Prefer Destroy plus Sweep during simulation.
func (s *Scene) Remove(e *Entity) bool {
	for i, r := range s.roots {
		if r == e {
			copy(s.roots[i:], s.roots[i+1:])
			s.roots[len(s.roots)-1] = nil
			s.roots = s.roots[:len(s.roots)-1]
			if s.player == e {
				s.player = nil
			}
			return true
		}
	}
	return false
}

// Clear disposes every entity and empties the active set.
func (s *Scene) Clear() {
	for _, r := range s.roots {
		r.dispose()
	}
	clear(s.roots)
	s.roots = s.roots[:0]
	s.player = nil
	s.suckTicks = 0
	s.accum = 0
}

// Entities returns the active roots. The returned slice MUST NOT be mutated.
func (s *Scene) Entities() []*Entity {
	return s.roots
}

// Walk visits every active entity in pre-order, roots in insertion order.
// Returning false from fn skips that entity's subtree.
func (s *Scene) Walk(fn func(*Entity) bool) {
	for _, r := range s.roots {
		r.Walk(fn)
	}
}

// FindByName returns the first entity named name in depth-first order, or
// nil. Misses are logged at debug level.
func (s *Scene) FindByName(name string) *Entity {
	for _, r := range s.roots {
		if r.Name == name {
			return r
		}
		if found := r.FindByName(name); found != nil {
			return found
		}
	}
	logger.Debug("entity not found", "name", name)
	return nil
}

// Count returns the number of active entities of kind k that are not flagged
// for destruction.
func (s *Scene) Count(k Kind) int {
	n := 0
	s.Walk(func(e *Entity) bool {
		if e.Kind == k && !e.shouldBeDestroyed {
			n++
		}
		return true
	})
	return n
}

// Counts returns the number of live entities per kind.
func (s *Scene) Counts() map[Kind]int {
	counts := make(map[Kind]int)
	s.Walk(func(e *Entity) bool {
		if !e.shouldBeDestroyed {
			counts[e.Kind]++
		}
		return true
	})
	return counts
}

// Len returns the total number of entities in the active set.
func (s *Scene) Len() int {
	n := 0
	s.Walk(func(*Entity) bool {
		n++
		return true
	})
	return n
}

// Player returns the entity the behaviors treat as the player.
func (s *Scene) Player() *Entity {
	return s.player
}

// SetPlayer overrides the player entity.
func (s *Scene) SetPlayer(e *Entity) {
	s.player = e
}

// SetSuckPoint activates the suck effect at p for the given number of ticks.
func (s *Scene) SetSuckPoint(p mgl32.Vec3, ticks int) {
	s.suckPoint = p
	s.suckTicks = ticks
}

// SuckPoint returns the active suck point, if any.
func (s *Scene) SuckPoint() (mgl32.Vec3, bool) {
	return s.suckPoint, s.suckTicks > 0
}

// Signals returns the signals published during the most recent tick.
func (s *Scene) Signals() Signals {
	return s.signals
}

// SetSweepHook installs the hook called for each swept entity.
func (s *Scene) SetSweepHook(hook SweepHook) {
	s.hook = hook
}

// SetEventSink sets the optional receiver of interaction events.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-entity
// access panics, tree depth and child count warnings are logged, and per-frame
// timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that entity
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// Advance feeds elapsed wall-clock seconds into the fixed-step accumulator and
// runs as many ticks as have accrued, each followed by a sweep. At most
// Tick.MaxTicksPerFrame ticks run per call; time beyond that is dropped.
// Returns the number of ticks run.
func (s *Scene) Advance(elapsed float64) int {
	if elapsed > 0 {
		s.accum += elapsed
	}
	step := s.cfg.Tick.Step
	limit := s.cfg.Tick.MaxTicksPerFrame
	if limit < 1 {
		limit = 1
	}

	var stats debugStats
	var t0 time.Time
	n := 0
	for s.accum >= step && n < limit {
		s.accum -= step
		if s.debug {
			t0 = time.Now()
		}
		s.Step()
		if s.debug {
			stats.tickTime += time.Since(t0)
			t0 = time.Now()
		}
		stats.swept += s.Sweep()
		if s.debug {
			stats.sweepTime += time.Since(t0)
		}
		n++
	}
	if s.accum >= step {
		s.accum = 0
	}
	if s.debug && n > 0 {
		stats.ticks = n
		stats.entities = s.Len()
		s.debugLog(stats)
	}
	return n
}

// Step runs exactly one tick: behaviors, then interactions, then integration
// and transform composition from every root. It does not sweep.
func (s *Scene) Step() {
	step := s.cfg.Tick.Step
	s.collect()

	s.signals = Signals{Player: s.player}
	if s.suckTicks > 0 {
		s.signals.SuckPoint = s.suckPoint
		s.signals.HasSuck = true
	}

	s.runBehaviors(&s.signals)
	s.resolveInteractions()

	ident := mgl32.Ident4()
	for _, r := range s.roots {
		s.integrate(r, ident, step)
	}

	if s.suckTicks > 0 {
		s.suckTicks--
	}
	s.ticks++
}

// integrate advances e and its subtree by one tick. The parent matrix passed
// in has already been composed this tick.
func (s *Scene) integrate(e *Entity, parent mgl32.Mat4, step float64) {
	stunned := advanceLifecycle(e, step)
	if e.Swing != nil {
		e.Swing.apply(e, float32(step))
	}
	if !e.fixed {
		integrateMotion(e, stunned)
	}
	composeWorld(e, parent)
	if e.Emitter != nil {
		e.Emitter.update(step, e.worldTransform.Col(3).Vec3(), s.rng)
	}
	for _, c := range e.children {
		s.integrate(c, e.worldTransform, step)
	}
}

// collect buckets this tick's live entities by kind.
func (s *Scene) collect() {
	s.guardians = s.guardians[:0]
	s.prey = s.prey[:0]
	s.patrols = s.patrols[:0]
	s.projectiles = s.projectiles[:0]
	s.backdrops = s.backdrops[:0]
	s.Walk(func(e *Entity) bool {
		if e.shouldBeDestroyed {
			return true
		}
		switch e.Kind {
		case KindGuardian:
			s.guardians = append(s.guardians, e)
		case KindPrey:
			s.prey = append(s.prey, e)
		case KindPatrol:
			s.patrols = append(s.patrols, e)
		case KindProjectile:
			s.projectiles = append(s.projectiles, e)
		case KindBackdrop:
			s.backdrops = append(s.backdrops, e)
		}
		return true
	})
}

func (s *Scene) emit(typ EventType, e *Entity, count int) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(InteractionEvent{
		Type:     typ,
		EntityID: e.ID,
		Name:     e.Name,
		Kind:     e.Kind,
		Position: e.WorldPosition(),
		Count:    count,
	})
}
