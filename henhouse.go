package henhouse

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis vectors used throughout the engine. The world is Y-up.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Kind selects the behavior an Entity runs each tick. It is assigned once at
// construction and never derived from the entity's name.
type Kind uint8

const (
	KindProp       Kind = iota // static or decorative part, no behavior
	KindPlayer                 // driven by the input collaborator
	KindPatrol                 // drone: approach/idle toward the player's lead point
	KindGuardian               // hen: wanders, warns prey, blocks consumption
	KindPrey                   // chicken: wanders, flees the escape point
	KindProjectile             // missile
	KindEffect                 // particle effect (feather, tornado, explosion)
	KindBackdrop               // skybox that tracks the player
	KindMarker                 // tornado aim marker
)

var kindNames = [...]string{
	KindProp:       "prop",
	KindPlayer:     "player",
	KindPatrol:     "patrol",
	KindGuardian:   "guardian",
	KindPrey:       "prey",
	KindProjectile: "projectile",
	KindEffect:     "effect",
	KindBackdrop:   "backdrop",
	KindMarker:     "marker",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// EffectType tells the renderer which particle program to use for a KindEffect entity.
type EffectType uint8

const (
	EffectNone EffectType = iota
	EffectFeather
	EffectTornado
	EffectExplosion
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventConsumed      EventType = iota // prey eaten by a melee probe
	EventBlocked                        // melee probe blocked by an alert guardian
	EventProjectileHit                  // projectile struck a patrol or guardian
	EventStunned                        // an entity received a stun
	EventRammed                         // a patrol collided with the player
	EventDestroyed                      // an entity was swept out of the active set
)

// InteractionEvent carries interaction data for an EventSink.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	Name     string
	Kind     Kind
	Position mgl32.Vec3
	// Count is the number of prey consumed (EventConsumed) or the stun
	// duration in ticks (EventStunned).
	Count int
}

// EventSink receives interaction events emitted by the resolver and sweep.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// Range is a general-purpose min/max range.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Random returns a random float32 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float32 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Random returns a random int in [Min, Max] drawn from rng.
func (r IntRange) Random(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.IntN(r.Max-r.Min+1)
}

// horizontal drops the Y component of v.
func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}
