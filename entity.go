package henhouse

import (
	"github.com/go-gl/mathgl/mgl32"
)

// entityIDCounter is a plain counter; the engine is single-threaded.
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// Confinement limits where an entity's motion may take it. The vertical
// velocity component is dropped when the next position would sink below
// FloorY, and all motion is cancelled when it would leave the sphere of
// Radius around Center.
type Confinement struct {
	FloorY float32
	Center mgl32.Vec3
	Radius float32
}

// Entity is the fundamental simulated unit. A single flat struct is used for
// all kinds; Kind selects behavior in the engine's switch.
type Entity struct {
	// Identity
	ID   uint32
	Name string
	Kind Kind

	// Hierarchy. Parent is a back-reference only; the parent's children
	// slice is the owning edge.
	Parent   *Entity
	children []*Entity

	// Pose (local to Parent)
	Position       mgl32.Vec3
	Orientation    mgl32.Quat
	Scale          mgl32.Vec3
	RotationOrigin mgl32.Vec3

	// Motion. Speed is in world units per tick.
	Speed        float32
	Acceleration float32
	MaxSpeed     float32
	Drag         float32
	Forward      mgl32.Vec3
	Side         mgl32.Vec3
	Up           mgl32.Vec3
	Confine      *Confinement

	// Composed transform, written top-down once per tick.
	worldTransform mgl32.Mat4
	fixed          bool
	fixedTransform mgl32.Mat4

	// Lifecycle
	ConstantRender    bool
	LifeTime          float64
	RenderTime        float64
	shouldBeDestroyed bool
	disposed          bool

	// Behavior state
	Stun              int
	Target            mgl32.Vec3
	Rest              int
	MovingCenter      mgl32.Vec3
	MovingRangeRadius float32
	Home              mgl32.Vec3

	// Animation
	Swing *Swing

	// Rendering
	Visible   bool
	Blend     bool
	Effect    EffectType
	Resources ResourceSet
	Emitter   *ParticleEmitter

	// Metadata
	UserData any
}

func entityDefaults(e *Entity) {
	e.ID = nextEntityID()
	e.Orientation = mgl32.QuatIdent()
	e.Scale = mgl32.Vec3{1, 1, 1}
	e.MaxSpeed = 1
	e.Forward = mgl32.Vec3{0, 0, -1}
	e.Side = mgl32.Vec3{1, 0, 0}
	e.Up = mgl32.Vec3{0, 1, 0}
	e.ConstantRender = true
	e.Visible = true
	e.worldTransform = mgl32.Ident4()
}

// NewEntity creates an entity with identity pose, unit scale, and permanent
// lifetime. Use CreateEntity to attach resources by name.
func NewEntity(name string, kind Kind) *Entity {
	e := &Entity{Name: name, Kind: kind}
	entityDefaults(e)
	return e
}

// NewEffect creates a KindEffect entity that expires after lifeTime seconds of
// simulated time.
func NewEffect(name string, effect EffectType, lifeTime float64, cfg EmitterConfig) *Entity {
	e := NewEntity(name, KindEffect)
	e.Effect = effect
	e.Blend = true
	e.SetLifeTime(lifeTime)
	e.Emitter = newParticleEmitter(cfg)
	return e
}

// --- Tree manipulation ---

// AddChild appends child to this entity's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this entity (cycle).
func (e *Entity) AddChild(child *Entity) {
	if child == nil {
		panic("henhouse: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("henhouse: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Entity) AddChildAt(child *Entity, index int) {
	if child == nil {
		panic("henhouse: cannot add nil child")
	}
	if isAncestor(child, e) {
		panic("henhouse: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(e.children) {
		panic("henhouse: child index out of range")
	}
	child.Parent = e
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
}

// SetParent reparents e under p. A nil p detaches e.
func (e *Entity) SetParent(p *Entity) {
	if p == nil {
		e.RemoveFromParent()
		return
	}
	p.AddChild(e)
}

// RemoveChild detaches child from this entity.
// Panics if child.Parent != e.
func (e *Entity) RemoveChild(child *Entity) {
	if child.Parent != e {
		panic("henhouse: child's parent is not this entity")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (e *Entity) RemoveChildAt(index int) *Entity {
	if index < 0 || index >= len(e.children) {
		panic("henhouse: child index out of range")
	}
	child := e.children[index]
	copy(e.children[index:], e.children[index+1:])
	e.children[len(e.children)-1] = nil
	e.children = e.children[:len(e.children)-1]
	child.Parent = nil
	return child
}

// RemoveFromParent detaches this entity from its parent.
// No-op if this entity has no parent.
func (e *Entity) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity {
	return e.children
}

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int {
	return len(e.children)
}

// ChildAt returns the child at the given index.
func (e *Entity) ChildAt(index int) *Entity {
	return e.children[index]
}

// Root returns the topmost ancestor of e (e itself for a root).
func (e *Entity) Root() *Entity {
	r := e
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// FindByName searches e's descendants depth-first and returns the first whose
// Name matches. e itself is not tested.
func (e *Entity) FindByName(name string) *Entity {
	for _, c := range e.children {
		if c.Name == name {
			return c
		}
		if r := c.FindByName(name); r != nil {
			return r
		}
	}
	return nil
}

// Walk calls fn for e and every descendant in pre-order. Returning false from
// fn skips that entity's subtree.
func (e *Entity) Walk(fn func(*Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// --- Lifecycle flags ---

// Destroy flags the entity for removal at the next sweep. Calling it again is
// a no-op.
func (e *Entity) Destroy() {
	e.shouldBeDestroyed = true
}

// ShouldBeDestroyed reports whether the entity is flagged for removal.
func (e *Entity) ShouldBeDestroyed() bool {
	return e.shouldBeDestroyed
}

// SetLifeTime makes the entity transient: it expires once RenderTime reaches
// lifeTime seconds.
func (e *Entity) SetLifeTime(lifeTime float64) {
	e.ConstantRender = false
	e.LifeTime = lifeTime
	e.RenderTime = 0
}

// Stunned reports whether the entity's motion is currently suppressed.
func (e *Entity) Stunned() bool {
	return e.Stun > 0
}

// StunFor raises the stun counter to at least ticks.
func (e *Entity) StunFor(ticks int) {
	if ticks > e.Stun {
		e.Stun = ticks
	}
}

// --- Disposal ---

// Dispose removes this entity from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Entity) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Entity) dispose() {
	e.disposed = true
	e.shouldBeDestroyed = true
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.Parent = nil
	e.Swing = nil
	e.Emitter = nil
	e.Resources = ResourceSet{}
	e.UserData = nil
}

// IsDisposed returns true if this entity has been disposed.
func (e *Entity) IsDisposed() bool {
	return e.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) entity.
func isAncestor(candidate, entity *Entity) bool {
	for p := entity; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Entity) removeChildByPtr(child *Entity) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
