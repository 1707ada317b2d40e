package henhouse

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingSink struct {
	events []InteractionEvent
}

func (r *recordingSink) EmitEvent(e InteractionEvent) {
	r.events = append(r.events, e)
}

func (r *recordingSink) count(typ EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func tick(s *Scene, n int) {
	for range n {
		s.Step()
		s.Sweep()
	}
}

func TestLifetimeExpiresOnExactTick(t *testing.T) {
	s := NewScene(WithSeed(1))
	e := NewEntity("spark", KindEffect)
	e.SetLifeTime(1.0)
	s.Add(e)

	tick(s, 99)
	if s.Len() != 1 {
		t.Fatalf("entity removed after 99 ticks, want it present")
	}
	tick(s, 1)
	if s.Len() != 0 {
		t.Errorf("entity present after 100 ticks, want removed")
	}
	if !e.IsDisposed() {
		t.Error("expired entity should be disposed")
	}
}

func TestPermanentEntityNeverExpires(t *testing.T) {
	s := NewScene(WithSeed(1))
	s.Add(NewEntity("rock", KindProp))
	tick(s, 500)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSweepIdempotent(t *testing.T) {
	s := NewScene(WithSeed(1))
	e := NewEntity("prey", KindPrey)
	s.Add(e)
	e.Destroy()

	if n := s.Sweep(); n != 1 {
		t.Errorf("first sweep removed %d, want 1", n)
	}
	if n := s.Sweep(); n != 0 {
		t.Errorf("second sweep removed %d, want 0", n)
	}
}

func TestSweepCascadesToChildren(t *testing.T) {
	s := NewScene(WithSeed(1))
	missile := NewEntity("missile", KindProjectile)
	feather := NewEntity("feather", KindEffect)
	tip := NewEntity("tip", KindProp)
	missile.AddChild(feather)
	feather.AddChild(tip)
	s.Add(missile)

	missile.Destroy()
	if n := s.Sweep(); n != 3 {
		t.Errorf("removed %d, want 3", n)
	}
	for _, e := range []*Entity{missile, feather, tip} {
		if !e.IsDisposed() {
			t.Errorf("%s should be disposed", e.Name)
		}
	}
}

func TestSweepRemovesFlaggedChildOnly(t *testing.T) {
	s := NewScene(WithSeed(1))
	rig := NewEntity("rig", KindPlayer)
	wing := NewEntity("wing", KindProp)
	tail := NewEntity("tail", KindProp)
	rig.AddChild(wing)
	rig.AddChild(tail)
	s.Add(rig)

	wing.Destroy()
	s.Sweep()

	if rig.NumChildren() != 1 || rig.ChildAt(0) != tail {
		t.Error("only the flagged child should be removed")
	}
	if s.Player() != rig {
		t.Error("player should survive")
	}
}

func TestSweepHookSpawnsRoots(t *testing.T) {
	s := NewScene(WithSeed(1))
	parent := NewEntity("carrier", KindProp)
	parent.Position = mgl32.Vec3{10, 0, 0}
	drone := NewEntity("drone", KindPatrol)
	drone.Position = mgl32.Vec3{0, 5, 0}
	parent.AddChild(drone)
	s.Add(parent)

	var seen mgl32.Vec3
	s.SetSweepHook(func(e *Entity) []*Entity {
		if e.Kind != KindPatrol {
			return nil
		}
		seen = e.WorldPosition()
		boom := NewEntity("explosion", KindEffect)
		boom.Position = seen
		return []*Entity{boom}
	})

	drone.Destroy()
	s.Sweep()

	assertVec(t, "hook saw world position", seen, mgl32.Vec3{10, 5, 0})
	boom := s.FindByName("explosion")
	if boom == nil || boom.Parent != nil {
		t.Fatal("replacement should be a new root")
	}
	assertVec(t, "explosion", boom.WorldPosition(), mgl32.Vec3{10, 5, 0})
}

func TestSweepEmitsDestroyed(t *testing.T) {
	sink := &recordingSink{}
	s := NewScene(WithSeed(1), WithEventSink(sink))
	p := NewEntity("p", KindProp)
	p.AddChild(NewEntity("c", KindProp))
	s.Add(p)
	p.Destroy()
	s.Sweep()

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	if ev := sink.events[0]; ev.Type != EventDestroyed || ev.Count != 2 {
		t.Errorf("event = %+v, want destroyed with count 2", ev)
	}
}

func TestSweepHooksFlaggedDescendants(t *testing.T) {
	sink := &recordingSink{}
	s := NewScene(WithSeed(1), WithEventSink(sink))
	carrier := NewEntity("carrier", KindProp)
	drone := NewEntity("drone", KindPatrol)
	carrier.AddChild(drone)
	carrier.AddChild(NewEntity("hull", KindProp))
	s.Add(carrier)

	var hooked []string
	s.SetSweepHook(func(e *Entity) []*Entity {
		hooked = append(hooked, e.Name)
		return nil
	})

	carrier.Destroy()
	drone.Destroy()
	if n := s.Sweep(); n != 3 {
		t.Errorf("removed %d, want 3", n)
	}
	if len(hooked) != 2 || hooked[0] != "carrier" || hooked[1] != "drone" {
		t.Errorf("hooked %v, want [carrier drone]", hooked)
	}
	if sink.count(EventDestroyed) != 2 {
		t.Fatalf("destroyed events = %d, want 2", sink.count(EventDestroyed))
	}
	if ev := sink.events[1]; ev.Kind != KindPatrol || ev.Count != 1 {
		t.Errorf("event = %+v, want the drone alone", ev)
	}
}

func TestSweepClearsPlayer(t *testing.T) {
	s := NewScene(WithSeed(1))
	rig := NewEntity("rig", KindPlayer)
	s.Add(rig)
	rig.Destroy()
	s.Sweep()
	if s.Player() != nil {
		t.Error("player should be cleared once swept")
	}
}

func TestStunCountsDown(t *testing.T) {
	s := NewScene(WithSeed(1))
	e := NewEntity("drone", KindProp)
	e.Speed = 0.5
	e.StunFor(3)
	s.Add(e)

	tick(s, 3)
	if e.Stun != 0 {
		t.Errorf("Stun = %d, want 0", e.Stun)
	}
	assertVec(t, "held in place", e.Position, mgl32.Vec3{})

	tick(s, 1)
	assertVec(t, "moving again", e.Position, mgl32.Vec3{0, 0, -0.5})
}
