package henhouse

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Constructor defaults ---

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity("test", KindPrey)
	if e.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if e.Name != "test" || e.Kind != KindPrey {
		t.Errorf("Name/Kind = %q/%v", e.Name, e.Kind)
	}
	if e.Scale != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want unit", e.Scale)
	}
	if e.Orientation != mgl32.QuatIdent() {
		t.Errorf("Orientation = %v, want identity", e.Orientation)
	}
	if !e.ConstantRender {
		t.Error("entities should be permanent by default")
	}
	if !e.Visible {
		t.Error("Visible should be true")
	}
	if e.Drawable() {
		t.Error("an entity without resources is not drawable")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewEntity("a", KindProp)
	b := NewEntity("b", KindProp)
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

func TestNewEffect(t *testing.T) {
	e := NewEffect("boom", EffectExplosion, 0.4, EmitterConfig{Burst: 4})
	if e.Kind != KindEffect || e.Effect != EffectExplosion {
		t.Errorf("Kind/Effect = %v/%v", e.Kind, e.Effect)
	}
	if e.ConstantRender || e.LifeTime != 0.4 {
		t.Errorf("lifetime not set: constant=%v life=%v", e.ConstantRender, e.LifeTime)
	}
	if !e.Blend || e.Emitter == nil {
		t.Error("effects blend and carry an emitter")
	}
	if !e.Drawable() {
		t.Error("an effect should be drawable")
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindPlayer:   "player",
		KindPatrol:   "patrol",
		KindGuardian: "guardian",
		KindPrey:     "prey",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewEntity("parent", KindProp)
	child := NewEntity("child", KindProp)
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child should be first child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewEntity("a", KindProp)
	b := NewEntity("b", KindProp)
	c := NewEntity("c", KindProp)
	a.AddChild(c)
	b.AddChild(c)

	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if c.Parent != b {
		t.Error("c should belong to b")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewEntity("a", KindProp)
	b := NewEntity("b", KindProp)
	a.AddChild(b)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewEntity("a", KindProp).AddChild(nil)
}

func TestAddChildAt(t *testing.T) {
	p := NewEntity("p", KindProp)
	a := NewEntity("a", KindProp)
	b := NewEntity("b", KindProp)
	c := NewEntity("c", KindProp)
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)

	for i, want := range []*Entity{a, b, c} {
		if p.ChildAt(i) != want {
			t.Errorf("child %d = %q, want %q", i, p.ChildAt(i).Name, want.Name)
		}
	}
}

func TestRemoveChild(t *testing.T) {
	p := NewEntity("p", KindProp)
	c := NewEntity("c", KindProp)
	p.AddChild(c)
	p.RemoveChild(c)

	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("child should be detached")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewEntity("p", KindProp)
	c := NewEntity("c", KindProp)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.RemoveChild(c)
}

func TestSetParentNilDetaches(t *testing.T) {
	p := NewEntity("p", KindProp)
	c := NewEntity("c", KindProp)
	c.SetParent(p)
	if c.Parent != p {
		t.Fatal("SetParent should attach")
	}
	c.SetParent(nil)
	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("SetParent(nil) should detach")
	}
}

func TestRootAndFindByName(t *testing.T) {
	root := NewEntity("root", KindProp)
	body := NewEntity("body", KindProp)
	wing := NewEntity("wing", KindProp)
	root.AddChild(body)
	body.AddChild(wing)

	if wing.Root() != root {
		t.Error("Root should walk to the top")
	}
	if root.FindByName("wing") != wing {
		t.Error("FindByName should find nested descendants")
	}
	if root.FindByName("root") != nil {
		t.Error("FindByName should not match the receiver")
	}
	if root.FindByName("tail") != nil {
		t.Error("FindByName should return nil on miss")
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewEntity("root", KindProp)
	a := NewEntity("a", KindProp)
	a1 := NewEntity("a1", KindProp)
	b := NewEntity("b", KindProp)
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var names []string
	root.Walk(func(e *Entity) bool {
		names = append(names, e.Name)
		return e != a
	})
	want := []string{"root", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, names[i], want[i])
		}
	}
}

// --- Lifecycle flags ---

func TestDestroyIdempotent(t *testing.T) {
	e := NewEntity("e", KindPrey)
	e.Destroy()
	e.Destroy()
	if !e.ShouldBeDestroyed() {
		t.Error("should be flagged")
	}
}

func TestStunFor(t *testing.T) {
	e := NewEntity("e", KindGuardian)
	e.StunFor(10)
	e.StunFor(5)
	if e.Stun != 10 {
		t.Errorf("Stun = %d, want 10 (StunFor never shortens)", e.Stun)
	}
	if !e.Stunned() {
		t.Error("should be stunned")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	p := NewEntity("p", KindProp)
	c := NewEntity("c", KindProp)
	g := NewEntity("g", KindProp)
	p.AddChild(c)
	c.AddChild(g)

	holder := NewEntity("holder", KindProp)
	holder.AddChild(p)
	p.Dispose()

	for _, e := range []*Entity{p, c, g} {
		if !e.IsDisposed() {
			t.Errorf("%s should be disposed", e.Name)
		}
		if e.Parent != nil {
			t.Errorf("%s.Parent should be nil", e.Name)
		}
	}
	if holder.NumChildren() != 0 {
		t.Error("disposed entity should be removed from its parent")
	}
	p.Dispose() // second call is a no-op
}
