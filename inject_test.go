package henhouse

import "testing"

func TestInjectPressFiresOnce(t *testing.T) {
	g := startGame(t, quietConfig())
	g.InjectPress(Input{Fire: true})
	if g.PendingInput() != 1 {
		t.Fatalf("pending = %d, want 1", g.PendingInput())
	}

	g.Update(tickSeconds, Input{})
	if g.PendingInput() != 0 {
		t.Errorf("pending = %d after one frame", g.PendingInput())
	}
	if n := g.Scene().Count(KindProjectile); n != 2 {
		t.Errorf("projectiles = %d, want 2", n)
	}
}

func TestInjectHold(t *testing.T) {
	g := startGame(t, quietConfig())
	g.InjectHold(Input{Accelerate: true}, 3)
	if g.PendingInput() != 3 {
		t.Fatalf("pending = %d, want 3", g.PendingInput())
	}
	for range 3 {
		g.Update(tickSeconds, Input{})
	}
	cfg := DefaultConfig().Player
	assertNear(t, "speed", g.Player().Speed, 3*(cfg.Accelerate-cfg.Drag))

	g.Update(tickSeconds, Input{})
	if g.Player().Acceleration != 0 {
		t.Error("hold should end after its frames")
	}
}

func TestInjectHoldMinimumOneFrame(t *testing.T) {
	g := startGame(t, quietConfig())
	g.InjectHold(Input{Brake: true}, 0)
	if g.PendingInput() != 1 {
		t.Errorf("pending = %d, want 1", g.PendingInput())
	}
}

func TestInjectMergesWithLiveInput(t *testing.T) {
	g := startGame(t, quietConfig())
	g.InjectInput(Input{Yaw: 1})
	before := g.Player().ForwardDir()
	g.Update(0, Input{Yaw: -1})
	assertVec(t, "net turn is zero", g.Player().ForwardDir(), before)
}

func TestInjectStartLeavesTitle(t *testing.T) {
	g, err := NewGame(quietConfig(), DefaultResources(), WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	g.InjectPress(Input{Start: true})
	g.Update(0, Input{})
	if g.State() != StatePlaying {
		t.Errorf("State = %v, want playing", g.State())
	}
}

func TestInputMerge(t *testing.T) {
	a := Input{Pitch: 1, AimX: -1, Fire: true}
	b := Input{Pitch: 2, AimZ: 1, Melee: true}
	got := a.Merge(b)
	want := Input{Pitch: 3, AimX: -1, AimZ: 1, Fire: true, Melee: true}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}
