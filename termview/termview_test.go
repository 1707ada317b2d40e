package termview

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/henhouse"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := range w {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

func TestViewCell(t *testing.T) {
	v := NewView(newScreen(t, 40, 21))
	v.Center = mgl32.Vec3{10, 5, 10}

	tests := []struct {
		p    mgl32.Vec3
		x, y int
		ok   bool
	}{
		{mgl32.Vec3{10, 0, 10}, 20, 10, true},
		{mgl32.Vec3{14, 0, 14}, 22, 11, true},
		{mgl32.Vec3{6, 0, 2}, 18, 8, true},
		{mgl32.Vec3{200, 0, 10}, 0, 0, false},
		{mgl32.Vec3{10, 0, 50}, 0, 0, false}, // would land on the status row
	}
	for _, tt := range tests {
		x, y, ok := v.Cell(tt.p)
		if ok != tt.ok || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("Cell(%v) = (%d, %d, %v), want (%d, %d, %v)", tt.p, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}

func TestSubmitPlotsRootsOnly(t *testing.T) {
	screen := newScreen(t, 40, 21)
	v := NewView(screen)

	s := henhouse.NewScene()
	hen := henhouse.NewEntity("hen", henhouse.KindGuardian)
	hen.Position = mgl32.Vec3{4, 0, 0}
	leg := henhouse.NewEntity("leg", henhouse.KindPrey)
	hen.AddChild(leg)
	s.Add(hen)

	v.SubmitForDraw(hen, henhouse.CameraState{})
	v.SubmitForDraw(leg, henhouse.CameraState{})
	screen.Show()

	if r := runeAt(screen, 22, 10); r != 'H' {
		t.Errorf("cell = %q, want 'H'", r)
	}
	if r := runeAt(screen, 20, 10); r == 'c' {
		t.Error("child parts should not be plotted")
	}
}

func TestSubmitNameGlyph(t *testing.T) {
	screen := newScreen(t, 40, 21)
	v := NewView(screen)
	lake := henhouse.NewEntity(henhouse.NameLake, henhouse.KindProp)
	henhouse.NewScene().Add(lake)
	v.SubmitForDraw(lake, henhouse.CameraState{})
	screen.Show()
	if r := runeAt(screen, 20, 10); r != 'o' {
		t.Errorf("cell = %q, want 'o'", r)
	}
}

func TestFrame(t *testing.T) {
	screen := newScreen(t, 60, 25)
	cfg := henhouse.DefaultConfig()
	cfg.Spawn.Patrols, cfg.Spawn.Prey, cfg.Spawn.Guardians, cfg.Spawn.Lakes = 0, 0, 0, 0
	g, err := henhouse.NewGame(cfg, henhouse.DefaultResources(), henhouse.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	v := NewView(screen)

	v.Frame(g)
	if got := rowText(screen, 24); !strings.HasPrefix(got, "HENHOUSE") {
		t.Errorf("title status = %q", got)
	}

	g.Update(0, henhouse.Input{Start: true})
	v.Frame(g)
	if r := runeAt(screen, 30, 12); r != '@' {
		t.Errorf("center = %q, want the player", r)
	}
	if got := rowText(screen, 24); !strings.HasPrefix(got, "HP  50.0  EN  50.0") {
		t.Errorf("status = %q", got)
	}
}

func TestKeyInput(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want henhouse.Input
		quit bool
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), henhouse.Input{Pitch: 1}, false},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), henhouse.Input{Yaw: -1}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), henhouse.Input{Accelerate: true}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'v', tcell.ModNone), henhouse.Input{Melee: true}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone), henhouse.Input{AimZ: -1}, false},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), henhouse.Input{Start: true}, false},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), henhouse.Input{}, true},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), henhouse.Input{}, true},
	}
	for _, tt := range tests {
		got, quit := KeyInput(tt.ev)
		if got != tt.want || quit != tt.quit {
			t.Errorf("KeyInput(%v) = %+v, %v; want %+v, %v", tt.ev.Name(), got, quit, tt.want, tt.quit)
		}
	}
}

func TestKeysMergeIntoFrame(t *testing.T) {
	var pending henhouse.Input
	for _, r := range "aaf" {
		in, _ := KeyInput(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		pending = pending.Merge(in)
	}
	if !pending.Accelerate || !pending.Fire {
		t.Errorf("pending = %+v", pending)
	}
}

func TestStatus(t *testing.T) {
	g, err := henhouse.NewGame(henhouse.DefaultConfig(), henhouse.DefaultResources(), henhouse.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(Status(g), "ENTER") {
		t.Errorf("Status = %q", Status(g))
	}
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := newScreen(t, 10, 5)
	events := make(chan tcell.Event) // never read
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pollEvents(screen, events, done)
		close(finished)
	}()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("poller still blocked after done")
	}
}
