package henhouse

import (
	"testing"
)

type recordingRenderer struct {
	names []string
	cams  []CameraState
}

func (r *recordingRenderer) SubmitForDraw(e *Entity, cam CameraState) {
	r.names = append(r.names, e.Name)
	r.cams = append(r.cams, cam)
}

func drawable(name string, kind Kind) *Entity {
	e := NewEntity(name, kind)
	e.Resources.Geometry = &ResourceHandle{Name: name, Type: ResourceMesh}
	return e
}

func assertNames(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("submitted %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("submission %d = %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestDrawTreeOrder(t *testing.T) {
	s := NewScene()
	a := drawable("a", KindProp)
	a.AddChild(drawable("a1", KindProp))
	a.AddChild(drawable("a2", KindProp))
	s.Add(a)
	s.Add(drawable("b", KindProp))

	r := &recordingRenderer{}
	n := s.Draw(r, CameraState{})
	if n != 4 {
		t.Errorf("Draw = %d, want 4", n)
	}
	assertNames(t, r.names, []string{"a", "a1", "a2", "b"})
}

func TestDrawOpaqueBeforeBlended(t *testing.T) {
	s := NewScene()
	fx := NewEffect("fx", EffectFeather, 1, EmitterConfig{})
	missile := drawable("missile", KindProjectile)
	missile.AddChild(fx)
	s.Add(missile)
	glass := drawable("glass", KindProp)
	glass.Blend = true
	s.Add(glass)
	s.Add(drawable("rock", KindProp))

	r := &recordingRenderer{}
	s.Draw(r, CameraState{})
	assertNames(t, r.names, []string{"missile", "rock", "fx", "glass"})
}

func TestDrawBlendedParentPrecedesOpaqueChild(t *testing.T) {
	s := NewScene()
	glow := drawable("glow", KindProp)
	glow.Blend = true
	glow.AddChild(drawable("core", KindProp))
	s.Add(glow)
	s.Add(drawable("rock", KindProp))

	r := &recordingRenderer{}
	s.Draw(r, CameraState{})
	assertNames(t, r.names, []string{"rock", "glow", "core"})
}

func TestDrawInvisibleHidesSubtree(t *testing.T) {
	s := NewScene()
	rig := NewEntity("rig", KindPlayer)
	body := drawable("body", KindProp)
	body.AddChild(drawable("wing", KindProp))
	rig.AddChild(body)
	s.Add(rig)
	s.Add(drawable("ground", KindProp))

	body.Visible = false
	r := &recordingRenderer{}
	s.Draw(r, CameraState{})
	assertNames(t, r.names, []string{"ground"})
}

func TestDrawSkipsNonDrawable(t *testing.T) {
	s := NewScene()
	rig := NewEntity("rig", KindPlayer)
	rig.AddChild(drawable("body", KindProp))
	s.Add(rig)

	r := &recordingRenderer{}
	s.Draw(r, CameraState{})
	assertNames(t, r.names, []string{"body"})
}

func TestDrawPassesCamera(t *testing.T) {
	s := NewScene()
	s.Add(drawable("a", KindProp))
	cam := CameraState{Mode: CameraOverlook}

	r := &recordingRenderer{}
	s.Draw(r, cam)
	if len(r.cams) != 1 || r.cams[0].Mode != CameraOverlook {
		t.Errorf("camera not forwarded: %+v", r.cams)
	}
}

func TestRendererFunc(t *testing.T) {
	s := NewScene()
	s.Add(drawable("a", KindProp))
	calls := 0
	s.Draw(RendererFunc(func(*Entity, CameraState) { calls++ }), CameraState{})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDrawReusesCommandBuffer(t *testing.T) {
	s := NewScene()
	for range 10 {
		s.Add(drawable("a", KindProp))
	}
	r := RendererFunc(func(*Entity, CameraState) {})
	s.Draw(r, CameraState{})
	before := cap(s.commands)
	s.Draw(r, CameraState{})
	if cap(s.commands) != before {
		t.Error("command buffer should be reused between frames")
	}
}
