package henhouse

import "sort"

// Renderer consumes the scene's draw list. SubmitForDraw is called once per
// drawable entity, parents before their children, with the entity's world
// transform and resource handles already current for this tick.
type Renderer interface {
	SubmitForDraw(e *Entity, cam CameraState)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(e *Entity, cam CameraState)

// SubmitForDraw calls f(e, cam).
func (f RendererFunc) SubmitForDraw(e *Entity, cam CameraState) {
	f(e, cam)
}

// drawCommand is a single draw instruction emitted during traversal.
type drawCommand struct {
	entity *Entity
	blend  bool
}

// Draw traverses the active set depth-first and submits every visible,
// drawable entity to r. Opaque entities are submitted first, then blended
// ones, each group in tree order. A blended entity defers its whole subtree to
// the blended group so children still follow their parent. An invisible
// entity hides its subtree. Returns the number of submissions.
func (s *Scene) Draw(r Renderer, cam CameraState) int {
	s.commands = s.commands[:0]
	for _, root := range s.roots {
		s.traverse(root, false)
	}
	sort.SliceStable(s.commands, func(i, j int) bool {
		return !s.commands[i].blend && s.commands[j].blend
	})
	for i := range s.commands {
		r.SubmitForDraw(s.commands[i].entity, cam)
	}
	return len(s.commands)
}

func (s *Scene) traverse(e *Entity, deferred bool) {
	if !e.Visible {
		return
	}
	if e.Drawable() {
		deferred = deferred || e.Blend
		s.commands = append(s.commands, drawCommand{entity: e, blend: deferred})
	}
	for _, c := range e.children {
		s.traverse(c, deferred)
	}
}

// Drawable reports whether the entity has anything to submit: geometry or a
// particle emitter.
func (e *Entity) Drawable() bool {
	return e.Resources.Geometry != nil || e.Emitter != nil
}
