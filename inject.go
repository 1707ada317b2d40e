package henhouse

// InjectInput queues a synthetic input frame. Queued frames are consumed one
// per Update and merged with the real input for that frame, so scripted and
// live play can overlap.
func (g *Game) InjectInput(in Input) {
	g.injected = append(g.injected, in)
}

// InjectPress queues a single-frame input. It is InjectInput under the name
// used by scripts.
func (g *Game) InjectPress(in Input) {
	g.InjectInput(in)
}

// InjectHold queues in for the given number of consecutive frames. Minimum
// frames is 1.
func (g *Game) InjectHold(in Input, frames int) {
	if frames < 1 {
		frames = 1
	}
	for range frames {
		g.InjectInput(in)
	}
}

// PendingInput returns the number of queued synthetic frames.
func (g *Game) PendingInput() int {
	return len(g.injected)
}

// drainInjected steps the attached test runner, then pops one queued frame
// and merges it into in.
func (g *Game) drainInjected(in Input) Input {
	if g.runner != nil {
		g.runner.step(g)
	}
	if len(g.injected) == 0 {
		return in
	}
	next := g.injected[0]
	copy(g.injected, g.injected[1:])
	g.injected = g.injected[:len(g.injected)-1]
	return in.Merge(next)
}
