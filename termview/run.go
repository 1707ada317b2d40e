package termview

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/henhouse"
)

// Run drives g on screen until ctx is cancelled or a quit key arrives. The
// screen must already be initialized; Run does not finalize it.
func Run(ctx context.Context, g *henhouse.Game, screen tcell.Screen, frame time.Duration) error {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	view := NewView(screen)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	var pending henhouse.Input
	last := time.Now()
	view.Frame(g)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				in, quit := KeyInput(ev)
				if quit {
					return nil
				}
				pending = pending.Merge(in)
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if err := g.Update(elapsed, pending); err != nil {
				return err
			}
			pending = henhouse.Input{}
			view.Frame(g)
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalized
// or done is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
