package ecs

import (
	"github.com/phanxgames/henhouse"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for henhouse interaction
// events.
var InteractionEventType = events.NewEventType[henhouse.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// published to InteractionEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) henhouse.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event henhouse.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// TallyData holds running interaction totals.
type TallyData struct {
	Consumed  int
	Blocked   int
	Hits      int
	Stuns     int
	Rams      int
	Destroyed map[henhouse.Kind]int
}

// Tally is the component holding a world's interaction totals.
var Tally = donburi.NewComponentType[TallyData]()

// TrackTally creates a tally entity in world and subscribes it to
// InteractionEventType. Totals update whenever the world's events are
// processed.
func TrackTally(world donburi.World) *donburi.Entry {
	entry := world.Entry(world.Create(Tally))
	Tally.SetValue(entry, TallyData{Destroyed: make(map[henhouse.Kind]int)})
	InteractionEventType.Subscribe(world, func(_ donburi.World, e henhouse.InteractionEvent) {
		if !entry.Valid() {
			return
		}
		TallyOf(entry).record(e)
	})
	return entry
}

// TallyOf returns the tally stored on entry.
func TallyOf(entry *donburi.Entry) *TallyData {
	return Tally.Get(entry)
}

func (t *TallyData) record(e henhouse.InteractionEvent) {
	switch e.Type {
	case henhouse.EventConsumed:
		t.Consumed += e.Count
	case henhouse.EventBlocked:
		t.Blocked++
	case henhouse.EventProjectileHit:
		t.Hits++
	case henhouse.EventStunned:
		t.Stuns++
	case henhouse.EventRammed:
		t.Rams++
	case henhouse.EventDestroyed:
		t.Destroyed[e.Kind]++
	}
}
