// Package ecs provides ECS adapters for henhouse's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges scene interaction
// events (consumption, blocks, projectile hits, stuns, rams, destruction) into
// a [Donburi] world as typed events. Subscribe to [InteractionEventType] in
// your ECS systems to receive them, or call [TrackTally] to keep running
// totals in a singleton component.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEventSink(ecs.NewDonburiStore(world))
//	tally := ecs.TrackTally(world)
//	...
//	events.ProcessAllEvents(world)
//	fmt.Println(ecs.TallyOf(tally).Consumed)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
