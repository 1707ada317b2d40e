// Package henhouse is a 3D scene graph and behavior engine for a small
// arcade game: a bird hunts chickens on a farm guarded by hens and drones.
//
// # Scene graph
//
// Every simulated thing is an [Entity]. Entities form trees; a child's pose is
// relative to its parent, and world transforms are composed top-down once
// per tick. The [Scene] holds an ordered list of root entities.
//
//	scene := henhouse.NewScene(henhouse.WithSeed(1))
//	drone := henhouse.NewEntity("drone", henhouse.KindPatrol)
//	drone.Position = mgl32.Vec3{10, 5, 0}
//	scene.Add(drone)
//
// Use [CreateEntity] to attach geometry, material, and texture handles from a
// [ResourceStore]. The engine never reads handle data; a [Renderer] does.
//
// # Ticks
//
// [Scene.Advance] feeds wall-clock time into a fixed-step accumulator. Each
// tick runs the per-kind behaviors, resolves interactions, integrates motion,
// and composes transforms; a sweep then removes destroyed entities together
// with their subtrees. [Scene.Step] and [Scene.Sweep] are available for tests
// and tools that need finer control.
//
// # Behaviors
//
// Patrols chase the player's projected position. Guardians wander around
// their home until the player comes close, then cluster ahead of it and
// publish an escape point that nearby prey flee from. Prey wander, flee, and
// are pulled into an active tornado.
//
// # Game session
//
// [Game] wraps a scene with the player rig, the camera, the health and
// energy economy, and respawning. Feed it an [Input] per frame:
//
//	g, err := henhouse.NewGame(henhouse.DefaultConfig(), henhouse.DefaultResources())
//	if err != nil {
//		return err
//	}
//	g.Update(1.0/60, henhouse.Input{Start: true})
//	g.Draw(renderer)
//
// Tunables live in [Config] and can be loaded from YAML with [LoadConfig].
// Logging goes through log/slog; see [SetLogger].
//
// Sub-packages: ecs bridges interaction events into [Donburi], logger sets up
// rotated JSON logs, preview draws the game with [Ebitengine], and termview
// draws a top-down map in the terminal with tcell.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package henhouse
