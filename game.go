package henhouse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// GameState is the session's top-level mode.
type GameState uint8

const (
	StateTitle GameState = iota
	StatePlaying
	StateWon
	StateLost
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	}
	return "unknown"
}

// Input is one frame of player intents. Turn fields are signed step counts;
// the rest are edge-triggered presses except Accelerate and Brake, which are
// held.
type Input struct {
	Pitch int `yaml:"pitch"`
	Yaw   int `yaml:"yaw"`
	Roll  int `yaml:"roll"`

	Accelerate bool `yaml:"accelerate"`
	Brake      bool `yaml:"brake"`

	Fire       bool `yaml:"fire"`
	Melee      bool `yaml:"melee"`
	Tornado    bool `yaml:"tornado"`
	ToggleView bool `yaml:"toggle_view"`
	Start      bool `yaml:"start"`

	// AimX and AimZ move the tornado aim marker while aiming.
	AimX int `yaml:"aim_x"`
	AimZ int `yaml:"aim_z"`
}

// Merge folds o into in: turns and aim steps add, presses OR together.
func (in Input) Merge(o Input) Input {
	in.Pitch += o.Pitch
	in.Yaw += o.Yaw
	in.Roll += o.Roll
	in.AimX += o.AimX
	in.AimZ += o.AimZ
	in.Accelerate = in.Accelerate || o.Accelerate
	in.Brake = in.Brake || o.Brake
	in.Fire = in.Fire || o.Fire
	in.Melee = in.Melee || o.Melee
	in.Tornado = in.Tornado || o.Tornado
	in.ToggleView = in.ToggleView || o.ToggleView
	in.Start = in.Start || o.Start
	return in
}

// Heights above the ground at which spawned fowl and the aim marker stand.
const (
	preyHeight     = 0.7
	guardianHeight = 1.3
	aimHeight      = 0.5
)

// Game is a complete play session: the scene, the player rig, the camera, and
// the health and energy economy.
type Game struct {
	cfg   Config
	store ResourceStore
	opts  []SceneOption

	scene   *Scene
	factory *Factory
	camera  *CameraRig
	state   GameState

	health       float64
	energy       float64
	fireCooldown float64

	rig   *Entity
	body  *Entity
	wings []*Entity

	aim        *Entity
	aimOrigin  mgl32.Vec3
	savedAccel float32
	savedSpeed float32

	minPrey    int
	minPatrols int

	injected []Input
	runner   *TestRunner
}

// NewGame builds a session on store and leaves it on the title screen. opts
// are passed to every scene the session creates; WithConfig is applied from
// cfg automatically.
func NewGame(cfg Config, store ResourceStore, opts ...SceneOption) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{cfg: cfg, store: store, opts: opts}
	g.camera = NewCameraRig(cfg.Camera, cfg.World.GroundY)
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset discards the current scene and builds a fresh one.
func (g *Game) reset() error {
	if g.scene != nil {
		g.scene.Clear()
	}
	opts := append([]SceneOption{WithConfig(g.cfg)}, g.opts...)
	g.scene = NewScene(opts...)
	g.factory = NewFactory(g.store, g.scene.Config(), g.scene.Rand())
	g.scene.SetSweepHook(g.replace)

	g.health = g.cfg.Economy.StartHealth
	g.energy = g.cfg.Economy.StartEnergy
	g.fireCooldown = 0
	g.aim = nil
	g.minPrey = g.cfg.Spawn.Prey
	g.minPatrols = g.cfg.Spawn.Patrols

	if err := g.setup(); err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	g.camera.Restore()
	g.camera.Mode = CameraFirstPerson
	g.camera.Follow(g.rig)
	logger.Info("scene ready", "entities", g.scene.Len())
	return nil
}

func (g *Game) setup() error {
	f := g.factory
	sp := &g.cfg.Spawn
	ground := g.cfg.World.GroundY

	sky, err := f.Skybox()
	if err != nil {
		return err
	}
	g.scene.Add(sky)

	floor, err := f.Ground()
	if err != nil {
		return err
	}
	g.scene.Add(floor)

	for range sp.Lakes {
		p := f.RandomPosition()
		lake, err := f.Lake(mgl32.Vec3{p[0], ground + 0.2, p[2]})
		if err != nil {
			return err
		}
		g.scene.Add(lake)
	}

	for _, c := range sp.Coops {
		house, err := f.House(c)
		if err != nil {
			return err
		}
		g.scene.Add(house)
	}

	rig, err := f.Bird(g.cfg.Player.Start)
	if err != nil {
		return err
	}
	g.rig = rig
	g.body = rig.FindByName(NameBody)
	g.wings = g.wings[:0]
	rig.Walk(func(e *Entity) bool {
		if e != g.body && e.Swing != nil {
			g.wings = append(g.wings, e)
		}
		return true
	})
	g.scene.Add(rig)
	g.scene.SetPlayer(rig)

	for range sp.Patrols {
		if err := g.spawn(f.Drone(f.RandomPosition())); err != nil {
			return err
		}
	}
	for range sp.Prey {
		p := f.RandomPosition()
		if err := g.spawn(f.Chicken(mgl32.Vec3{p[0], ground + preyHeight, p[2]})); err != nil {
			return err
		}
	}
	for range sp.Guardians {
		p := f.RandomPosition()
		if err := g.spawn(f.Hen(mgl32.Vec3{p[0], ground + guardianHeight, p[2]})); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) spawn(e *Entity, err error) error {
	if err != nil {
		return err
	}
	g.scene.Add(e)
	return nil
}

// replace is the scene's sweep hook: a destroyed patrol leaves an explosion.
func (g *Game) replace(e *Entity) []*Entity {
	if e.Kind != KindPatrol {
		return nil
	}
	return []*Entity{g.factory.Explosion(e.WorldPosition())}
}

// Update runs one frame: input, simulation for elapsed seconds, economy,
// respawns, and camera.
func (g *Game) Update(elapsed float64, in Input) error {
	in = g.drainInjected(in)

	if g.state != StatePlaying {
		if in.Start {
			if g.state != StateTitle {
				if err := g.reset(); err != nil {
					return err
				}
			}
			g.state = StatePlaying
			logger.Info("game started")
		}
		g.camera.Update(float32(elapsed))
		return nil
	}

	if in.ToggleView {
		g.camera.ToggleThirdPerson()
	}
	if g.rig != nil && !g.rig.Stunned() {
		g.handleInput(in)
	}

	n := g.scene.Advance(elapsed)
	for range n {
		g.tickEconomy()
		if g.state != StatePlaying {
			break
		}
	}
	if g.scene.Player() == nil && g.state == StatePlaying {
		g.finish(StateLost)
	}
	if g.state == StatePlaying {
		if err := g.respawn(); err != nil {
			return err
		}
	}

	g.camera.Update(float32(elapsed))
	if g.body != nil {
		g.body.Visible = g.camera.Mode != CameraFirstPerson
	}
	return nil
}

func (g *Game) handleInput(in Input) {
	if g.aim != nil {
		if in.AimX != 0 || in.AimZ != 0 {
			g.moveAim(in.AimX, in.AimZ)
		}
		if in.Tornado {
			g.releaseTornado()
		}
		return
	}

	step := g.cfg.Player.TurnStep
	if in.Pitch != 0 {
		g.rig.Pitch(float32(in.Pitch) * step)
	}
	if in.Yaw != 0 {
		g.rig.Yaw(float32(in.Yaw) * step)
	}
	if in.Roll != 0 {
		g.rig.Roll(float32(in.Roll) * step)
	}

	switch {
	case in.Accelerate:
		g.rig.Acceleration = g.cfg.Player.Accelerate
	case in.Brake:
		g.rig.Acceleration = g.cfg.Player.Brake
	default:
		g.rig.Acceleration = 0
	}

	if in.Fire {
		g.fire()
	}
	if in.Melee {
		g.melee()
	}
	if in.Tornado {
		g.beginAim()
	}
}

// fire launches a missile from each side of the rig.
func (g *Game) fire() {
	eco := &g.cfg.Economy
	if g.fireCooldown > 0 || g.energy < eco.FireCost {
		return
	}
	for _, side := range []float32{-1, 1} {
		m, err := g.factory.Missile(g.rig, side)
		if err != nil {
			logger.Error("missile", "err", err)
			return
		}
		g.scene.Add(m)
	}
	g.energy -= eco.FireCost
	g.fireCooldown = eco.FireCooldown
	for _, w := range g.wings {
		w.Swing.Boost(2, 30)
	}
}

// melee swings the body and probes ahead of the rig.
func (g *Game) melee() {
	eco := &g.cfg.Economy
	if g.body == nil || g.body.Swing == nil || g.body.Swing.Busy() || g.energy < eco.MeleeCost {
		return
	}
	g.body.Swing.Pulse(eco.MeleeTicks)
	g.energy -= eco.MeleeCost

	probe := g.rig.WorldPosition().Add(g.rig.ForwardDir().Mul(g.cfg.Interaction.ProbeDistance))
	n := g.scene.ResolveConsumption(probe)
	if n == Blocked {
		g.rig.StunFor(eco.BlockedStun)
		logger.Debug("melee blocked")
		return
	}
	g.health += eco.MeleeReward * float64(n)
	g.checkOutcome()
}

// beginAim enters tornado aiming: the rig stops and the camera looks down.
func (g *Game) beginAim() {
	eco := &g.cfg.Economy
	if g.energy < eco.TornadoCost {
		return
	}
	p := g.rig.WorldPosition()
	pos := mgl32.Vec3{p[0], g.cfg.World.GroundY + aimHeight, p[2]}
	aim, err := g.factory.Aim(pos)
	if err != nil {
		logger.Error("aim marker", "err", err)
		return
	}
	g.energy -= eco.TornadoCost
	g.savedAccel, g.savedSpeed = g.rig.Acceleration, g.rig.Speed
	g.rig.Acceleration, g.rig.Speed = 0, 0
	g.aim = aim
	g.aimOrigin = pos
	g.scene.Add(aim)
	g.camera.Overlook(pos)
}

// moveAim shifts the marker by whole units, refusing moves that leave the
// aim range around its origin.
func (g *Game) moveAim(dx, dz int) {
	next := g.aim.Position.Add(mgl32.Vec3{float32(sign(dx)), 0, float32(sign(dz))})
	if horizontal(next.Sub(g.aimOrigin)).Len() >= g.cfg.Economy.AimRange {
		return
	}
	g.aim.Position = next
	g.camera.GlideTo(next)
}

// releaseTornado spawns the tornado under the marker and resumes flight.
func (g *Game) releaseTornado() {
	at := g.aim.Position
	g.aim.Destroy()
	g.aim = nil
	g.scene.Add(g.factory.Tornado(at))
	g.scene.SetSuckPoint(at, g.cfg.Economy.TornadoTicks)
	g.rig.Acceleration, g.rig.Speed = g.savedAccel, g.savedSpeed
	g.camera.Restore()
	logger.Debug("tornado", "at", at)
}

func (g *Game) tickEconomy() {
	eco := &g.cfg.Economy
	g.health -= eco.HealthDecay
	if g.health < 0 {
		g.health = 0
	}
	g.energy = min(g.energy+eco.EnergyRegen, eco.MaxEnergy)
	if g.fireCooldown > 0 {
		g.fireCooldown = max(g.fireCooldown-g.cfg.Tick.Step, 0)
	}
	g.checkOutcome()
}

func (g *Game) checkOutcome() {
	switch {
	case g.health <= 0:
		g.finish(StateLost)
	case g.health >= g.cfg.Economy.MaxHealth:
		g.finish(StateWon)
	}
}

func (g *Game) finish(s GameState) {
	if g.state == s {
		return
	}
	g.state = s
	logger.Info("game over", "state", s.String(), "health", g.health, "ticks", g.scene.Ticks())
}

// respawn tops up prey and patrols once their counts fall below the running
// thresholds. Each top-up raises its threshold.
func (g *Game) respawn() error {
	sp := &g.cfg.Spawn
	f := g.factory
	rng := g.scene.Rand()
	ground := g.cfg.World.GroundY

	if g.scene.Count(KindPrey) < g.minPrey {
		g.minPrey += sp.Raise
		coop := sp.Coops[rng.IntN(len(sp.Coops))]
		n := sp.Batch.Random(rng)
		for range n {
			if err := g.spawn(f.Chicken(mgl32.Vec3{coop[0], ground + preyHeight, coop[2]})); err != nil {
				return err
			}
		}
		if err := g.spawn(f.Hen(mgl32.Vec3{coop[0], ground + guardianHeight, coop[2]})); err != nil {
			return err
		}
		logger.Debug("respawn prey", "count", n, "threshold", g.minPrey)
	}

	if g.scene.Count(KindPatrol) < g.minPatrols {
		g.minPatrols += sp.Raise
		n := sp.Batch.Random(rng)
		for range n {
			if err := g.spawn(f.Drone(f.RandomPosition())); err != nil {
				return err
			}
		}
		logger.Debug("respawn patrols", "count", n, "threshold", g.minPatrols)
	}
	return nil
}

// Scene returns the session's current scene. It changes on restart.
func (g *Game) Scene() *Scene { return g.scene }

// Camera returns the session's camera rig.
func (g *Game) Camera() *CameraRig { return g.camera }

// CameraState returns the camera for the current frame.
func (g *Game) CameraState() CameraState { return g.camera.State() }

// State returns the session state.
func (g *Game) State() GameState { return g.state }

// Health returns the player's health.
func (g *Game) Health() float64 { return g.health }

// Energy returns the player's energy.
func (g *Game) Energy() float64 { return g.energy }

// Player returns the player rig, or nil after it has been removed.
func (g *Game) Player() *Entity { return g.scene.Player() }

// Aiming reports whether the tornado aim marker is active, and where.
func (g *Game) Aiming() (mgl32.Vec3, bool) {
	if g.aim == nil {
		return mgl32.Vec3{}, false
	}
	return g.aim.Position, true
}

// Draw submits the current scene to r from the session's camera.
func (g *Game) Draw(r Renderer) int {
	return g.scene.Draw(r, g.camera.State())
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
