package henhouse

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity names used by the prefabs. Names are labels only; behavior is chosen
// by Kind.
const (
	NamePlayer    = "player"
	NameBody      = "body"
	NameDrone     = "drone"
	NameHen       = "hen"
	NameChicken   = "chicken"
	NameMissile   = "missile"
	NameAim       = "aim"
	NameSkybox    = "skybox"
	NameGround    = "ground"
	NameLake      = "lake"
	NameHouse     = "house"
	NameExplosion = "explosion"
	NameFeather   = "feather"
	NameTornado   = "tornado"
)

// prefabResources lists every resource the prefabs resolve, by type.
var prefabResources = map[ResourceType][]string{
	ResourceMesh: {
		"bird_body", "bird_head", "bird_wing", "bird_wing_tip", "bird_beak", "bird_tail",
		"chicken_body", "chicken_head", "chicken_beak", "chicken_leg", "hen_wing",
		"drone_body", "drone_hub", "drone_prop",
		"coop", "roof", "cylinder", "cube", "mirror", "square", "marker",
	},
	ResourcePointSet: {"sphere_particles", "funnel_particles"},
	ResourceMaterial: {
		"textured", "object", "particle", "skybox_material", "envmap", "flat",
	},
	ResourceTexture: {
		"beak", "white", "metal", "wings", "wing_tips", "coop_walls", "roof_tiles", "grass",
	},
	ResourceCubeMap: {"sky"},
}

// DefaultResources returns a store holding a placeholder handle for every
// resource the prefabs use. Renderers that draw by Kind can run on it as is.
func DefaultResources() *Resources {
	r := NewResources()
	for _, typ := range []ResourceType{ResourceMesh, ResourcePointSet, ResourceMaterial, ResourceTexture, ResourceCubeMap} {
		for _, name := range prefabResources[typ] {
			r.Add(name, typ, nil)
		}
	}
	return r
}

// Factory builds the game's entities from named resources.
type Factory struct {
	store ResourceStore
	cfg   *Config
	rng   *rand.Rand
	err   error
}

// NewFactory creates a factory resolving names in store.
func NewFactory(store ResourceStore, cfg *Config, rng *rand.Rand) *Factory {
	return &Factory{store: store, cfg: cfg, rng: rng}
}

// Err returns the first resource error met by the factory, if any.
func (f *Factory) Err() error {
	return f.err
}

// part creates an entity and records the first failure. Subsequent calls
// after a failure return throwaway entities so prefab code stays linear;
// callers check Err once.
func (f *Factory) part(name string, kind Kind, geometry, material, texture, envmap string) *Entity {
	e, err := CreateEntity(f.store, name, kind, geometry, material, texture, envmap)
	if err != nil {
		if f.err == nil {
			f.err = err
		}
		return NewEntity(name, kind)
	}
	return e
}

func (f *Factory) done(e *Entity) (*Entity, error) {
	if f.err != nil {
		err := f.err
		f.err = nil
		e.Dispose()
		return nil, err
	}
	return e, nil
}

// radians converts a swing rate in half-turns per tick into radians per second.
func (f *Factory) swingRate(perTick float32) float32 {
	return perTick * math.Pi / float32(f.cfg.Tick.Step)
}

func quatAxis(deg float32, axis mgl32.Vec3) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(deg), axis)
}

// Bird builds the player rig: an invisible, confined KindPlayer root that
// carries the bird body with its head, wings, beak, and tail. The body has a
// pulse swing used by the melee attack.
func (f *Factory) Bird(pos mgl32.Vec3) (*Entity, error) {
	w := &f.cfg.World
	rig := NewEntity(NamePlayer, KindPlayer)
	rig.Position = pos
	rig.MaxSpeed = f.cfg.Player.MaxSpeed
	rig.Drag = f.cfg.Player.Drag
	rig.Confine = &Confinement{FloorY: w.FloorY, Center: w.DomeCenter, Radius: w.DomeRadius}

	body := f.part(NameBody, KindProp, "bird_body", "textured", "wings", "")
	body.Scale = mgl32.Vec3{1.5, 1.5, 1.5}
	body.Rotate(quatAxis(90, AxisX))
	body.Rotate(quatAxis(180, AxisZ))
	body.Swing = NewPulseSwing(AxisX, 0.25*math.Pi, -f.swingRate(0.01))
	rig.AddChild(body)

	head := f.part("head", KindProp, "bird_head", "textured", "white", "")
	head.Position = mgl32.Vec3{0.285, 0.9, 0}
	body.AddChild(head)

	wingRate := f.swingRate(0.01)
	lwing := f.part("left_wing", KindProp, "bird_wing", "textured", "wings", "")
	lwing.Rotate(quatAxis(-90, AxisZ))
	lwing.Rotate(quatAxis(180, AxisY))
	lwing.Position = mgl32.Vec3{0.1, 0.3, 0}
	lwing.RotationOrigin = mgl32.Vec3{0, -0.5, 0}
	lwing.Swing = NewSwing(AxisX, 0.26*math.Pi, wingRate)
	body.AddChild(lwing)

	ltip := f.part("left_wing_tip", KindProp, "bird_wing_tip", "textured", "wing_tips", "")
	ltip.Position = mgl32.Vec3{0.16, 0.3, 0}
	ltip.RotationOrigin = mgl32.Vec3{0, -0.5, 0}
	ltip.Swing = NewSwing(AxisX, 0.26*math.Pi, wingRate)
	lwing.AddChild(ltip)

	rwing := f.part("right_wing", KindProp, "bird_wing", "textured", "wings", "")
	rwing.Rotate(quatAxis(90, AxisZ))
	rwing.Position = mgl32.Vec3{-0.1, 0.3, 0}
	rwing.RotationOrigin = mgl32.Vec3{0, -0.5, 0}
	rwing.Swing = NewSwing(AxisX, 0.26*math.Pi, -wingRate)
	body.AddChild(rwing)

	rtip := f.part("right_wing_tip", KindProp, "bird_wing_tip", "textured", "wing_tips", "")
	rtip.Position = mgl32.Vec3{0.16, 0.3, 0}
	rtip.RotationOrigin = mgl32.Vec3{0, -0.5, 0}
	rtip.Swing = NewSwing(AxisX, 0.26*math.Pi, -wingRate)
	rwing.AddChild(rtip)

	beak := f.part("beak", KindProp, "bird_beak", "textured", "beak", "")
	beak.Rotate(quatAxis(-90, AxisY))
	beak.Position = mgl32.Vec3{0, 1.16, 0.37}
	body.AddChild(beak)

	tail := f.part("tail", KindProp, "bird_tail", "textured", "wings", "")
	tail.Rotate(quatAxis(12, AxisX))
	tail.Position = mgl32.Vec3{0, -0.7, -0.1}
	body.AddChild(tail)

	return f.done(rig)
}

// Drone builds a patrol drone with a spinning propeller hub.
func (f *Factory) Drone(pos mgl32.Vec3) (*Entity, error) {
	body := f.part(NameDrone, KindPatrol, "drone_body", "textured", "metal", "")
	body.Scale = mgl32.Vec3{2, 2, 2}
	body.Position = pos
	body.Target = pos

	hub := f.part("drone_hub", KindProp, "drone_hub", "textured", "white", "")
	hub.Position = mgl32.Vec3{0, 0.27, 0}
	hub.Swing = NewSwing(AxisY, 0, f.swingRate(0.05))
	body.AddChild(hub)

	p1 := f.part("drone_prop", KindProp, "drone_prop", "textured", "metal", "")
	p1.Rotate(quatAxis(90, AxisZ))
	p1.Position = mgl32.Vec3{-0.16, 0.6, 0}
	hub.AddChild(p1)

	p2 := f.part("drone_prop", KindProp, "drone_prop", "textured", "metal", "")
	p2.Rotate(quatAxis(90, AxisZ))
	p2.Rotate(quatAxis(90, AxisX))
	p2.Position = mgl32.Vec3{0, 0.6, 0.16}
	hub.AddChild(p2)

	return f.done(body)
}

// fowl builds the body, head, beak, and legs shared by chickens and hens.
func (f *Factory) fowl(name string, kind Kind, pos mgl32.Vec3) *Entity {
	body := f.part(name, kind, "chicken_body", "textured", "beak", "")
	body.Position = pos
	body.Target = pos
	body.Home = pos
	body.MovingCenter = pos
	body.Forward = mgl32.Vec3{-1, 0, 0}
	body.Side = mgl32.Vec3{0, 0, -1}

	head := f.part(name+"_head", KindProp, "chicken_head", "textured", "beak", "")
	head.Position = mgl32.Vec3{-0.36, 0.36, 0}
	body.AddChild(head)

	beak := f.part(name+"_beak", KindProp, "chicken_beak", "textured", "white", "")
	beak.Rotate(quatAxis(-90, AxisZ))
	beak.Rotate(quatAxis(180, AxisX))
	beak.Position = mgl32.Vec3{-0.7, -0.45, 0}
	head.AddChild(beak)

	legRate := f.swingRate(0.006)
	for i, z := range []float32{0.15, -0.15} {
		leg := f.part(name+"_leg", KindProp, "chicken_leg", "textured", "white", "")
		leg.RotationOrigin = mgl32.Vec3{0, 0.5, 0}
		leg.Position = mgl32.Vec3{0, 0.077, z}
		rate := legRate
		if i == 1 {
			rate = -legRate
		}
		leg.Swing = NewSwing(AxisZ, 0.12*math.Pi, rate)
		body.AddChild(leg)
	}
	return body
}

// Chicken builds a prey entity standing at pos.
func (f *Factory) Chicken(pos mgl32.Vec3) (*Entity, error) {
	body := f.fowl(NameChicken, KindPrey, pos)
	body.MovingRangeRadius = f.cfg.Prey.WanderRadius
	return f.done(body)
}

// Hen builds a guardian entity with flapping wings, homed at pos.
func (f *Factory) Hen(pos mgl32.Vec3) (*Entity, error) {
	body := f.fowl(NameHen, KindGuardian, pos)
	body.Scale = mgl32.Vec3{2.5, 2.2, 2.0}
	body.MovingRangeRadius = f.cfg.Guardian.HomeRadius

	wingRate := f.swingRate(0.012)
	for i, z := range []float32{0.3, -0.3} {
		wing := f.part(NameHen+"_wing", KindProp, "hen_wing", "textured", "beak", "")
		deg, rate := float32(90), wingRate
		if i == 1 {
			deg, rate = -90, -wingRate
		}
		wing.Rotate(quatAxis(deg, AxisX))
		wing.RotationOrigin = mgl32.Vec3{0, -0.5, 0}
		wing.Position = mgl32.Vec3{0.3, 0, z}
		wing.Swing = NewSwing(AxisX, 0.24*math.Pi, rate)
		body.AddChild(wing)
	}
	return f.done(body)
}

// House builds a static coop with its roof. The coop uses a fixed transform.
func (f *Factory) House(pos mgl32.Vec3) (*Entity, error) {
	house := f.part(NameHouse, KindProp, "coop", "textured", "coop_walls", "")
	house.SetFixedTransform(mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(10, 10, 10)))

	roof := f.part("roof", KindProp, "roof", "textured", "roof_tiles", "")
	roof.Position = mgl32.Vec3{0.2, 0.75, 0}
	house.AddChild(roof)
	return f.done(house)
}

// Ground builds the static ground plane.
func (f *Factory) Ground() (*Entity, error) {
	g := f.part(NameGround, KindProp, "square", "flat", "grass", "")
	y := f.cfg.World.GroundY
	g.SetFixedTransform(mgl32.Translate3D(0, y, 0).
		Mul4(quatAxis(90, AxisX).Mat4()).
		Mul4(mgl32.Scale3D(400, 400, 400)))
	return f.done(g)
}

// Lake builds a static reflective pool at pos.
func (f *Factory) Lake(pos mgl32.Vec3) (*Entity, error) {
	l := f.part(NameLake, KindProp, "mirror", "envmap", "", "sky")
	l.SetFixedTransform(mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(quatAxis(90, AxisX).Mat4()).
		Mul4(mgl32.Scale3D(20, 20, 20)))
	return f.done(l)
}

// Skybox builds the backdrop that follows the player.
func (f *Factory) Skybox() (*Entity, error) {
	s := f.part(NameSkybox, KindBackdrop, "cube", "skybox_material", "sky", "")
	s.Scale = mgl32.Vec3{50, 50, 50}
	return f.done(s)
}

// Missile builds a projectile leaving the rig. side is -1 for the left
// launcher and +1 for the right. A feather trail rides along as a child.
func (f *Factory) Missile(rig *Entity, side float32) (*Entity, error) {
	pos := rig.WorldPosition().
		Add(rig.ForwardDir().Mul(0.2)).
		Add(rig.SideDir().Mul(0.8 * side))
	m := f.part(NameMissile, KindProjectile, "cylinder", "object", "", "")
	m.SetLifeTime(1.0)
	m.Scale = mgl32.Vec3{0.05, 1, 0.05}
	m.Position = pos
	m.Orientation = rig.Orientation
	m.Rotate(quatAxis(-90, AxisX))
	m.Forward = mgl32.Vec3{0, 1, 0}
	m.MaxSpeed = 1.6
	m.Speed = mgl32.Clamp(rig.Speed+0.7, 0, m.MaxSpeed)

	m.AddChild(f.Feather())
	return f.done(m)
}

// Feather builds the short-lived trail effect attached to missiles.
func (f *Factory) Feather() *Entity {
	e := NewEffect(NameFeather, EffectFeather, 1.0, EmitterConfig{
		MaxParticles: 64,
		EmitRate:     80,
		Lifetime:     Range{Min: 0.2, Max: 0.5},
		Speed:        Range{Min: 0.5, Max: 1.5},
		Azimuth:      Range{Min: 0, Max: 2 * math.Pi},
		Elevation:    Range{Min: -0.5, Max: 0.5},
		StartScale:   Range{Min: 0.3, Max: 0.5},
		EndScale:     Range{Min: 0.05, Max: 0.1},
		StartAlpha:   Range{Min: 1, Max: 1},
		EndAlpha:     Range{Min: 0, Max: 0},
		Gravity:      mgl32.Vec3{0, -2, 0},
		StartColor:   Color{1, 1, 1, 1},
		EndColor:     Color{0.8, 0.8, 0.8, 0},
		WorldSpace:   true,
	})
	f.attach(e, "sphere_particles")
	return e
}

// Explosion builds the burst left behind by a destroyed drone.
func (f *Factory) Explosion(pos mgl32.Vec3) *Entity {
	e := NewEffect(NameExplosion, EffectExplosion, 0.4, EmitterConfig{
		MaxParticles: 96,
		Burst:        96,
		Lifetime:     Range{Min: 0.2, Max: 0.4},
		Speed:        Range{Min: 6, Max: 14},
		Azimuth:      Range{Min: 0, Max: 2 * math.Pi},
		Elevation:    Range{Min: -math.Pi / 2, Max: math.Pi / 2},
		StartScale:   Range{Min: 0.6, Max: 1},
		EndScale:     Range{Min: 0.1, Max: 0.2},
		StartAlpha:   Range{Min: 1, Max: 1},
		EndAlpha:     Range{Min: 0, Max: 0},
		StartColor:   Color{1, 0.8, 0.2, 1},
		EndColor:     Color{0.8, 0.1, 0, 0},
		WorldSpace:   true,
	})
	e.Position = pos
	f.attach(e, "sphere_particles")
	return e
}

// Tornado builds the funnel effect rising from beneath the aim point.
func (f *Factory) Tornado(aim mgl32.Vec3) *Entity {
	e := NewEffect(NameTornado, EffectTornado, 4.0, EmitterConfig{
		MaxParticles: 800,
		EmitRate:     400,
		Lifetime:     Range{Min: 1.5, Max: 2.5},
		Speed:        Range{Min: 10, Max: 16},
		Azimuth:      Range{Min: 0, Max: 2 * math.Pi},
		Elevation:    Range{Min: 1.2, Max: 1.45},
		StartScale:   Range{Min: 0.2, Max: 0.4},
		EndScale:     Range{Min: 1, Max: 1.6},
		StartAlpha:   Range{Min: 0.9, Max: 1},
		EndAlpha:     Range{Min: 0, Max: 0.1},
		StartColor:   Color{0.7, 0.7, 0.75, 1},
		EndColor:     Color{0.4, 0.4, 0.45, 0},
		WorldSpace:   true,
	})
	e.Position = mgl32.Vec3{aim[0], aim[1] - 15, aim[2]}
	e.Forward = mgl32.Vec3{0, 1, 0}
	e.Swing = NewSwing(AxisY, 0, f.swingRate(0.03))
	f.attach(e, "funnel_particles")
	return e
}

// Aim builds the tornado aim marker.
func (f *Factory) Aim(pos mgl32.Vec3) (*Entity, error) {
	a := f.part(NameAim, KindMarker, "marker", "flat", "white", "")
	a.Position = pos
	return f.done(a)
}

// attach resolves particle resources onto an effect. Effects stay usable
// without them, so a miss is only logged.
func (f *Factory) attach(e *Entity, points string) {
	set, err := CollectResources(f.store, points, "particle", "", "")
	if err != nil {
		logger.Warn("effect resources unavailable", "effect", e.Name, "err", err)
		return
	}
	e.Resources = set
}

// RandomPosition returns a point with horizontal components in
// ±[1, Scatter] and height in [1, Scatter].
func (f *Factory) RandomPosition() mgl32.Vec3 {
	n := f.cfg.Spawn.Scatter
	if n < 1 {
		n = 1
	}
	x := float32(f.rng.IntN(n) + 1)
	y := float32(f.rng.IntN(n) + 1)
	z := float32(f.rng.IntN(n) + 1)
	if f.rng.IntN(2) == 0 {
		x = -x
	}
	if f.rng.IntN(2) == 0 {
		z = -z
	}
	return mgl32.Vec3{x, y, z}
}
