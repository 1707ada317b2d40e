package henhouse

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA tint with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Particle is one simulated point of an emitter. Renderers read Position,
// Scale, Alpha, and Tint; the rest is simulation state.
type Particle struct {
	Position mgl32.Vec3
	Scale    float32
	Alpha    float32
	Tint     Color

	velocity   mgl32.Vec3
	life       float64 // remaining lifetime in seconds
	maxLife    float64
	startScale float32
	endScale   float32
	startAlpha float32
	endAlpha   float32
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second.
	EmitRate float64
	// Burst is the number of particles spawned on the first update.
	Burst int
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in units per second.
	Speed Range
	// Azimuth is the range of emission angles around +Y, in radians.
	Azimuth Range
	// Elevation is the range of emission angles above the horizontal plane, in radians.
	Elevation Range
	StartScale Range
	EndScale   Range
	StartAlpha Range
	EndAlpha   Range
	// Gravity is the constant acceleration applied to all particles.
	Gravity    mgl32.Vec3
	StartColor Color
	EndColor   Color
	// WorldSpace, when true, keeps particles at their world position once
	// emitted instead of following the emitter entity.
	WorldSpace bool
}

// ParticleEmitter manages a pool of particles with CPU-based simulation.
type ParticleEmitter struct {
	config    EmitterConfig
	particles []Particle
	alive     int
	emitAccum float64
	active    bool
	burstDone bool
	// origin is the owning entity's world position, refreshed each tick.
	origin mgl32.Vec3
}

// newParticleEmitter creates a started ParticleEmitter with a preallocated pool.
func newParticleEmitter(cfg EmitterConfig) *ParticleEmitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	return &ParticleEmitter{
		config:    cfg,
		particles: make([]Particle, max),
		active:    true,
	}
}

// Start begins emitting particles.
func (e *ParticleEmitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *ParticleEmitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *ParticleEmitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
	e.burstDone = false
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *ParticleEmitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *ParticleEmitter) AliveCount() int {
	return e.alive
}

// Particles returns the alive particles. The slice is reused every tick and
// MUST NOT be retained.
func (e *ParticleEmitter) Particles() []Particle {
	return e.particles[:e.alive]
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *ParticleEmitter) Config() *EmitterConfig {
	return &e.config
}

// Origin returns the world position particles are emitted from.
func (e *ParticleEmitter) Origin() mgl32.Vec3 {
	return e.origin
}

// update advances particle simulation by dt seconds.
func (e *ParticleEmitter) update(dt float64, origin mgl32.Vec3, rng *rand.Rand) {
	e.origin = origin
	g := e.config.Gravity.Mul(float32(dt))

	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		p.velocity = p.velocity.Add(g)
		p.Position = p.Position.Add(p.velocity.Mul(float32(dt)))

		t := float32(1.0 - p.life/p.maxLife)
		p.Scale = lerp32(p.startScale, p.endScale, t)
		p.Alpha = lerp32(p.startAlpha, p.endAlpha, t)
		p.Tint = lerpColor(e.config.StartColor, e.config.EndColor, t)
		i++
	}

	if !e.active {
		return
	}
	if !e.burstDone {
		e.burstDone = true
		for n := 0; n < e.config.Burst && e.alive < len(e.particles); n++ {
			e.spawnParticle(rng)
		}
	}
	if e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle(rng)
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *ParticleEmitter) spawnParticle(rng *rand.Rand) {
	p := &e.particles[e.alive]

	az := float64(e.config.Azimuth.Random(rng))
	el := float64(e.config.Elevation.Random(rng))
	speed := e.config.Speed.Random(rng)
	dir := mgl32.Vec3{
		float32(math.Cos(el) * math.Cos(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Sin(az)),
	}
	p.velocity = dir.Mul(speed)

	if e.config.WorldSpace {
		p.Position = e.origin
	} else {
		p.Position = mgl32.Vec3{}
	}

	p.life = float64(e.config.Lifetime.Random(rng))
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.startScale = e.config.StartScale.Random(rng)
	p.endScale = e.config.EndScale.Random(rng)
	p.Scale = p.startScale

	p.startAlpha = e.config.StartAlpha.Random(rng)
	p.endAlpha = e.config.EndAlpha.Random(rng)
	p.Alpha = p.startAlpha
	p.Tint = e.config.StartColor

	e.alive++
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpColor(a, b Color, t float32) Color {
	return Color{
		R: lerp32(a.R, b.R, t),
		G: lerp32(a.G, b.G, t),
		B: lerp32(a.B, b.B, t),
		A: lerp32(a.A, b.A, t),
	}
}
