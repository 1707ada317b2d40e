package henhouse

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setupBenchScene creates a Scene with n patrols and n prey spread over the
// field, plus a player rig.
func setupBenchScene(n int) *Scene {
	s := NewScene(WithSeed(1))
	addPlayer(s, mgl32.Vec3{0, 0, 0})
	for i := range n {
		x := float32(i%100) * 2
		z := float32(i/100) * 2
		d := NewEntity("drone", KindPatrol)
		d.Position = mgl32.Vec3{x, 5, z}
		d.Target = d.Position
		d.AddChild(NewEntity("hub", KindProp))
		s.Add(d)

		c := NewEntity("chicken", KindPrey)
		c.Position = mgl32.Vec3{x, -24.3, z}
		c.Target = c.Position
		c.Home = c.Position
		c.MovingCenter = c.Position
		c.MovingRangeRadius = 12
		s.Add(c)
	}
	return s
}

// --- Tick Benchmarks ---

func BenchmarkStep_1000Patrols_1000Prey(b *testing.B) {
	s := setupBenchScene(1000)
	s.Step() // warmup: first tick sizes the buckets

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Step()
	}
}

func BenchmarkStep_5000Patrols_5000Prey(b *testing.B) {
	s := setupBenchScene(5000)
	s.Step()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Step()
	}
}

func BenchmarkSweep_NothingFlagged(b *testing.B) {
	s := setupBenchScene(1000)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Sweep()
	}
}

func BenchmarkResolveConsumption_1000Prey(b *testing.B) {
	s := setupBenchScene(1000)
	probe := mgl32.Vec3{-500, 0, -500} // out of range, nothing is eaten

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.ResolveConsumption(probe)
	}
}

// --- Transform Benchmarks ---

func BenchmarkCompose_10000Entities(b *testing.B) {
	s := setupBenchScene(5000)
	roots := s.Entities()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, r := range roots {
			r.Yaw(0.01)
			updateWorldTransforms(r, mgl32.Ident4())
		}
	}
}

// --- Particle Benchmarks ---

func BenchmarkParticle_10000Particles(b *testing.B) {
	em := newParticleEmitter(EmitterConfig{
		MaxParticles: 10000,
		EmitRate:     1e6,
		Lifetime:     Range{Min: 10, Max: 10},
		Speed:        Range{Min: 1, Max: 3},
		Azimuth:      Range{Min: 0, Max: 6.28},
		StartScale:   Range{Min: 1, Max: 1},
		EndScale:     Range{Min: 0, Max: 0},
		StartAlpha:   Range{Min: 1, Max: 1},
		Gravity:      mgl32.Vec3{0, -9.8, 0},
	})
	rng := testRand()
	em.update(0.01, mgl32.Vec3{}, rng) // fill the pool

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		em.update(0.01, mgl32.Vec3{}, rng)
	}
}

// --- Draw Benchmarks ---

func BenchmarkDraw_10000Entities(b *testing.B) {
	s := NewScene()
	for i := range 10000 {
		e := drawable("box", KindProp)
		e.Blend = i%4 == 0
		s.Add(e)
	}
	r := RendererFunc(func(*Entity, CameraState) {})
	s.Draw(r, CameraState{}) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(r, CameraState{})
	}
}
