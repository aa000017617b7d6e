package particles

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/registry"
	"windswept/internal/world"
)

type fixedWind struct {
	dir      mgl64.Vec3
	strength float64
}

func (w fixedWind) CurrentWindVector() (mgl64.Vec3, float64) { return w.dir, w.strength }

func TestLifetimes(t *testing.T) {
	s := NewSystem(nil, config.Default().Drift, nil, 1)
	s.Spawn(mgl64.Vec3{}, emission.Wave{Normal: mgl64.Vec2{1, 0}})
	s.Spawn(mgl64.Vec3{}, emission.Foam{Normal: mgl64.Vec2{1, 0}})
	s.Spawn(mgl64.Vec3{}, emission.Ripple{Size: 1, MaxAge: 40, Speed: 0.5})

	for i := 0; i < 24; i++ {
		s.Step()
	}
	if s.Len() != 3 {
		t.Fatalf("Expected 3 live particles after 24 ticks, got %d", s.Len())
	}
	s.Step()
	if s.Len() != 2 {
		t.Errorf("Wave should expire at 25 ticks, %d left", s.Len())
	}
	for i := 0; i < 15; i++ {
		s.Step()
	}
	if s.Len() != 1 {
		t.Errorf("Ripple should expire at 40 ticks, %d left", s.Len())
	}
}

func TestWindPushesDriftingFamilies(t *testing.T) {
	src := fixedWind{dir: mgl64.Vec3{1, 0, 0}, strength: 2}
	s := NewSystem(src, config.Default().Drift, nil, 1)
	s.Spawn(mgl64.Vec3{}, emission.Cascade{Scale: 1})
	s.Spawn(mgl64.Vec3{}, emission.Wave{Normal: mgl64.Vec2{1, 0}})
	s.Step()

	ps := s.Snapshot(nil)
	cascade, wave := ps[0], ps[1]
	// 2 * 0.0005, then drag 0.98 above strength 0.5
	if math.Abs(cascade.Velocity.X()-0.00098) > 1e-12 {
		t.Errorf("Cascade vx = %v, want 0.00098", cascade.Velocity.X())
	}
	if cascade.Position.X() <= 0 {
		t.Errorf("Cascade did not move downwind")
	}
	if wave.Velocity != (mgl64.Vec3{}) || wave.Position != (mgl64.Vec3{}) {
		t.Errorf("Wave should stay put, got %v at %v", wave.Velocity, wave.Position)
	}
}

func TestCalmLeavesVelocity(t *testing.T) {
	s := NewSystem(fixedWind{}, config.Default().Drift, nil, 1)
	s.Spawn(mgl64.Vec3{}, emission.Wind{Scale: 1, Lifetime: 100, Velocity: mgl64.Vec3{0.1, 0, 0}})
	for i := 0; i < 10; i++ {
		s.Step()
	}
	p := s.Snapshot(nil)[0]
	if p.Velocity != (mgl64.Vec3{0.1, 0, 0}) || math.Abs(p.Position.X()-1) > 1e-9 {
		t.Errorf("Calm air changed the streak: %v at %v", p.Velocity, p.Position)
	}
}

func TestDustSettlesOnGround(t *testing.T) {
	w := world.New(registry.Properties(), world.NewFlatGenerator(64))
	w.EnsureArea(world.BlockPos{}, 1)
	s := NewSystem(nil, config.Default().Drift, w, 1)
	s.Spawn(mgl64.Vec3{0.5, 65.1, 0.5}, emission.DustCloud{Scale: 1})

	for i := 0; i < 20; i++ {
		s.Step()
	}
	p := s.Snapshot(nil)[0]
	if !p.OnGround || p.Position.Y() != 65 {
		t.Errorf("Dust should rest on the grass, at %v onGround=%v", p.Position, p.OnGround)
	}
	if p.Progress() <= 0 || p.Progress() >= 1 {
		t.Errorf("Progress %v out of range", p.Progress())
	}
}

func TestLiveCap(t *testing.T) {
	prev := config.GetMaxParticles()
	config.SetMaxParticles(64)
	defer config.SetMaxParticles(prev)

	s := NewSystem(nil, config.Default().Drift, nil, 1)
	for i := 0; i < 100; i++ {
		s.Spawn(mgl64.Vec3{}, emission.Splash{})
	}
	if s.Len() != 64 || s.Dropped() != 36 || s.Spawned() != 64 {
		t.Errorf("len=%d dropped=%d spawned=%d", s.Len(), s.Dropped(), s.Spawned())
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Reset left %d particles", s.Len())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewSystem(nil, config.Default().Drift, nil, 1)
	s.Spawn(mgl64.Vec3{1, 2, 3}, emission.Footprint{Size: 1})
	snap := s.Snapshot(nil)
	snap[0].Position = mgl64.Vec3{}
	if again := s.Snapshot(snap[:0]); again[0].Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Snapshot aliased live state")
	}
}

func BenchmarkStep(b *testing.B) {
	src := fixedWind{dir: mgl64.Vec3{1, 0, 0}, strength: 1}
	s := NewSystem(src, config.Default().Drift, nil, 1)
	for i := 0; i < 2000; i++ {
		s.Spawn(mgl64.Vec3{}, emission.Wind{Scale: 1, Lifetime: 1 << 30})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step()
	}
}
