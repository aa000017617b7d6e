package wind

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

// Ground is the part of the world the particle emitter reads.
type Ground interface {
	TopSurfaceY(x, z int) int
	IsAir(pos world.BlockPos) bool
}

// Emitter queues effects. *emission.Scheduler satisfies it.
type Emitter interface {
	Schedule(e emission.Effect, pos mgl64.Vec3, delayTicks int)
}

// ParticleCount returns how many streaks one emission pulse produces.
func ParticleCount(t Type, rng *rand.Rand) int {
	switch t {
	case Soft:
		return 1 + rng.Intn(5)
	case Normal:
		return 1 + rng.Intn(8)
	case Heavy:
		return 2 + rng.Intn(15)
	case Storm:
		return 3 + rng.Intn(20)
	default:
		return 0
	}
}

func particleScale(t Type, rng *rand.Rand) float64 {
	base := 0.8
	switch t {
	case Soft:
		base = 0.5
	case Normal:
		base = 1
	case Heavy:
		base = 2
	}
	return base + rng.Float64()*0.2
}

// EmitParticles scatters one pulse of wind streaks around center. It returns the number queued.
func EmitParticles(s State, center world.BlockPos, g Ground, tun config.WindTuning, rng *rand.Rand, out Emitter) int {
	if s.Type == None {
		return 0
	}
	n := ParticleCount(s.Type, rng)
	for i := 0; i < n; i++ {
		x := center.X + int(rng.NormFloat64()*tun.ParticleRadius)
		z := center.Z + int(rng.NormFloat64()*tun.ParticleRadius)
		ground := g.TopSurfaceY(x, z)
		y := float64(ground) + 1 + rng.Float64()*tun.ParticleMaxLift
		if !g.IsAir(world.PosOf(mgl64.Vec3{float64(x), y, float64(z)})) {
			y = float64(ground + 1)
		}
		out.Schedule(emission.Wind{
			Scale:    particleScale(s.Type, rng),
			Lifetime: 100 + rng.Intn(80),
		}, mgl64.Vec3{float64(x), y, float64(z)}, 0)
	}
	return n
}
