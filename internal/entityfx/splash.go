package entityfx

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

const (
	surfaceThreshold = 0.1
	maxSplashHeight  = 3.0
	splashHeightGain = 1.5
)

// SplashTracker emits an entry splash when a body crosses into the water surface.
type SplashTracker struct {
	tun       config.EntityTuning
	atSurface map[uuid.UUID]bool
	lastSpawn map[uuid.UUID]int64
}

func NewSplashTracker(tun config.EntityTuning) *SplashTracker {
	return &SplashTracker{
		tun:       tun,
		atSurface: make(map[uuid.UUID]bool),
		lastSpawn: make(map[uuid.UUID]int64),
	}
}

// AtWaterSurface reports whether the entity's feet are at or below the column's water surface.
// Non-items must also stand in a fluid cell.
func AtWaterSurface(e world.Entity, g Grid) (float64, bool) {
	cell := e.BlockPos()
	surface, ok := waterSurfaceY(g, cell.X, cell.Z)
	if !ok {
		return 0, false
	}
	if e.Position.Y() > surface+surfaceThreshold {
		return surface, false
	}
	if e.Kind != world.KindItem && g.FluidAt(cell) == world.FluidNone {
		return surface, false
	}
	return surface, true
}

// SplashSize follows the body width.
func SplashSize(e world.Entity) float64 { return clamp(e.Width, 0.5, 2.0) }

// SplashHeight grows with the entry speed above the threshold.
func SplashHeight(speed, minSpeed float64) float64 {
	return math.Min(1+(speed-minSpeed)*splashHeightGain, maxSplashHeight)
}

// Update checks every entity for a surface crossing on this tick and returns the number of
// splashes queued. Trackers of entities missing from the snapshot are dropped.
func (t *SplashTracker) Update(tick int64, entities []world.Entity, g Grid, out Emitter) int {
	n := 0
	seen := make(map[uuid.UUID]struct{}, len(entities))
	for _, e := range entities {
		if !e.Alive || e.Spectator {
			continue
		}
		seen[e.ID] = struct{}{}

		surface, now := AtWaterSurface(e, g)
		was := t.atSurface[e.ID]
		t.atSurface[e.ID] = now
		if !now || was {
			continue
		}

		speed := e.Velocity.Len()
		if speed < t.tun.SplashMinSpeed {
			continue
		}
		if e.Kind != world.KindItem {
			if last, ok := t.lastSpawn[e.ID]; ok && tick-last < int64(t.tun.SplashCooldownTicks) {
				continue
			}
			t.lastSpawn[e.ID] = tick
		}

		pos := mgl64.Vec3{e.Position.X(), surface + 0.01, e.Position.Z()}
		size := SplashSize(e)
		height := SplashHeight(speed, t.tun.SplashMinSpeed)
		out.Schedule(emission.WaterSplash{Part: emission.SplashBody, Size: size, Height: height}, pos, 0)
		out.Schedule(emission.WaterSplash{Part: emission.SplashFoam, Size: size, Height: height}, pos, 0)
		out.Schedule(emission.WaterSplash{Part: emission.SplashRing, Size: size}, pos, 0)
		n++
	}

	for id := range t.atSurface {
		if _, ok := seen[id]; !ok {
			delete(t.atSurface, id)
			delete(t.lastSpawn, id)
		}
	}
	return n
}

// Reset forgets every tracked entity.
func (t *SplashTracker) Reset() {
	clear(t.atSurface)
	clear(t.lastSpawn)
}

// Tracked returns the number of entities with surface state.
func (t *SplashTracker) Tracked() int { return len(t.atSurface) }

// EmitFallSplashes sprays water where bodies near center drop into it fast. It returns the
// number of particles queued.
func EmitFallSplashes(center mgl64.Vec3, entities []world.Entity, tun config.EntityTuning, rng *rand.Rand, out Emitter) int {
	n := 0
	for _, e := range entities {
		if !e.Alive || !e.TouchingWater {
			continue
		}
		if e.Kind == world.KindProjectile || e.Kind == world.KindBoat {
			continue
		}
		d := e.Position.Sub(center)
		if math.Abs(d.X()) > tun.FallRadius || math.Abs(d.Y()) > tun.FallRadius || math.Abs(d.Z()) > tun.FallRadius {
			continue
		}
		vy := e.Velocity.Y()
		if vy >= -tun.FallMinSpeed {
			continue
		}

		cell := e.BlockPos()
		px := float64(cell.X) + rng.Float64()
		py := float64(cell.Y) + 1
		pz := float64(cell.Z) + rng.Float64()
		count := min(5, int(math.Abs(vy)*2))
		big := vy < -0.5 && rng.Float64() < 0.4
		for i := 0; i < count; i++ {
			pos := mgl64.Vec3{px + rng.NormFloat64()*0.2, py, pz + rng.NormFloat64()*0.2}
			out.Schedule(emission.Splash{Big: big}, pos, 0)
			n++
		}
	}
	return n
}
