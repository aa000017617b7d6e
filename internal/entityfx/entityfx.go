// Package entityfx spawns the effects bodies leave behind: ripples, splashes, footprints and dust.
package entityfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/emission"
	"windswept/internal/world"
)

// Grid is the world view entity effects read.
type Grid interface {
	FluidAt(pos world.BlockPos) world.FluidState
	IsSolid(pos world.BlockPos) bool
	MaterialAt(pos world.BlockPos) world.Material
	TopSurfaceY(x, z int) int
	IsSkyVisible(pos world.BlockPos) bool
	SeaLevel() int
	IsRaining() bool
}

// Emitter queues effects. *emission.Scheduler satisfies it.
type Emitter interface {
	Schedule(e emission.Effect, pos mgl64.Vec3, delayTicks int)
}

// ticksPerSecond converts per-tick displacement to blocks per second.
const ticksPerSecond = 20

// maxSurfaceSearch bounds the downward walk looking for a water surface.
const maxSurfaceSearch = 64

// fluidHeight is the fill level of a fluid cell.
func fluidHeight(f world.FluidState) float64 {
	switch f {
	case world.FluidStill:
		return 8.0 / 9.0
	case world.FluidFlowing:
		return 0.5
	default:
		return 0
	}
}

// waterSurfaceY walks down the column from the top surface and returns the height of the first
// fluid cell with no fluid above it.
func waterSurfaceY(g Grid, x, z int) (float64, bool) {
	top := g.TopSurfaceY(x, z)
	for y := top; y >= top-maxSurfaceSearch; y-- {
		p := world.BlockPos{X: x, Y: y, Z: z}
		f := g.FluidAt(p)
		if f == world.FluidNone {
			continue
		}
		if g.FluidAt(p.Up()) == world.FluidNone {
			return float64(y) + fluidHeight(f), true
		}
	}
	return 0, false
}

// isLiving reports whether the kind walks and leaves footprints.
func isLiving(k world.EntityKind) bool {
	switch k {
	case world.KindItem, world.KindProjectile, world.KindBoat:
		return false
	default:
		return true
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
