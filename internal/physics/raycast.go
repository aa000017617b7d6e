package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/profiling"
	"windswept/internal/world"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 48.0
)

// Grid reports empty cells. *world.World satisfies it.
type Grid interface {
	IsAir(pos world.BlockPos) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.BlockPos
	AdjacentPosition world.BlockPos
	Distance         float64
	Hit              bool
}

// Raycast marches from start along direction and returns the first non-air cell, water
// included, between minDist and maxDist.
func Raycast(start, direction mgl64.Vec3, minDist, maxDist float64, g Grid) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	const stepSize = 0.02
	steps := int(maxDist / stepSize)

	last := world.PosOf(start)
	for i := 0; i <= steps; i++ {
		dist := float64(i) * stepSize
		if dist < minDist {
			continue
		}
		cell := world.PosOf(start.Add(direction.Mul(dist)))
		if !g.IsAir(cell) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: last,
				Distance:         dist,
				Hit:              true,
			}
		}
		last = cell
	}
	return RaycastResult{}
}
