// Package water finds waterfalls, ponds and shorelines in the block grid and
// turns them into cascade, wave, foam and splash emissions.
package water

import (
	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/emission"
	"windswept/internal/world"
)

// Grid is the read-only block query every detector runs against.
// *world.World satisfies it.
type Grid interface {
	FluidAt(pos world.BlockPos) world.FluidState
	IsSolid(pos world.BlockPos) bool
	IsAir(pos world.BlockPos) bool
	TopSurfaceY(x, z int) int
}

// Emitter queues effects. *emission.Scheduler satisfies it.
type Emitter interface {
	Schedule(e emission.Effect, pos mgl64.Vec3, delayTicks int)
}

// Culler decides whether a particle position is worth spawning.
type Culler interface {
	ShouldRender(pos mgl64.Vec3) bool
}

// shoreBlocked reports whether a neighbour is solid ground rather than water.
func shoreBlocked(g Grid, pos world.BlockPos) bool {
	return g.IsSolid(pos) && g.FluidAt(pos) == world.FluidNone
}
