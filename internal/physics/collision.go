// Package physics answers box and ray queries against the block grid.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/world"
)

// Solid reports blocked cells. *world.World satisfies it.
type Solid interface {
	IsSolid(pos world.BlockPos) bool
}

// Collides reports whether a body of the given width and height standing with its feet at pos
// overlaps any solid cell. Cell (x, y, z) spans [x, x+1) on each axis.
func Collides(pos mgl64.Vec3, width, height float64, g Solid) bool {
	half := width / 2
	minX := int(math.Floor(pos.X() - half))
	maxX := int(math.Floor(pos.X() + half))
	minY := int(math.Floor(pos.Y()))
	maxY := int(math.Floor(pos.Y() + height))
	minZ := int(math.Floor(pos.Z() - half))
	maxZ := int(math.Floor(pos.Z() + half))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if !g.IsSolid(world.BlockPos{X: x, Y: y, Z: z}) {
					continue
				}
				bx, by, bz := float64(x), float64(y), float64(z)
				if pos.X()-half < bx+1 && pos.X()+half > bx &&
					pos.Y() < by+1 && pos.Y()+height > by &&
					pos.Z()-half < bz+1 && pos.Z()+half > bz {
					return true
				}
			}
		}
	}
	return false
}
