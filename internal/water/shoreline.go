package water

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/profiling"
	"windswept/internal/world"
)

// Edge is an exposed still-water cell touching solid ground.
type Edge struct {
	Position world.BlockPos
	// Normal points from the shore into the water, on the XZ plane.
	Normal          mgl64.Vec2
	WaterNeighbours int
	IsCliff         bool
	CliffHeight     float64
}

// ShorelineEdge classifies a surface cell. The cell must be still water with no
// fluid above it, touch solid ground on at least one cardinal side, and not be
// enclosed by water on all four.
func (d *Detector) ShorelineEdge(pos world.BlockPos, rng *rand.Rand) (Edge, bool) {
	g := d.grid
	if g.FluidAt(pos) != world.FluidStill || g.FluidAt(pos.Up()) != world.FluidNone {
		return Edge{}, false
	}
	var nx, nz float64
	edge, water := false, 0
	for _, off := range world.Cardinals {
		n := pos.Add(off.X, off.Y, off.Z)
		if shoreBlocked(g, n) {
			edge = true
			nx -= float64(off.X)
			nz -= float64(off.Z)
		} else if g.FluidAt(n) != world.FluidNone {
			water++
		}
	}
	// a blocked side is never counted as water, so edge cells have at most 3 fluid neighbours
	if !edge {
		return Edge{}, false
	}
	normal := mgl64.Vec2{nx, nz}
	if normal.Len() == 0 {
		normal = randomUnit2(rng)
	} else {
		normal = normal.Normalize()
	}
	cliff := d.cliffHeight(pos.Up(), float64(pos.Y+1))
	return Edge{
		Position:        pos,
		Normal:          normal,
		WaterNeighbours: water,
		IsCliff:         cliff > 0,
		CliffHeight:     cliff,
	}, true
}

// IsLargeBody reports whether enough exposed still water surrounds pos on its layer.
func (d *Detector) IsLargeBody(pos world.BlockPos) bool {
	r := d.waves.LargeBodyRadius
	count := 0
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			p := pos.Add(dx, 0, dz)
			if d.grid.FluidAt(p) == world.FluidStill && d.grid.FluidAt(p.Up()) == world.FluidNone {
				count++
			}
		}
	}
	return count >= d.waves.LargeBodyMinCells
}

// ScanShoreline returns every large-body shoreline edge on the surface columns
// within the wave radius of center.
func (d *Detector) ScanShoreline(center world.BlockPos, rng *rand.Rand) []Edge {
	defer profiling.Track("water.ScanShoreline")()

	r := d.waves.Radius
	var edges []Edge
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			x, z := center.X+dx, center.Z+dz
			pos := world.BlockPos{X: x, Y: d.grid.TopSurfaceY(x, z) - 1, Z: z}
			e, ok := d.ShorelineEdge(pos, rng)
			if !ok || !d.IsLargeBody(pos) {
				continue
			}
			edges = append(edges, e)
		}
	}
	return edges
}

// cliffHeight is how far the tallest solid cardinal neighbour of cell rises
// above y, or zero when none rises at least MinCliffHeight.
func (d *Detector) cliffHeight(cell world.BlockPos, y float64) float64 {
	best := 0.0
	for _, off := range world.Cardinals {
		n := cell.Add(off.X, off.Y, off.Z)
		if !shoreBlocked(d.grid, n) {
			continue
		}
		diff := float64(d.grid.TopSurfaceY(n.X, n.Z)) - y
		if diff >= d.waves.MinCliffHeight {
			best = math.Max(best, diff)
		}
	}
	return best
}

func randomUnit2(rng *rand.Rand) mgl64.Vec2 {
	for {
		v := mgl64.Vec2{rng.Float64() - 0.5, rng.Float64() - 0.5}
		if l := v.Len(); l > 1e-6 {
			return v.Mul(1 / l)
		}
	}
}
