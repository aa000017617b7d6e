package water

import (
	"windswept/internal/config"
	"windswept/internal/world"
)

// Impact is a waterfall landing point on a pond surface with its derived scores.
type Impact struct {
	Position  world.BlockPos
	Intensity float64
	PondSize  float64
	// OpenSides are the cardinal offsets around the impact not blocked by solid ground.
	OpenSides []world.BlockPos
}

// Detector runs the waterfall and shoreline searches over a grid.
type Detector struct {
	grid    Grid
	cascade config.CascadeTuning
	waves   config.WaveTuning
}

// NewDetector binds a detector to a grid and the cascade and wave tuning.
func NewDetector(g Grid, t config.Tuning) *Detector {
	return &Detector{grid: g, cascade: t.Cascade, waves: t.Waves}
}

// FindWaterfallImpact traces a flowing column down from origin and returns the
// surface of the pond it lands in. Columns that hit ground, or run deeper than
// the trace limit, have no impact.
func (d *Detector) FindWaterfallImpact(origin world.BlockPos) (world.BlockPos, bool) {
	if d.grid.FluidAt(origin) != world.FluidFlowing {
		return world.BlockPos{}, false
	}
	pos := origin.Down()
	for i := 0; i < d.cascade.MaxTraceDepth; i++ {
		switch d.grid.FluidAt(pos) {
		case world.FluidStill:
			if d.IsValidPond(pos) {
				return d.PondSurface(pos), true
			}
		case world.FluidFlowing:
		default:
			if !d.grid.IsAir(pos) {
				return world.BlockPos{}, false
			}
		}
		pos = pos.Down()
	}
	return world.BlockPos{}, false
}

// IsValidPond reports whether a still cell has enough still neighbours among
// its eight horizontal neighbours to count as a body of water.
func (d *Detector) IsValidPond(pos world.BlockPos) bool {
	if d.grid.FluidAt(pos) != world.FluidStill {
		return false
	}
	n := 0
	for _, off := range world.Horizontal8 {
		if d.grid.FluidAt(pos.Add(off.X, off.Y, off.Z)) == world.FluidStill {
			n++
		}
	}
	return n >= d.cascade.MinPondNeighbours
}

// PondSurface climbs from a pond cell to its topmost still cell.
func (d *Detector) PondSurface(pos world.BlockPos) world.BlockPos {
	for i := 0; i < d.cascade.MaxTraceDepth; i++ {
		up := pos.Up()
		if !d.IsValidPond(up) {
			break
		}
		pos = up
	}
	return pos
}

// Intensity scores the column above an impact. Flowing cells add one step and
// still cells add IntensitySourceMul steps. Air gaps are skipped; anything else
// ends the scan.
func (d *Detector) Intensity(impact world.BlockPos) float64 {
	n := 0
	pos := impact.Up()
scan:
	for i := 0; i < d.cascade.IntensityScan; i++ {
		switch d.grid.FluidAt(pos) {
		case world.FluidFlowing:
			n++
		case world.FluidStill:
			n += d.cascade.IntensitySourceMul
		default:
			if !d.grid.IsAir(pos) {
				break scan
			}
		}
		pos = pos.Up()
	}
	return min(1+float64(n)*d.cascade.IntensityStep, d.cascade.IntensityCap)
}

// PondSizeMultiplier counts exposed still cells in a box around the impact.
func (d *Detector) PondSizeMultiplier(impact world.BlockPos) float64 {
	r, v := d.cascade.PondRadius, d.cascade.PondVertical
	count := 0
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			for dy := -v; dy <= v; dy++ {
				p := impact.Add(dx, dy, dz)
				if d.grid.FluidAt(p) == world.FluidStill && d.grid.FluidAt(p.Up()) != world.FluidStill {
					count++
				}
			}
		}
	}
	return min(1+float64(count)*d.cascade.PondCellWeight, d.cascade.PondCap)
}

// OpenSides lists the cardinal offsets next to the impact that are not solid.
func (d *Detector) OpenSides(impact world.BlockPos) []world.BlockPos {
	var open []world.BlockPos
	for _, off := range world.Cardinals {
		if !d.grid.IsSolid(impact.Add(off.X, off.Y, off.Z)) {
			open = append(open, off)
		}
	}
	return open
}

// Analyze scores an impact point.
func (d *Detector) Analyze(impact world.BlockPos) Impact {
	return Impact{
		Position:  impact,
		Intensity: d.Intensity(impact),
		PondSize:  d.PondSizeMultiplier(impact),
		OpenSides: d.OpenSides(impact),
	}
}

// SpawnChance is the per-tick probability of one cascade particle at the impact.
func (d *Detector) SpawnChance(im Impact) float64 {
	c := d.cascade.BaseChance * im.Intensity * im.PondSize * (1 + float64(len(im.OpenSides))*d.cascade.OpenSideBonus)
	return min(c, d.cascade.ChanceCap)
}

// Scale is the cascade particle size at the impact.
func (d *Detector) Scale(im Impact) float64 {
	s := d.cascade.ScaleBase + (im.Intensity-1)*d.cascade.ScalePerIntensity + float64(len(im.OpenSides))*d.cascade.ScalePerOpenSide
	return min(s, d.cascade.ScaleCap)
}
