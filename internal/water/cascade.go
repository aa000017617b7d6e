package water

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/profiling"
	"windswept/internal/world"
)

// CascadeField caches the waterfall impacts around a point between rescans and
// rolls cascade particles for them every tick.
type CascadeField struct {
	det     *Detector
	tun     config.CascadeTuning
	impacts []Impact
}

// NewCascadeField creates an empty field.
func NewCascadeField(det *Detector) *CascadeField {
	return &CascadeField{det: det, tun: det.cascade}
}

// Rescan replaces the cached impacts with those fed by flowing columns in the
// box around center. Each column is traced once from its topmost cell, and
// columns landing in the same place share one impact.
func (f *CascadeField) Rescan(center world.BlockPos) []Impact {
	defer profiling.Track("water.CascadeRescan")()

	g := f.det.grid
	r, h := f.tun.ScanRadius, f.tun.ScanHeight
	seen := make(map[world.BlockPos]struct{})
	impacts := make([]Impact, 0, len(f.impacts))
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			for dy := h; dy >= -h; dy-- {
				origin := center.Add(dx, dy, dz)
				if g.FluidAt(origin) != world.FluidFlowing {
					continue
				}
				if dy < h && g.FluidAt(origin.Up()) == world.FluidFlowing {
					continue
				}
				impact, ok := f.det.FindWaterfallImpact(origin)
				if !ok {
					continue
				}
				if _, dup := seen[impact]; dup {
					continue
				}
				seen[impact] = struct{}{}
				impacts = append(impacts, f.det.Analyze(impact))
			}
		}
	}
	f.impacts = impacts
	return impacts
}

// Impacts returns the impacts found by the last rescan.
func (f *CascadeField) Impacts() []Impact { return f.impacts }

// Nearest returns the cached impact closest to pos within radius blocks.
func (f *CascadeField) Nearest(pos mgl64.Vec3, radius float64) (Impact, float64, bool) {
	best, bestDist := -1, radius
	for i, im := range f.impacts {
		if d := im.Position.Center().Sub(pos).Len(); d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Impact{}, 0, false
	}
	return f.impacts[best], bestDist, true
}

// Emit rolls one cascade particle per cached impact and queues those that
// survive culling. It returns the number queued.
func (f *CascadeField) Emit(rng *rand.Rand, cull Culler, out Emitter) int {
	n := 0
	for _, im := range f.impacts {
		if rng.Float64() >= f.det.SpawnChance(im) {
			continue
		}
		pos := f.spawnPosition(im, rng)
		if cull != nil && !cull.ShouldRender(pos) {
			continue
		}
		out.Schedule(emission.Cascade{Scale: f.det.Scale(im)}, pos, 0)
		n++
	}
	return n
}

// Force queues one cascade particle at every cached impact, ignoring chance and culling.
func (f *CascadeField) Force(rng *rand.Rand, out Emitter) int {
	for _, im := range f.impacts {
		out.Schedule(emission.Cascade{Scale: f.det.Scale(im)}, f.spawnPosition(im, rng), 0)
	}
	return len(f.impacts)
}

// spawnPosition places a particle just above the impact, usually pushed toward an open side.
func (f *CascadeField) spawnPosition(im Impact, rng *rand.Rand) mgl64.Vec3 {
	y := float64(im.Position.Y) + 1.1 + rng.Float64()*0.3
	var dx, dz float64
	if len(im.OpenSides) > 0 && rng.Float64() < f.tun.OpenSideBias {
		side := im.OpenSides[rng.Intn(len(im.OpenSides))]
		dx = clamp(float64(side.X)*0.6+(rng.Float64()-0.5)*0.4, -0.8, 0.8)
		dz = clamp(float64(side.Z)*0.6+(rng.Float64()-0.5)*0.4, -0.8, 0.8)
	} else {
		dx = (rng.Float64() - 0.5) * 1.2
		dz = (rng.Float64() - 0.5) * 1.2
	}
	return mgl64.Vec3{float64(im.Position.X) + 0.5 + dx, y, float64(im.Position.Z) + 0.5 + dz}
}

// Reset drops the cached impacts.
func (f *CascadeField) Reset() {
	f.impacts = nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
