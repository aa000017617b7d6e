package water

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/emission"
	"windswept/internal/world"
)

// EmitWaveGroup queues a staggered group of wave and foam particles spread
// along the shore of e, plus the occasional splash under a cliff.
// It returns the number of effects queued.
func (d *Detector) EmitWaveGroup(e Edge, rng *rand.Rand, out Emitter) int {
	t := d.waves
	nx, nz := e.Normal.X(), e.Normal.Y()
	baseX := float64(e.Position.X) + 0.5 - nx*t.ShoreOffset
	baseY := float64(e.Position.Y) + 1
	baseZ := float64(e.Position.Z) + 0.5 - nz*t.ShoreOffset
	cellY := e.Position.Y + 1

	delay := 0
	if t.MaxDelayTicks > 0 {
		delay = rng.Intn(t.MaxDelayTicks)
	}
	queued := 0
	for i := 0; i < t.GroupSize; i++ {
		offset := (float64(i) - float64(t.GroupSize-1)/2) * t.GroupSpread
		along := (rng.Float64() - 0.5) * t.Jitter
		across := (rng.Float64() - 0.5) * t.Jitter
		lift := (rng.Float64() - 0.5) * 0.01

		px := baseX - nz*(offset+along) + nx*across
		pz := baseZ + nx*(offset+along) + nz*across
		pos := mgl64.Vec3{px, baseY + lift, pz}

		cell := world.PosOf(pos)
		cell.Y = cellY
		cliff := d.cliffHeight(cell, float64(cellY))

		out.Schedule(emission.Wave{Normal: e.Normal, CliffHeight: cliff}, pos, delay)
		out.Schedule(emission.Foam{Normal: e.Normal, CliffHeight: cliff}, pos, delay)
		queued += 2

		if cliff <= 0 || rng.Float64() >= t.SplashChance {
			continue
		}
		splashes := min(t.MaxSplashes, int(cliff*0.25))
		for j := 0; j < splashes; j++ {
			sp := mgl64.Vec3{px + rng.NormFloat64()*0.2, baseY + 1, pz + rng.NormFloat64()*0.2}
			big := cliff >= t.BigSplashCliff && rng.Float64() < t.BigSplashChance
			extra := 0
			if t.SplashExtraDelay > 0 {
				extra = rng.Intn(t.SplashExtraDelay)
			}
			out.Schedule(emission.Splash{Big: big}, sp, delay+extra)
			queued++
		}
	}
	return queued
}

// EmitWaves scans the shoreline around center and queues a wave group per edge.
func (d *Detector) EmitWaves(center world.BlockPos, rng *rand.Rand, out Emitter) (edges, queued int) {
	for _, e := range d.ScanShoreline(center, rng) {
		queued += d.EmitWaveGroup(e, rng, out)
		edges++
	}
	return edges, queued
}
