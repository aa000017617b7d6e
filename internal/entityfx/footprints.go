package entityfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

const (
	minFootOffset     = 0.08
	maxFootOffset     = 0.6
	minPlayerSpeedSq  = 0.01
	thinLayerProbe    = 0.0625
	rainExposureProbe = 1.5
)

type stepTracker struct {
	lastPos  mgl64.Vec3
	hasLast  bool
	distance float64
	leftFoot bool
	wasInAir bool
	wetTicks int
	cooldown int
}

// Footprints keeps a step tracker per walking entity.
type Footprints struct {
	tun      config.EntityTuning
	trackers map[uuid.UUID]*stepTracker
}

func NewFootprints(tun config.EntityTuning) *Footprints {
	return &Footprints{tun: tun, trackers: make(map[uuid.UUID]*stepTracker)}
}

// FootOffset is the sideways distance of a foot from the body center.
func FootOffset(width float64) float64 {
	if width <= 0 {
		return 0.2
	}
	return clamp(width*0.3, minFootOffset, maxFootOffset)
}

// SurfaceAt picks the print family from the cell at the feet or the one below it.
func SurfaceAt(g Grid, pos world.BlockPos) emission.FootprintSurface {
	for _, p := range [2]world.BlockPos{pos, pos.Down()} {
		switch g.MaterialAt(p) {
		case world.MaterialSnow:
			return emission.SurfaceSnow
		case world.MaterialSand:
			return emission.SurfaceSand
		case world.MaterialRedSand:
			return emission.SurfaceRedSand
		case world.MaterialMud:
			return emission.SurfaceMuddy
		}
	}
	return emission.SurfacePlain
}

func wetFromWeather(e world.Entity, g Grid) bool {
	return e.TouchingWater || (g.IsRaining() && g.IsSkyVisible(e.BlockPos()))
}

// Update advances every tracker by one tick and returns the number of prints queued. Only living
// entities within the tracker radius of center leave prints.
func (f *Footprints) Update(center mgl64.Vec3, entities []world.Entity, g Grid, out Emitter) int {
	n := 0
	radiusSq := f.tun.TrackerRadius * f.tun.TrackerRadius
	seen := make(map[uuid.UUID]struct{}, len(entities))
	for _, e := range entities {
		if !e.Alive || e.Spectator || e.Swimming || !isLiving(e.Kind) {
			continue
		}
		if e.Position.Sub(center).LenSqr() > radiusSq {
			continue
		}
		seen[e.ID] = struct{}{}

		tr, ok := f.trackers[e.ID]
		if !ok {
			tr = &stepTracker{leftFoot: true}
			f.trackers[e.ID] = tr
		}
		if wetFromWeather(e, g) {
			tr.wetTicks = f.tun.WetTicks
		} else if tr.wetTicks > 0 {
			tr.wetTicks--
		}
		if tr.cooldown > 0 {
			tr.cooldown--
		}

		if !e.OnGround && !tr.wasInAir {
			tr.wasInAir = true
			continue
		}
		if e.OnGround && tr.wasInAir && tr.cooldown == 0 {
			n += f.print(e, tr, g, out)
		}
		tr.wasInAir = !e.OnGround
		if !e.OnGround {
			continue
		}

		if e.Kind != world.KindPlayer {
			if tr.cooldown == 0 && tr.hasLast && e.Position != tr.lastPos {
				n += f.print(e, tr, g, out)
			}
			tr.lastPos, tr.hasLast = e.Position, true
			continue
		}

		h := mgl64.Vec2{e.Velocity.X(), e.Velocity.Z()}
		if h.LenSqr() < minPlayerSpeedSq {
			continue
		}
		if tr.hasLast {
			tr.distance += e.Position.Sub(tr.lastPos).Len()
		}
		if tr.distance >= f.tun.FootprintStep {
			n += f.print(e, tr, g, out)
			tr.distance = 0
		}
		tr.lastPos, tr.hasLast = e.Position, true
	}

	for id := range f.trackers {
		if _, ok := seen[id]; !ok {
			delete(f.trackers, id)
		}
	}
	return n
}

func (f *Footprints) print(e world.Entity, tr *stepTracker, g Grid, out Emitter) int {
	offset := FootOffset(e.Width)
	if tr.leftFoot {
		offset = -offset
	}
	yaw := mgl64.DegToRad(e.Yaw)
	pos := mgl64.Vec3{
		e.Position.X() + offset*math.Cos(yaw),
		e.Position.Y(),
		e.Position.Z() + offset*math.Sin(yaw),
	}
	cell := world.PosOf(pos.Add(mgl64.Vec3{0, thinLayerProbe, 0}))

	fp := emission.Footprint{
		Surface: SurfaceAt(g, cell),
		Yaw:     e.Yaw,
		Size:    clamp(e.Width, 0.4, 1.4),
	}
	switch {
	case tr.wetTicks > 0 || e.TouchingWater:
		fp.Wet = true
	case g.IsRaining() && exposedToRain(g, pos):
		fp.Wet = true
	}
	out.Schedule(fp, pos, 0)

	tr.leftFoot = !tr.leftFoot
	tr.cooldown = f.tun.FootprintCooldown
	return 1
}

func exposedToRain(g Grid, pos mgl64.Vec3) bool {
	cell := world.PosOf(pos.Add(mgl64.Vec3{0, rainExposureProbe, 0}))
	return g.IsSkyVisible(cell) && !g.IsSolid(cell.Up())
}

// Wet reports whether the tracked entity still leaves wet prints.
func (f *Footprints) Wet(id uuid.UUID) bool {
	tr, ok := f.trackers[id]
	return ok && tr.wetTicks > 0
}

// Reset drops every tracker.
func (f *Footprints) Reset() {
	clear(f.trackers)
}

// Tracked returns the number of live trackers.
func (f *Footprints) Tracked() int { return len(f.trackers) }
