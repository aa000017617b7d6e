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

// DustClouds kicks up dust behind a sprinting player or a galloping horse the player rides.
type DustClouds struct {
	tun         config.EntityTuning
	playerGrace int
	horseGrace  int
	counter     int
	riding      bool
	lastHorse   mgl64.Vec3
}

func NewDustClouds(tun config.EntityTuning) *DustClouds {
	return &DustClouds{tun: tun}
}

// vehicleOf finds the horse the player rides, if any.
func vehicleOf(player world.Entity, entities []world.Entity) (world.Entity, bool) {
	if player.Vehicle == uuid.Nil {
		return world.Entity{}, false
	}
	for _, e := range entities {
		if e.ID == player.Vehicle && e.Kind == world.KindHorse {
			return e, true
		}
	}
	return world.Entity{}, false
}

// Update runs one tick for the local player and returns the number of clouds queued.
func (d *DustClouds) Update(player world.Entity, entities []world.Entity, g Grid, rng *rand.Rand, out Emitter) int {
	horse, riding := vehicleOf(player, entities)

	switch {
	case player.Sprinting && !player.Submerged:
		if player.OnGround {
			d.playerGrace = 0
		} else {
			d.playerGrace++
		}
		if !player.OnGround && d.playerGrace > d.tun.DustGraceTicks {
			return 0
		}
		d.counter++
		if d.counter%d.tun.DustIntervalTicks == 0 {
			return EmitDust(player.BlockPos(), 1, g, rng, out)
		}

	case riding:
		if horse.OnGround {
			d.horseGrace = 0
		} else {
			d.horseGrace++
		}
		if (!horse.OnGround && d.horseGrace > d.tun.DustGraceTicks) || horse.Submerged {
			return 0
		}
		if !d.riding {
			d.riding = true
			d.lastHorse = horse.Position
			return 0
		}
		dx := horse.Position.X() - d.lastHorse.X()
		dz := horse.Position.Z() - d.lastHorse.Z()
		d.lastHorse = horse.Position
		if math.Hypot(dx, dz)*ticksPerSecond <= d.tun.HorseMinSpeed {
			return 0
		}
		d.counter++
		if d.counter%d.tun.DustIntervalTicks == 0 {
			return EmitDust(horse.BlockPos(), 2, g, rng, out)
		}

	default:
		d.Reset()
	}
	return 0
}

// Reset returns to the on-foot, standing state.
func (d *DustClouds) Reset() {
	d.playerGrace = 0
	d.horseGrace = 0
	d.counter = 0
	d.riding = false
}

// EmitDust scatters count clouds around the feet cell. Clouds need solid ground under them.
func EmitDust(feet world.BlockPos, count int, g Grid, rng *rand.Rand, out Emitter) int {
	if !g.IsSolid(feet.Down()) {
		return 0
	}
	for i := 0; i < count; i++ {
		pos := mgl64.Vec3{
			float64(feet.X) + 0.5 + (rng.Float64()-0.5)*0.3,
			float64(feet.Y) + 0.1,
			float64(feet.Z) + 0.5 + (rng.Float64()-0.5)*0.3,
		}
		vel := mgl64.Vec3{
			(rng.Float64() - 0.5) * 0.015,
			0.03 + rng.Float64()*0.03,
			(rng.Float64() - 0.5) * 0.015,
		}
		out.Schedule(emission.DustCloud{Velocity: vel, Scale: 1 + rng.Float64()*0.3}, pos, 0)
	}
	return count
}
