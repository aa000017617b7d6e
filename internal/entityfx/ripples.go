package entityfx

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/world"
)

// RippleSettings shapes the rings one class of entity makes.
type RippleSettings struct {
	SizeMultiplier float64
	MaxAge         int
	Speed          float64
}

var rippleSettings = map[world.EntityKind]RippleSettings{
	world.KindPlayer:     {SizeMultiplier: 1.5, MaxAge: 40, Speed: 0.5},
	world.KindAnimal:     {SizeMultiplier: 1.5, MaxAge: 40, Speed: 0.5},
	world.KindHorse:      {SizeMultiplier: 1.5, MaxAge: 40, Speed: 0.5},
	world.KindMonster:    {SizeMultiplier: 1.2, MaxAge: 40, Speed: 0.5},
	world.KindItem:       {SizeMultiplier: 1.0, MaxAge: 20, Speed: 0.5},
	world.KindProjectile: {SizeMultiplier: 1.0, MaxAge: 20, Speed: 0.5},
	world.KindBoat:       {SizeMultiplier: 2.5, MaxAge: 40, Speed: 0.5},
	world.KindRavager:    {SizeMultiplier: 4.5, MaxAge: 30, Speed: 0.5},
}

// RaindropRipple is the small ring used for forced ripple bursts.
var RaindropRipple = RippleSettings{SizeMultiplier: 1.0, MaxAge: 20, Speed: 0.5}

// RippleSettingsFor returns the settings for an entity class, falling back to the player's.
func RippleSettingsFor(k world.EntityKind) RippleSettings {
	if s, ok := rippleSettings[k]; ok {
		return s
	}
	return rippleSettings[world.KindPlayer]
}

// RippleSize scales the body size by the class multiplier.
func RippleSize(e world.Entity) float64 {
	size := (e.Width + e.Height) / 2
	return clamp(size*RippleSettingsFor(e.Kind).SizeMultiplier, 0.5, 2.0)
}

// ShouldRipple reports whether an entity is in water and stirring it.
func ShouldRipple(e world.Entity, g Grid) bool {
	if !e.Alive || !e.TouchingWater || g.FluidAt(e.BlockPos()) == world.FluidNone {
		return false
	}
	return e.HorizontalSpeed() > 0.01 || e.Submerged || e.Position.Y() < float64(g.SeaLevel())
}

// EmitRipples rolls a ripple for every stirring entity and returns the number queued.
func EmitRipples(entities []world.Entity, g Grid, tun config.EntityTuning, rng *rand.Rand, out Emitter) int {
	n := 0
	for _, e := range entities {
		if !ShouldRipple(e, g) {
			continue
		}
		if rng.Float64() > tun.RippleChance {
			continue
		}
		cell := e.BlockPos()
		s := RippleSettingsFor(e.Kind)
		y := float64(cell.Y) + fluidHeight(g.FluidAt(cell)) + 0.1
		out.Schedule(emission.Ripple{
			Size:   RippleSize(e),
			MaxAge: s.MaxAge,
			Speed:  s.Speed,
		}, mgl64.Vec3{e.Position.X(), y, e.Position.Z()}, 0)
		n++
	}
	return n
}
