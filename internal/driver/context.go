package driver

import (
	"fmt"
	"math/rand"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// WorldQuery is the read-only world surface the effects consume. *world.World satisfies it.
type WorldQuery interface {
	FluidAt(pos world.BlockPos) world.FluidState
	IsSolid(pos world.BlockPos) bool
	IsAir(pos world.BlockPos) bool
	MaterialAt(pos world.BlockPos) world.Material
	TopSurfaceY(x, z int) int
	BiomeAt(pos world.BlockPos) world.BiomeClass
	IsSkyVisible(pos world.BlockPos) bool
	SeaLevel() int
	CurrentDayIndex() int64
	IsRaining() bool
	IsThundering() bool
	Player() (world.Entity, bool)
	Entities() []world.Entity
}

// EnvironmentalContext is everything one session's effects share. The driver owns it and is
// its only writer.
type EnvironmentalContext struct {
	World     WorldQuery
	Tuning    config.Tuning
	Wind      *wind.Machine
	Biomes    *wind.BiomeTable
	Scheduler *emission.Scheduler
	Rng       *rand.Rand
}

// NewEnvironmentalContext validates the tuning and builds the biome table.
func NewEnvironmentalContext(w WorldQuery, tun config.Tuning, seed int64) (*EnvironmentalContext, error) {
	if w == nil {
		return nil, fmt.Errorf("environment: nil world")
	}
	if err := tun.Validate(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	biomes, err := wind.NewBiomeTable(tun.Biomes)
	if err != nil {
		return nil, fmt.Errorf("environment: biome weights: %w", err)
	}
	return &EnvironmentalContext{
		World:     w,
		Tuning:    tun,
		Wind:      wind.NewMachine(w.CurrentDayIndex()),
		Biomes:    biomes,
		Scheduler: emission.NewScheduler(),
		Rng:       rand.New(rand.NewSource(seed)),
	}, nil
}
