package world

import (
	"sync"

	"github.com/google/uuid"

	"windswept/internal/profiling"
)

// TicksPerDay is the length of one in-world day.
const TicksPerDay = 24000

// World is an in-memory voxel world with weather, time and entities.
// It answers the read-only queries the effect systems consume.
type World struct {
	store    *ChunkStore
	props    BlockProperties
	gen      TerrainGenerator
	entities *EntityManager
	seaLevel int

	mu         sync.RWMutex
	time       int64
	raining    bool
	thundering bool
	playerID   uuid.UUID
	biomes     map[[2]int]BiomeClass // per-chunk-column overrides
}

// New creates a world backed by the given generator. Chunks are generated on demand by EnsureArea.
func New(props BlockProperties, gen TerrainGenerator) *World {
	return &World{
		store:    NewChunkStore(),
		props:    props,
		gen:      gen,
		entities: NewEntityManager(),
		seaLevel: DefaultSeaLevel,
		biomes:   make(map[[2]int]BiomeClass),
	}
}

// Store exposes the chunk store.
func (w *World) Store() *ChunkStore { return w.store }

// EntityManager exposes the entity manager.
func (w *World) EntityManager() *EntityManager { return w.entities }

// EnsureArea generates every missing chunk column within radius chunks of the block position.
func (w *World) EnsureArea(center BlockPos, radius int) int {
	defer profiling.Track("world.EnsureArea")()
	cx := floorDiv(center.X, ChunkSizeX)
	cz := floorDiv(center.Z, ChunkSizeZ)
	created := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coord := ChunkCoord{X: cx + dx, Y: 0, Z: cz + dz}
			if w.store.HasChunk(coord) {
				continue
			}
			ch := NewChunk(coord.X, coord.Y, coord.Z)
			w.gen.PopulateChunk(ch)
			w.store.AddChunk(coord, ch)
			created++
		}
	}
	return created
}

// Block returns the raw block type of a cell.
func (w *World) Block(pos BlockPos) BlockType {
	return w.store.Get(pos.X, pos.Y, pos.Z)
}

// SetBlock writes a cell.
func (w *World) SetBlock(pos BlockPos, t BlockType) {
	w.store.Set(pos.X, pos.Y, pos.Z, t)
}

// Fill writes t into every cell of the inclusive box between a and b.
func (w *World) Fill(a, b BlockPos, t BlockType) {
	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
			for z := min(a.Z, b.Z); z <= max(a.Z, b.Z); z++ {
				w.store.Set(x, y, z, t)
			}
		}
	}
}

func (w *World) FluidAt(pos BlockPos) FluidState {
	return w.props.FluidOf(w.Block(pos))
}

func (w *World) IsSolid(pos BlockPos) bool {
	return w.props.IsSolid(w.Block(pos))
}

func (w *World) IsAir(pos BlockPos) bool {
	return w.Block(pos) == BlockTypeAir
}

func (w *World) MaterialAt(pos BlockPos) Material {
	return w.props.MaterialOf(w.Block(pos))
}

// TopSurfaceY returns one above the highest non-air cell of the column.
func (w *World) TopSurfaceY(x, z int) int {
	return w.store.ColumnHeight(x, z)
}

// IsSkyVisible reports whether nothing non-air sits above the cell.
func (w *World) IsSkyVisible(pos BlockPos) bool {
	return pos.Y >= w.TopSurfaceY(pos.X, pos.Z)
}

// SetBiome overrides the biome class of the chunk column containing pos.
func (w *World) SetBiome(pos BlockPos, c BiomeClass) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.biomes[[2]int{floorDiv(pos.X, ChunkSizeX), floorDiv(pos.Z, ChunkSizeZ)}] = c
}

func (w *World) BiomeAt(pos BlockPos) BiomeClass {
	w.mu.RLock()
	c, ok := w.biomes[[2]int{floorDiv(pos.X, ChunkSizeX), floorDiv(pos.Z, ChunkSizeZ)}]
	w.mu.RUnlock()
	if ok {
		return c
	}
	if pos.Y < w.TopSurfaceY(pos.X, pos.Z)-8 && pos.Y < w.seaLevel-8 {
		return BiomeClassCave
	}
	return w.gen.BiomeAt(pos.X, pos.Z).Class
}

func (w *World) SeaLevel() int { return w.seaLevel }

// SetSeaLevel changes the level that counts as open water for entity effects.
func (w *World) SetSeaLevel(level int) { w.seaLevel = level }

func (w *World) Time() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.time
}

func (w *World) SetTime(t int64) {
	w.mu.Lock()
	w.time = t
	w.mu.Unlock()
}

func (w *World) CurrentDayIndex() int64 {
	return w.Time() / TicksPerDay
}

func (w *World) IsRaining() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.raining
}

func (w *World) IsThundering() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.thundering
}

// SetWeather sets rain and thunder. Thunder implies rain.
func (w *World) SetWeather(raining, thundering bool) {
	w.mu.Lock()
	w.raining = raining || thundering
	w.thundering = thundering
	w.mu.Unlock()
}

// SpawnPlayer adds the player entity and remembers its id.
func (w *World) SpawnPlayer(e *Entity) {
	e.Kind = KindPlayer
	w.entities.Add(e)
	w.mu.Lock()
	w.playerID = e.ID
	w.mu.Unlock()
}

// Player returns a snapshot of the local player.
func (w *World) Player() (Entity, bool) {
	w.mu.RLock()
	id := w.playerID
	w.mu.RUnlock()
	if id == uuid.Nil {
		return Entity{}, false
	}
	return w.entities.Get(id)
}

// Entities returns snapshots of every live entity.
func (w *World) Entities() []Entity {
	return w.entities.Snapshot()
}

// Step advances time by one tick and moves entities.
func (w *World) Step() {
	w.mu.Lock()
	w.time++
	w.mu.Unlock()
	w.entities.Update(w)
}
