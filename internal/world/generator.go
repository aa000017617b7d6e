package world

import (
	"math"
)

// DefaultSeaLevel is the still-water fill height of generated terrain.
const DefaultSeaLevel = 62

// TerrainGenerator fills freshly created chunks.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	BiomeAt(worldX, worldZ int) *Biome
	PopulateChunk(c *Chunk)
}

// Generator handles noise terrain generation with sea-level water.
type Generator struct {
	seed     int64
	scale    float64
	seaLevel int
	amp      float64
	height   fractal
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:     seed,
		scale:    1.0 / 64.0,
		seaLevel: DefaultSeaLevel,
		amp:      24,
		height:   fractal{seed: seed, octaves: 4, persistence: 0.5, lacunarity: 2},
	}
}

// WithSeaLevel returns a copy that floods up to level.
func (g *Generator) WithSeaLevel(level int) *Generator {
	c := *g
	c.seaLevel = level
	return &c
}

// BiomeAt returns the biome of a column.
func (g *Generator) BiomeAt(worldX, worldZ int) *Biome {
	return GetBiomeForCoords(float64(worldX), float64(worldZ), g.seed)
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	b := g.BiomeAt(worldX, worldZ)
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := g.height.at(x, z)
	height := float64(g.seaLevel) + b.MinHeight*16 + n*b.MaxHeight*g.amp
	if height < 1 {
		height = 1
	}
	if height > ChunkSizeY-2 {
		height = ChunkSizeY - 2
	}
	return int(math.Floor(height))
}

// PopulateChunk fills a chunk using the noise heightmap and floods columns below sea level.
func (g *Generator) PopulateChunk(c *Chunk) {
	if c.Y != 0 {
		return
	}
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			worldX := c.X*ChunkSizeX + lx
			worldZ := c.Z*ChunkSizeZ + lz
			b := g.BiomeAt(worldX, worldZ)
			fillColumn(c, lx, lz, g.HeightAt(worldX, worldZ), g.seaLevel, b)
		}
	}
}

func fillColumn(c *Chunk, lx, lz, height, seaLevel int, b *Biome) {
	c.SetBlock(lx, 0, lz, BlockTypeBedrock)
	for y := 1; y < height; y++ {
		if y < height-3 {
			c.SetBlock(lx, y, lz, BlockTypeStone)
		} else {
			c.SetBlock(lx, y, lz, b.FillerBlock)
		}
	}
	top := b.TopBlock
	if height < seaLevel && top == BlockTypeGrass {
		top = BlockTypeDirt
	}
	c.SetBlock(lx, height, lz, top)
	for y := height + 1; y <= seaLevel; y++ {
		c.SetBlock(lx, y, lz, BlockTypeWaterStill)
	}
}

// FlatGenerator builds a level world of one biome, used by scenes and tests.
type FlatGenerator struct {
	height int
	biome  *Biome
}

// NewFlatGenerator creates a plains world whose grass layer sits at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height, biome: BiomePlains}
}

// WithBiome returns a copy that reports and paints the given biome.
func (g *FlatGenerator) WithBiome(b *Biome) *FlatGenerator {
	return &FlatGenerator{height: g.height, biome: b}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int   { return g.height }
func (g *FlatGenerator) BiomeAt(worldX, worldZ int) *Biome { return g.biome }

// PopulateChunk fills every column up to the flat height. No water is placed.
func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	if c.Y != 0 {
		return
	}
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			fillColumn(c, lx, lz, g.height, -1, g.biome)
		}
	}
}
