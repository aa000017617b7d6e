package world

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	// Section dimensions
	SectionHeight = 16
	NumSections   = ChunkSizeY / SectionHeight
	SectionVolume = ChunkSizeX * SectionHeight * ChunkSizeZ
)

// Section represents a 16x16x16 sub-volume of a chunk.
// An all-air section is released back to nil.
type Section struct {
	blocks []BlockType
	solid  int // non-air cells
}

// Chunk represents a 16x256x16 column of the world.
type Chunk struct {
	X, Y, Z  int
	sections [NumSections]*Section
	// heights holds one above the highest non-air cell per local column, 0 when empty.
	heights [ChunkSizeX * ChunkSizeZ]int16
}

// NewChunk creates a new chunk at the specified chunk coordinates
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{X: x, Y: y, Z: z}
}

func indexInSection(x, localY, z int) int {
	return x*SectionHeight*ChunkSizeZ + localY*ChunkSizeZ + z
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSizeX && y >= 0 && y < ChunkSizeY && z >= 0 && z < ChunkSizeZ
}

// GetBlock returns the block type at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inChunk(x, y, z) {
		return BlockTypeAir
	}
	sec := c.sections[y/SectionHeight]
	if sec == nil {
		return BlockTypeAir
	}
	return sec.blocks[indexInSection(x, y%SectionHeight, z)]
}

// SetBlock sets the block type at the specified local coordinates
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !inChunk(x, y, z) {
		return
	}

	secIdx := y / SectionHeight
	idx := indexInSection(x, y%SectionHeight, z)
	sec := c.sections[secIdx]

	if sec == nil {
		if blockType == BlockTypeAir {
			return
		}
		sec = &Section{blocks: make([]BlockType, SectionVolume)}
		c.sections[secIdx] = sec
	}

	old := sec.blocks[idx]
	if old == blockType {
		return
	}
	sec.blocks[idx] = blockType

	switch {
	case old == BlockTypeAir:
		sec.solid++
	case blockType == BlockTypeAir:
		sec.solid--
		if sec.solid == 0 {
			c.sections[secIdx] = nil
		}
	}

	col := x*ChunkSizeZ + z
	h := int(c.heights[col])
	if blockType != BlockTypeAir && y >= h {
		c.heights[col] = int16(y + 1)
	} else if blockType == BlockTypeAir && y == h-1 {
		c.heights[col] = int16(c.scanHeight(x, z, y-1))
	}
}

func (c *Chunk) scanHeight(x, z, from int) int {
	for y := from; y >= 0; y-- {
		if c.GetBlock(x, y, z) != BlockTypeAir {
			return y + 1
		}
	}
	return 0
}

// HeightAt returns one above the highest non-air cell of a local column, or 0.
func (c *Chunk) HeightAt(x, z int) int {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		return 0
	}
	return int(c.heights[x*ChunkSizeZ+z])
}
