package world

import "sync"

// ChunkCoord identifies a chunk column. The world is one chunk tall, so Y is always 0
// for stored chunks.
type ChunkCoord struct {
	X, Y, Z int
}

// ChunkStore holds the generated chunk columns. Its lock covers cell reads and writes as
// well as the map, so mesh workers may read while scene code edits.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
	edits  uint64
}

func NewChunkStore() *ChunkStore {
	return &ChunkStore{chunks: make(map[ChunkCoord]*Chunk)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func columnOf(x, z int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, ChunkSizeX), Z: floorDiv(z, ChunkSizeZ)}
}

// Get returns the block at world coordinates. Cells outside loaded columns, below 0 or
// above the build height read as air.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	if y < 0 || y >= ChunkSizeY {
		return BlockTypeAir
	}
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c := cs.chunks[columnOf(x, z)]
	if c == nil {
		return BlockTypeAir
	}
	return c.GetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// Set writes a cell, creating an empty column for non-air writes into unloaded space.
func (cs *ChunkStore) Set(x, y, z int, t BlockType) {
	if y < 0 || y >= ChunkSizeY {
		return
	}
	coord := columnOf(x, z)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	c := cs.chunks[coord]
	if c == nil {
		if t == BlockTypeAir {
			return
		}
		c = NewChunk(coord.X, 0, coord.Z)
		cs.chunks[coord] = c
	}
	c.SetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ), t)
	cs.edits++
}

// ColumnHeight returns one above the highest non-air cell in the world column, or 0.
func (cs *ChunkStore) ColumnHeight(x, z int) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	c := cs.chunks[columnOf(x, z)]
	if c == nil {
		return 0
	}
	return c.HeightAt(mod(x, ChunkSizeX), mod(z, ChunkSizeZ))
}

func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ok
}

// AddChunk stores a generated chunk. An existing column wins.
func (cs *ChunkStore) AddChunk(coord ChunkCoord, c *Chunk) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		cs.chunks[coord] = c
	}
}

// Len returns the number of loaded columns.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Edits counts cell writes since the store was created.
func (cs *ChunkStore) Edits() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.edits
}
