package world

// Scene builders stamp small water features into an existing world.

// BuildPool fills a square of side 2*radius+1 with still water, depth cells deep,
// whose top layer is at surface.Y. The floor below the pool is stone.
func (w *World) BuildPool(surface BlockPos, radius, depth int) {
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			top := surface.Add(dx, 0, dz)
			for i := 0; i < depth; i++ {
				w.SetBlock(top.Add(0, -i, 0), BlockTypeWaterStill)
			}
			w.SetBlock(top.Add(0, -depth, 0), BlockTypeStone)
		}
	}
}

// BuildWaterfall places a column of flowing water of the given length hanging down from top.
// A stone wall is raised on the -X side so the column reads as a cliff face.
func (w *World) BuildWaterfall(top BlockPos, length int) {
	for i := 0; i < length; i++ {
		p := top.Add(0, -i, 0)
		w.SetBlock(p, BlockTypeWaterFlowing)
		w.SetBlock(p.Add(-1, 0, 0), BlockTypeStone)
	}
}

// BuildLake carves a rectangular lake with a raised rock rim on the +X edge,
// used to exercise shoreline and cliff detection.
func (w *World) BuildLake(lo, hi BlockPos, cliffHeight int) {
	for x := lo.X; x <= hi.X; x++ {
		for z := lo.Z; z <= hi.Z; z++ {
			p := BlockPos{x, lo.Y, z}
			w.SetBlock(p.Down(), BlockTypeSand)
			w.SetBlock(p, BlockTypeWaterStill)
		}
	}
	for z := lo.Z - 1; z <= hi.Z+1; z++ {
		for y := 0; y <= cliffHeight; y++ {
			w.SetBlock(BlockPos{hi.X + 1, lo.Y + y, z}, BlockTypeStone)
		}
	}
}
