package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeBedrock
	BlockTypeSand
	BlockTypeRedSand
	BlockTypeSnow
	BlockTypeMud
	BlockTypeGravel
	BlockTypeLeaves
	BlockTypeTallGrass
	BlockTypeWaterStill
	BlockTypeWaterFlowing

	blockTypeCount
)

var blockNames = [blockTypeCount]string{
	"air", "grass", "dirt", "stone", "bedrock", "sand", "red_sand", "snow", "mud", "gravel",
	"leaves", "tall_grass", "water", "flowing_water",
}

func (t BlockType) String() string {
	if t >= blockTypeCount {
		return "unknown"
	}
	return blockNames[t]
}

// BlockProperties answers the per-type questions the world queries need.
// The registry package provides the production table.
type BlockProperties interface {
	IsSolid(t BlockType) bool
	FluidOf(t BlockType) FluidState
	MaterialOf(t BlockType) Material
}

// BlockColor returns the debug color used by the viewer and the feature map.
func BlockColor(t BlockType) mgl32.Vec3 {
	switch t {
	case BlockTypeGrass, BlockTypeTallGrass:
		return mgl32.Vec3{0.36, 0.62, 0.27}
	case BlockTypeDirt:
		return mgl32.Vec3{0.47, 0.33, 0.22}
	case BlockTypeStone, BlockTypeGravel:
		return mgl32.Vec3{0.5, 0.5, 0.5}
	case BlockTypeBedrock:
		return mgl32.Vec3{0.2, 0.2, 0.2}
	case BlockTypeSand:
		return mgl32.Vec3{0.86, 0.81, 0.6}
	case BlockTypeRedSand:
		return mgl32.Vec3{0.75, 0.4, 0.16}
	case BlockTypeSnow:
		return mgl32.Vec3{0.95, 0.97, 1.0}
	case BlockTypeMud:
		return mgl32.Vec3{0.24, 0.2, 0.2}
	case BlockTypeLeaves:
		return mgl32.Vec3{0.2, 0.45, 0.15}
	case BlockTypeWaterStill:
		return mgl32.Vec3{0.18, 0.33, 0.8}
	case BlockTypeWaterFlowing:
		return mgl32.Vec3{0.35, 0.55, 0.95}
	default:
		return mgl32.Vec3{1, 0, 1} // missing
	}
}
