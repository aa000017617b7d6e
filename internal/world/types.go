package world

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockPos is an integer cell coordinate.
type BlockPos struct {
	X, Y, Z int
}

func (p BlockPos) Add(dx, dy, dz int) BlockPos { return BlockPos{p.X + dx, p.Y + dy, p.Z + dz} }
func (p BlockPos) Up() BlockPos                { return p.Add(0, 1, 0) }
func (p BlockPos) Down() BlockPos              { return p.Add(0, -1, 0) }

// Center returns the world-space center of the cell.
func (p BlockPos) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X) + 0.5, float64(p.Y) + 0.5, float64(p.Z) + 0.5}
}

// Vec returns the minimum corner of the cell.
func (p BlockPos) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(p.X), float64(p.Y), float64(p.Z)}
}

// DistSq is the squared euclidean distance between two cell coordinates.
func (p BlockPos) DistSq(o BlockPos) int {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

func (p BlockPos) String() string { return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z) }

// PosOf returns the cell containing a world-space point.
func PosOf(v mgl64.Vec3) BlockPos {
	return BlockPos{floorInt(v.X()), floorInt(v.Y()), floorInt(v.Z())}
}

func floorInt(f float64) int {
	i := int(f)
	if f < float64(i) {
		i--
	}
	return i
}

// Cardinals are the four horizontal neighbour offsets in N, S, W, E order.
var Cardinals = [4]BlockPos{{0, 0, -1}, {0, 0, 1}, {-1, 0, 0}, {1, 0, 0}}

// Horizontal8 are the cardinal and diagonal horizontal neighbour offsets.
var Horizontal8 = [8]BlockPos{
	{-1, 0, -1}, {0, 0, -1}, {1, 0, -1},
	{-1, 0, 0}, {1, 0, 0},
	{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
}

// FluidState classifies the fluid occupying a cell.
type FluidState uint8

const (
	FluidNone FluidState = iota
	FluidFlowing
	FluidStill
)

func (f FluidState) String() string {
	switch f {
	case FluidFlowing:
		return "flowing"
	case FluidStill:
		return "still"
	default:
		return "none"
	}
}

// Material is the surface family used to pick footprint variants.
type Material uint8

const (
	MaterialOther Material = iota
	MaterialSnow
	MaterialSand
	MaterialRedSand
	MaterialMud
)

// BiomeClass is the closed set of biome families the effects react to.
type BiomeClass uint8

const (
	BiomeUnknown BiomeClass = iota
	BiomeClassPlains
	BiomeClassDesert
	BiomeClassBadlands
	BiomeClassForest
	BiomeClassSavanna
	BiomeClassTaiga
	BiomeClassWindsweptHills
	BiomeClassPeaks
	BiomeClassJungle
	BiomeClassSwamp
	BiomeClassRiver
	BiomeClassBeach
	BiomeClassStonyShore
	BiomeClassOcean
	BiomeClassSnowy
	BiomeClassCave
	BiomeClassMushroom
	BiomeClassCherryGrove
	BiomeClassPaleGarden
	BiomeClassMeadow

	biomeClassCount
)

var biomeClassNames = [biomeClassCount]string{
	"unknown", "plains", "desert", "badlands", "forest", "savanna", "taiga", "windswept_hills",
	"peaks", "jungle", "swamp", "river", "beach", "stony_shore", "ocean", "snowy", "cave",
	"mushroom", "cherry_grove", "pale_garden", "meadow",
}

func (b BiomeClass) String() string {
	if b >= biomeClassCount {
		return "unknown"
	}
	return biomeClassNames[b]
}

// ParseBiomeClass maps a lowercase name to its class. Unrecognised names map to BiomeUnknown.
func ParseBiomeClass(name string) (BiomeClass, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range biomeClassNames {
		if n == name {
			return BiomeClass(i), i != 0
		}
	}
	return BiomeUnknown, false
}

// AllBiomeClasses lists every known class, excluding BiomeUnknown.
func AllBiomeClasses() []BiomeClass {
	out := make([]BiomeClass, 0, biomeClassCount-1)
	for b := BiomeClassPlains; b < biomeClassCount; b++ {
		out = append(out, b)
	}
	return out
}
