package registry

import (
	"fmt"
	"sync"

	"windswept/internal/world"
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            world.BlockType
	Name          string
	IsSolid       bool
	IsTransparent bool
	Fluid         world.FluidState
	Material      world.Material
}

var (
	Blocks     = make(map[world.BlockType]*BlockDefinition)
	BlockNames = make(map[string]world.BlockType)

	initOnce sync.Once
)

// RegisterBlock adds a definition. Registering the same ID or name twice panics.
func RegisterBlock(def *BlockDefinition) {
	if _, dup := Blocks[def.ID]; dup {
		panic(fmt.Sprintf("registry: block id %d registered twice", def.ID))
	}
	if _, dup := BlockNames[def.Name]; dup {
		panic(fmt.Sprintf("registry: block name %q registered twice", def.Name))
	}
	Blocks[def.ID] = def
	BlockNames[def.Name] = def.ID
}

// Lookup returns the definition for a block name.
func Lookup(name string) (*BlockDefinition, bool) {
	id, ok := BlockNames[name]
	if !ok {
		return nil, false
	}
	return Blocks[id], true
}

// InitRegistry registers the built-in blocks. Safe to call more than once.
func InitRegistry() {
	initOnce.Do(registerDefaults)
}

func registerDefaults() {
	RegisterBlock(&BlockDefinition{
		ID:            world.BlockTypeAir,
		Name:          "air",
		IsTransparent: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:      world.BlockTypeGrass,
		Name:    "grass",
		IsSolid: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:       world.BlockTypeDirt,
		Name:     "dirt",
		IsSolid:  true,
		Material: world.MaterialMud,
	})
	RegisterBlock(&BlockDefinition{
		ID:      world.BlockTypeStone,
		Name:    "stone",
		IsSolid: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:      world.BlockTypeBedrock,
		Name:    "bedrock",
		IsSolid: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:       world.BlockTypeSand,
		Name:     "sand",
		IsSolid:  true,
		Material: world.MaterialSand,
	})
	RegisterBlock(&BlockDefinition{
		ID:       world.BlockTypeRedSand,
		Name:     "red_sand",
		IsSolid:  true,
		Material: world.MaterialRedSand,
	})
	RegisterBlock(&BlockDefinition{
		ID:       world.BlockTypeSnow,
		Name:     "snow",
		IsSolid:  true,
		Material: world.MaterialSnow,
	})
	RegisterBlock(&BlockDefinition{
		ID:       world.BlockTypeMud,
		Name:     "mud",
		IsSolid:  true,
		Material: world.MaterialMud,
	})
	RegisterBlock(&BlockDefinition{
		ID:      world.BlockTypeGravel,
		Name:    "gravel",
		IsSolid: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:            world.BlockTypeLeaves,
		Name:          "leaves",
		IsSolid:       true,
		IsTransparent: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:            world.BlockTypeTallGrass,
		Name:          "tall_grass",
		IsTransparent: true,
	})
	RegisterBlock(&BlockDefinition{
		ID:            world.BlockTypeWaterStill,
		Name:          "water_still",
		IsTransparent: true,
		Fluid:         world.FluidStill,
	})
	RegisterBlock(&BlockDefinition{
		ID:            world.BlockTypeWaterFlowing,
		Name:          "water_flowing",
		IsTransparent: true,
		Fluid:         world.FluidFlowing,
	})
}

// Table implements world.BlockProperties over the registered definitions.
// Unknown types read as solid, non-fluid stone-like blocks.
type Table struct{}

// Properties initialises the registry and returns its property table.
func Properties() Table {
	InitRegistry()
	return Table{}
}

func (Table) IsSolid(t world.BlockType) bool {
	if def, ok := Blocks[t]; ok {
		return def.IsSolid
	}
	return true
}

func (Table) FluidOf(t world.BlockType) world.FluidState {
	if def, ok := Blocks[t]; ok {
		return def.Fluid
	}
	return world.FluidNone
}

func (Table) MaterialOf(t world.BlockType) world.Material {
	if def, ok := Blocks[t]; ok {
		return def.Material
	}
	return world.MaterialOther
}
