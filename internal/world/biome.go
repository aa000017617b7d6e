package world

// Biome defines the properties of a terrain type
type Biome struct {
	Name        string
	Class       BiomeClass
	MinHeight   float64   // Base height
	MaxHeight   float64   // Height variation
	TopBlock    BlockType // e.g. Grass
	FillerBlock BlockType // e.g. Dirt (under grass)
}

var (
	BiomePlains = &Biome{
		Name:        "Plains",
		Class:       BiomeClassPlains,
		MinHeight:   0.1,
		MaxHeight:   0.2,
		TopBlock:    BlockTypeGrass,
		FillerBlock: BlockTypeDirt,
	}
	BiomeForest = &Biome{
		Name:        "Forest",
		Class:       BiomeClassForest,
		MinHeight:   0.1,
		MaxHeight:   0.3,
		TopBlock:    BlockTypeGrass,
		FillerBlock: BlockTypeDirt,
	}
	BiomeDesert = &Biome{
		Name:        "Desert",
		Class:       BiomeClassDesert,
		MinHeight:   0.1,
		MaxHeight:   0.15,
		TopBlock:    BlockTypeSand,
		FillerBlock: BlockTypeSand,
	}
	BiomeBadlands = &Biome{
		Name:        "Badlands",
		Class:       BiomeClassBadlands,
		MinHeight:   0.2,
		MaxHeight:   0.6,
		TopBlock:    BlockTypeRedSand,
		FillerBlock: BlockTypeRedSand,
	}
	BiomeSwamp = &Biome{
		Name:        "Swamp",
		Class:       BiomeClassSwamp,
		MinHeight:   -0.2,
		MaxHeight:   0.1,
		TopBlock:    BlockTypeMud,
		FillerBlock: BlockTypeDirt,
	}
	BiomeHills = &Biome{
		Name:        "Windswept Hills",
		Class:       BiomeClassWindsweptHills,
		MinHeight:   0.3,
		MaxHeight:   1.2,
		TopBlock:    BlockTypeGrass,
		FillerBlock: BlockTypeDirt,
	}
	BiomePeaks = &Biome{
		Name:        "Peaks",
		Class:       BiomeClassPeaks,
		MinHeight:   1.0,
		MaxHeight:   1.0,
		TopBlock:    BlockTypeStone,
		FillerBlock: BlockTypeStone,
	}
	BiomeSnowy = &Biome{
		Name:        "Snowy Plains",
		Class:       BiomeClassSnowy,
		MinHeight:   0.1,
		MaxHeight:   0.25,
		TopBlock:    BlockTypeSnow,
		FillerBlock: BlockTypeDirt,
	}
	BiomeBeach = &Biome{
		Name:        "Beach",
		Class:       BiomeClassBeach,
		MinHeight:   0.0,
		MaxHeight:   0.05,
		TopBlock:    BlockTypeSand,
		FillerBlock: BlockTypeSand,
	}
	BiomeOcean = &Biome{
		Name:        "Ocean",
		Class:       BiomeClassOcean,
		MinHeight:   -1.0,
		MaxHeight:   0.1,
		TopBlock:    BlockTypeGravel,
		FillerBlock: BlockTypeDirt,
	}
)

var Biomes = []*Biome{
	BiomePlains, BiomeForest, BiomeDesert, BiomeBadlands, BiomeSwamp,
	BiomeHills, BiomePeaks, BiomeSnowy, BiomeBeach, BiomeOcean,
}

// BiomeForClass returns the terrain biome for a class, falling back to plains.
func BiomeForClass(c BiomeClass) *Biome {
	for _, b := range Biomes {
		if b.Class == c {
			return b
		}
	}
	return BiomePlains
}

// GetBiomeForCoords returns a deterministic biome for a given world coordinate.
// Elevation noise picks ocean/land/hills; temperature and humidity pick the land flavour.
func GetBiomeForCoords(x, z float64, seed int64) *Biome {
	scale := 1.0 / 400.0
	elevation := biomeNoise(seed).at(x*scale, z*scale)

	switch {
	case elevation < 0.33:
		return BiomeOcean
	case elevation < 0.36:
		return BiomeBeach
	case elevation > 0.8:
		return BiomePeaks
	case elevation > 0.68:
		return BiomeHills
	}

	temperature := biomeNoise(seed+7919).at(x*scale*0.7, z*scale*0.7)
	humidity := biomeNoise(seed+104729).at(x*scale*0.9, z*scale*0.9)

	switch {
	case temperature < 0.3:
		return BiomeSnowy
	case temperature > 0.7 && humidity < 0.35:
		if temperature > 0.78 {
			return BiomeBadlands
		}
		return BiomeDesert
	case humidity > 0.7:
		return BiomeSwamp
	case humidity > 0.5:
		return BiomeForest
	default:
		return BiomePlains
	}
}
