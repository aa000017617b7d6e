package wind

import (
	"fmt"
	"math"

	"windswept/internal/config"
	"windswept/internal/world"
)

// Weights is the clear-weather roll distribution of one biome. The three chances sum to one.
type Weights struct {
	Soft, Normal, Heavy float64
}

// DefaultWeights applies to biomes without an entry.
var DefaultWeights = mustWeights(0.4, 0.4, 0.2)

func mustWeights(soft, normal, heavy float64) Weights {
	w, err := NewWeights(soft, normal, heavy)
	if err != nil {
		panic(err)
	}
	return w
}

// NewWeights validates and builds a weight triple.
func NewWeights(soft, normal, heavy float64) (Weights, error) {
	if soft < 0 || normal < 0 || heavy < 0 {
		return Weights{}, fmt.Errorf("wind weights must be non-negative: {%g %g %g}", soft, normal, heavy)
	}
	if sum := soft + normal + heavy; math.Abs(sum-1) > config.WeightEpsilon {
		return Weights{}, fmt.Errorf("wind weights sum to %g, want 1", sum)
	}
	return Weights{Soft: soft, Normal: normal, Heavy: heavy}, nil
}

// Roll maps a uniform value in [0,1) onto a wind type.
func (w Weights) Roll(u float64) Type {
	switch {
	case u < w.Soft:
		return Soft
	case u < w.Soft+w.Normal:
		return Normal
	default:
		return Heavy
	}
}

var builtinWeights = map[world.BiomeClass]Weights{
	world.BiomeClassPlains:         mustWeights(0.4, 0.4, 0.2),
	world.BiomeClassDesert:         mustWeights(0.6, 0.3, 0.1),
	world.BiomeClassBadlands:       mustWeights(0.6, 0.3, 0.1),
	world.BiomeClassForest:         mustWeights(0.3, 0.5, 0.2),
	world.BiomeClassSavanna:        mustWeights(0.5, 0.3, 0.2),
	world.BiomeClassTaiga:          mustWeights(0.3, 0.4, 0.3),
	world.BiomeClassWindsweptHills: mustWeights(0.2, 0.4, 0.4),
	world.BiomeClassPeaks:          mustWeights(0.2, 0.4, 0.4),
	world.BiomeClassJungle:         mustWeights(0.5, 0.4, 0.1),
	world.BiomeClassSwamp:          mustWeights(0.5, 0.4, 0.1),
	world.BiomeClassRiver:          mustWeights(0.4, 0.4, 0.2),
	world.BiomeClassBeach:          mustWeights(0.3, 0.4, 0.3),
	world.BiomeClassStonyShore:     mustWeights(0.3, 0.4, 0.3),
	world.BiomeClassOcean:          mustWeights(0.2, 0.4, 0.4),
	world.BiomeClassSnowy:          mustWeights(0.2, 0.3, 0.5),
	world.BiomeClassCave:           mustWeights(0.7, 0.3, 0.0),
	world.BiomeClassMushroom:       mustWeights(0.5, 0.4, 0.1),
	world.BiomeClassCherryGrove:    mustWeights(0.4, 0.5, 0.1),
	world.BiomeClassPaleGarden:     mustWeights(0.3, 0.4, 0.3),
	world.BiomeClassMeadow:         mustWeights(0.5, 0.4, 0.1),
}

// BiomeTable maps biome classes to roll weights.
type BiomeTable struct {
	weights map[world.BiomeClass]Weights
}

// NewBiomeTable returns the built-in table with optional overrides keyed by biome class name.
func NewBiomeTable(overrides map[string]config.BiomeWeightTuning) (*BiomeTable, error) {
	t := &BiomeTable{weights: make(map[world.BiomeClass]Weights, len(builtinWeights))}
	for c, w := range builtinWeights {
		t.weights[c] = w
	}
	for name, o := range overrides {
		c, ok := world.ParseBiomeClass(name)
		if !ok {
			return nil, fmt.Errorf("biome_weights: unknown biome %q", name)
		}
		w, err := NewWeights(o.Soft, o.Normal, o.Heavy)
		if err != nil {
			return nil, fmt.Errorf("biome_weights.%s: %w", name, err)
		}
		t.weights[c] = w
	}
	return t, nil
}

// DefaultBiomeTable is the built-in table.
var DefaultBiomeTable = &BiomeTable{weights: builtinWeights}

// For returns the weights of a class, or DefaultWeights for unknown classes.
func (t *BiomeTable) For(c world.BiomeClass) Weights {
	if w, ok := t.weights[c]; ok {
		return w
	}
	return DefaultWeights
}
