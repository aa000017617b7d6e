package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every effect constant. Zero-valued fields in a loaded file keep their defaults.
type Tuning struct {
	Wind     WindTuning                   `yaml:"wind"`
	Cascade  CascadeTuning                `yaml:"cascade"`
	Waves    WaveTuning                   `yaml:"waves"`
	Ambient  AmbientTuning                `yaml:"ambient"`
	Entities EntityTuning                 `yaml:"entities"`
	Culling  CullingTuning                `yaml:"culling"`
	Drift    DriftTuning                  `yaml:"drift"`
	Biomes   map[string]BiomeWeightTuning `yaml:"biome_weights"`
}

type WindTuning struct {
	ParticleIntervalTicks int     `yaml:"particle_interval_ticks"`
	ParticleRadius        float64 `yaml:"particle_radius"`
	ParticleMaxLift       float64 `yaml:"particle_max_lift"`
}

type CascadeTuning struct {
	ScanIntervalTicks  int     `yaml:"scan_interval_ticks"`
	ScanRadius         int     `yaml:"scan_radius"`
	ScanHeight         int     `yaml:"scan_height"`
	MaxTraceDepth      int     `yaml:"max_trace_depth"`
	MinPondNeighbours  int     `yaml:"min_pond_neighbours"`
	IntensityScan      int     `yaml:"intensity_scan"`
	IntensityStep      float64 `yaml:"intensity_step"`
	IntensitySourceMul int     `yaml:"intensity_source_weight"`
	IntensityCap       float64 `yaml:"intensity_cap"`
	PondRadius         int     `yaml:"pond_radius"`
	PondVertical       int     `yaml:"pond_vertical"`
	PondCellWeight     float64 `yaml:"pond_cell_weight"`
	PondCap            float64 `yaml:"pond_cap"`
	BaseChance         float64 `yaml:"base_chance"`
	OpenSideBonus      float64 `yaml:"open_side_bonus"`
	ChanceCap          float64 `yaml:"chance_cap"`
	ScaleBase          float64 `yaml:"scale_base"`
	ScalePerIntensity  float64 `yaml:"scale_per_intensity"`
	ScalePerOpenSide   float64 `yaml:"scale_per_open_side"`
	ScaleCap           float64 `yaml:"scale_cap"`
	OpenSideBias       float64 `yaml:"open_side_bias"`
}

type WaveTuning struct {
	IntervalTicks     int     `yaml:"interval_ticks"`
	Radius            int     `yaml:"radius"`
	GroupSize         int     `yaml:"group_size"`
	GroupSpread       float64 `yaml:"group_spread"`
	Jitter            float64 `yaml:"jitter"`
	ShoreOffset       float64 `yaml:"shore_offset"`
	MaxDelayTicks     int     `yaml:"max_delay_ticks"`
	LargeBodyRadius   int     `yaml:"large_body_radius"`
	LargeBodyMinCells int     `yaml:"large_body_min_cells"`
	MinCliffHeight    float64 `yaml:"min_cliff_height"`
	SplashChance      float64 `yaml:"splash_chance"`
	MaxSplashes       int     `yaml:"max_splashes"`
	BigSplashCliff    float64 `yaml:"big_splash_cliff"`
	BigSplashChance   float64 `yaml:"big_splash_chance"`
	SplashExtraDelay  int     `yaml:"splash_extra_delay_ticks"`
}

type AmbientTuning struct {
	UpdateIntervalTicks int     `yaml:"update_interval_ticks"`
	DeltaSeconds        float64 `yaml:"delta_seconds"`
	LoopSeconds         float64 `yaml:"loop_seconds"`
	MinAudible          float64 `yaml:"min_audible"`
	WindVolumeScale     float64 `yaml:"wind_volume_scale"`
	WindMaxVolume       float64 `yaml:"wind_max_volume"`
	WindSmoothing       float64 `yaml:"wind_smoothing"`
	WindFadeSeconds     float64 `yaml:"wind_fade_seconds"`
	CascadeRadius       float64 `yaml:"cascade_radius"`
	CascadeMaxVolume    float64 `yaml:"cascade_max_volume"`
	CascadeSmoothing    float64 `yaml:"cascade_smoothing"`
	CascadeFadeSeconds  float64 `yaml:"cascade_fade_seconds"`
}

type EntityTuning struct {
	RippleIntervalTicks int     `yaml:"ripple_interval_ticks"`
	RippleChance        float64 `yaml:"ripple_chance"`
	SplashMinSpeed      float64 `yaml:"splash_min_speed"`
	SplashCooldownTicks int     `yaml:"splash_cooldown_ticks"`
	FallRadius          float64 `yaml:"fall_radius"`
	FallMinSpeed        float64 `yaml:"fall_min_speed"`
	FootprintStep       float64 `yaml:"footprint_step"`
	FootprintCooldown   int     `yaml:"footprint_cooldown_ticks"`
	WetTicks            int     `yaml:"wet_ticks"`
	DustIntervalTicks   int     `yaml:"dust_interval_ticks"`
	DustGraceTicks      int     `yaml:"dust_grace_ticks"`
	HorseMinSpeed       float64 `yaml:"horse_min_speed"`
	TrackerRadius       float64 `yaml:"tracker_radius"`
}

type CullingTuning struct {
	MaxDistance float64 `yaml:"max_distance"`
	Margin      float64 `yaml:"margin"`
	FovDegrees  float64 `yaml:"fov_degrees"`
	Aspect      float64 `yaml:"aspect"`
}

type DriftTuning struct {
	Leaves       float64 `yaml:"leaves"`
	Smoke        float64 `yaml:"smoke"`
	Cascade      float64 `yaml:"cascade"`
	CascadeDrag  float64 `yaml:"cascade_drag"`
	Dust         float64 `yaml:"dust"`
	DustDrag     float64 `yaml:"dust_drag"`
	DragStrength float64 `yaml:"drag_above_strength"`
}

// BiomeWeightTuning overrides the daily wind roll for one biome class.
type BiomeWeightTuning struct {
	Soft   float64 `yaml:"soft"`
	Normal float64 `yaml:"normal"`
	Heavy  float64 `yaml:"heavy"`
}

// WeightEpsilon is the tolerance on biome weight sums.
const WeightEpsilon = 0.001

// Default returns the shipped tuning.
func Default() Tuning {
	return Tuning{
		Wind: WindTuning{
			ParticleIntervalTicks: 20,
			ParticleRadius:        16,
			ParticleMaxLift:       5,
		},
		Cascade: CascadeTuning{
			ScanIntervalTicks:  20,
			ScanRadius:         16,
			ScanHeight:         12,
			MaxTraceDepth:      25,
			MinPondNeighbours:  2,
			IntensityScan:      15,
			IntensityStep:      0.15,
			IntensitySourceMul: 2,
			IntensityCap:       2.5,
			PondRadius:         4,
			PondVertical:       2,
			PondCellWeight:     0.02,
			PondCap:            1.8,
			BaseChance:         0.15,
			OpenSideBonus:      0.15,
			ChanceCap:          0.6,
			ScaleBase:          0.3,
			ScalePerIntensity:  0.2,
			ScalePerOpenSide:   0.08,
			ScaleCap:           1.2,
			OpenSideBias:       0.8,
		},
		Waves: WaveTuning{
			IntervalTicks:     40,
			Radius:            32,
			GroupSize:         4,
			GroupSpread:       0.3,
			Jitter:            0.15,
			ShoreOffset:       0.25,
			MaxDelayTicks:     20,
			LargeBodyRadius:   2,
			LargeBodyMinCells: 15,
			MinCliffHeight:    2,
			SplashChance:      0.2,
			MaxSplashes:       2,
			BigSplashCliff:    5,
			BigSplashChance:   0.3,
			SplashExtraDelay:  10,
		},
		Ambient: AmbientTuning{
			UpdateIntervalTicks: 3,
			DeltaSeconds:        0.15,
			LoopSeconds:         17.5,
			MinAudible:          0.05,
			WindVolumeScale:     0.4,
			WindMaxVolume:       0.8,
			WindSmoothing:       0.15,
			WindFadeSeconds:     0.3,
			CascadeRadius:       12,
			CascadeMaxVolume:    1.2,
			CascadeSmoothing:    0.2,
			CascadeFadeSeconds:  1.5,
		},
		Entities: EntityTuning{
			RippleIntervalTicks: 5,
			RippleChance:        0.25,
			SplashMinSpeed:      0.25,
			SplashCooldownTicks: 10,
			FallRadius:          16,
			FallMinSpeed:        0.2,
			FootprintStep:       0.6,
			FootprintCooldown:   6,
			WetTicks:            60,
			DustIntervalTicks:   3,
			DustGraceTicks:      10,
			HorseMinSpeed:       1.5,
			TrackerRadius:       48,
		},
		Culling: CullingTuning{
			MaxDistance: 64,
			Margin:      2,
			FovDegrees:  70,
			Aspect:      16.0 / 9.0,
		},
		Drift: DriftTuning{
			Leaves:       0.003,
			Smoke:        0.003,
			Cascade:      0.0005,
			CascadeDrag:  0.98,
			Dust:         0.01,
			DustDrag:     0.99,
			DragStrength: 0.5,
		},
	}
}

// Load reads a YAML tuning file over the defaults and validates the result.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate checks intervals, probabilities and biome weight sums.
func (t Tuning) Validate() error {
	var errs []error
	positive := map[string]int{
		"wind.particle_interval_ticks":   t.Wind.ParticleIntervalTicks,
		"cascade.scan_interval_ticks":    t.Cascade.ScanIntervalTicks,
		"cascade.max_trace_depth":        t.Cascade.MaxTraceDepth,
		"waves.interval_ticks":           t.Waves.IntervalTicks,
		"waves.group_size":               t.Waves.GroupSize,
		"ambient.update_interval_ticks":  t.Ambient.UpdateIntervalTicks,
		"entities.ripple_interval_ticks": t.Entities.RippleIntervalTicks,
		"entities.dust_interval_ticks":   t.Entities.DustIntervalTicks,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	probabilities := map[string]float64{
		"cascade.chance_cap":      t.Cascade.ChanceCap,
		"cascade.open_side_bias":  t.Cascade.OpenSideBias,
		"waves.splash_chance":     t.Waves.SplashChance,
		"waves.big_splash_chance": t.Waves.BigSplashChance,
		"entities.ripple_chance":  t.Entities.RippleChance,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %g", name, p))
		}
	}
	if t.Cascade.IntensityCap < 1 {
		errs = append(errs, fmt.Errorf("cascade.intensity_cap must be at least 1, got %g", t.Cascade.IntensityCap))
	}
	if t.Cascade.PondCap < 1 {
		errs = append(errs, fmt.Errorf("cascade.pond_cap must be at least 1, got %g", t.Cascade.PondCap))
	}
	if t.Ambient.DeltaSeconds <= 0 || t.Ambient.WindFadeSeconds <= 0 || t.Ambient.CascadeFadeSeconds <= 0 {
		errs = append(errs, errors.New("ambient delta and fade durations must be positive"))
	}
	for name, w := range t.Biomes {
		if err := w.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("biome_weights.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the weights are non-negative and sum to one.
func (w BiomeWeightTuning) Validate() error {
	if w.Soft < 0 || w.Normal < 0 || w.Heavy < 0 {
		return fmt.Errorf("negative weight in {%g %g %g}", w.Soft, w.Normal, w.Heavy)
	}
	if sum := w.Soft + w.Normal + w.Heavy; math.Abs(sum-1) > WeightEpsilon {
		return fmt.Errorf("weights sum to %g, want 1", sum)
	}
	return nil
}
