// Package emission holds the effect variants and the tick-keyed queue that delays them.
package emission

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags an Effect variant.
type Kind uint8

const (
	KindWind Kind = iota
	KindCascade
	KindWave
	KindFoam
	KindSplash
	KindRipple
	KindWaterSplash
	KindDustCloud
	KindFootprint

	kindCount
)

var kindNames = [kindCount]string{
	"wind", "cascade", "wave", "foam", "splash", "ripple", "water_splash", "dust_cloud", "footprint",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds lists every effect kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Effect is a closed set of particle requests. Each variant carries its own parameters.
type Effect interface {
	Kind() Kind
	effect()
}

// Wind is a drifting air streak. Velocity is in blocks per tick.
type Wind struct {
	Scale    float64
	Lifetime int
	Velocity mgl64.Vec3
}

// Cascade is spray at a waterfall impact.
type Cascade struct {
	Scale float64
}

// Wave is a shore-bound swell moving along Normal (XZ, unit length, pointing into the water).
type Wave struct {
	Normal      mgl64.Vec2
	CliffHeight float64
}

// Foam trails a Wave.
type Foam struct {
	Normal      mgl64.Vec2
	CliffHeight float64
}

// Splash is a cliff or fall splash.
type Splash struct {
	Big bool
}

// Ripple is a ring spreading from a body moving in water.
type Ripple struct {
	Size   float64
	MaxAge int
	Speed  float64
}

// SplashPart selects one layer of an entry splash.
type SplashPart uint8

const (
	SplashBody SplashPart = iota
	SplashFoam
	SplashRing
)

// WaterSplash is a body entering the water surface.
type WaterSplash struct {
	Part   SplashPart
	Size   float64
	Height float64
}

// DustCloud is kicked up by running feet or hooves.
type DustCloud struct {
	Velocity mgl64.Vec3
	Scale    float64
}

// FootprintSurface picks the footprint texture family.
type FootprintSurface uint8

const (
	SurfacePlain FootprintSurface = iota
	SurfaceSnow
	SurfaceSand
	SurfaceRedSand
	SurfaceMuddy
)

func (s FootprintSurface) String() string {
	switch s {
	case SurfaceSnow:
		return "snow"
	case SurfaceSand:
		return "sand"
	case SurfaceRedSand:
		return "red_sand"
	case SurfaceMuddy:
		return "muddy"
	default:
		return "plain"
	}
}

// Footprint is a print left on the ground. Yaw is in degrees.
type Footprint struct {
	Surface FootprintSurface
	Wet     bool
	Yaw     float64
	Size    float64
}

func (Wind) Kind() Kind        { return KindWind }
func (Cascade) Kind() Kind     { return KindCascade }
func (Wave) Kind() Kind        { return KindWave }
func (Foam) Kind() Kind        { return KindFoam }
func (Splash) Kind() Kind      { return KindSplash }
func (Ripple) Kind() Kind      { return KindRipple }
func (WaterSplash) Kind() Kind { return KindWaterSplash }
func (DustCloud) Kind() Kind   { return KindDustCloud }
func (Footprint) Kind() Kind   { return KindFootprint }

func (Wind) effect()        {}
func (Cascade) effect()     {}
func (Wave) effect()        {}
func (Foam) effect()        {}
func (Splash) effect()      {}
func (Ripple) effect()      {}
func (WaterSplash) effect() {}
func (DustCloud) effect()   {}
func (Footprint) effect()   {}
