package ambient

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"windswept/internal/config"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// Inputs is what the engine listens to on one update.
type Inputs struct {
	Wind     wind.Type
	Listener mgl64.Vec3
	// Cascade is the nearest waterfall impact, valid when HasCascade is set.
	Cascade    world.BlockPos
	HasCascade bool
}

// Engine drives the wind and cascade channels.
type Engine struct {
	tun     config.AmbientTuning
	wind    *Channel
	cascade *Channel
}

// NewEngine creates an engine with both channels idle.
func NewEngine(sink AudioSink, tun config.AmbientTuning, log logrus.FieldLogger) *Engine {
	return &Engine{
		tun: tun,
		wind: NewChannel("wind", sink, ChannelConfig{
			Smoothing:   tun.WindSmoothing,
			FadeSeconds: tun.WindFadeSeconds,
			LoopSeconds: tun.LoopSeconds,
			MinAudible:  tun.MinAudible,
			Attenuation: Static,
		}, log),
		cascade: NewChannel("cascade", sink, ChannelConfig{
			Smoothing:   tun.CascadeSmoothing,
			FadeSeconds: tun.CascadeFadeSeconds,
			LoopSeconds: tun.LoopSeconds,
			MinAudible:  tun.MinAudible,
			Attenuation: Directional,
		}, log),
	}
}

// WindSound maps a wind type to its loop. Calm air has none.
func WindSound(t wind.Type) SoundID {
	switch t {
	case wind.Soft:
		return SoundSoftWind
	case wind.Normal:
		return SoundNormalWind
	case wind.Heavy:
		return SoundHeavyWind
	case wind.Storm:
		return SoundStormWind
	default:
		return ""
	}
}

// WindTarget is the wind channel volume for a wind type.
func (e *Engine) WindTarget(t wind.Type) float64 {
	return min(t.Strength()*e.tun.WindVolumeScale, e.tun.WindMaxVolume)
}

// CascadeTarget falls off linearly from full volume at the impact to silence at the radius.
func (e *Engine) CascadeTarget(distance float64) float64 {
	v := e.tun.CascadeMaxVolume * (1 - distance/e.tun.CascadeRadius)
	return max(0, min(v, e.tun.CascadeMaxVolume))
}

// Update advances both channels by dt seconds.
func (e *Engine) Update(dt float64, in Inputs) {
	e.wind.Update(dt, WindSound(in.Wind), e.WindTarget(in.Wind), in.Listener)

	if !in.HasCascade {
		e.cascade.Update(dt, "", 0, e.cascade.Position())
		return
	}
	src := in.Cascade.Center()
	e.cascade.Update(dt, SoundCascade, e.CascadeTarget(src.Sub(in.Listener).Len()), src)
}

// Reset stops both channels. Used when the world session ends.
func (e *Engine) Reset() {
	e.wind.Reset()
	e.cascade.Reset()
}

func (e *Engine) Wind() *Channel    { return e.wind }
func (e *Engine) Cascade() *Channel { return e.cascade }
