// Package ambient crossfades looping ambient sounds for wind and waterfalls.
package ambient

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// SoundID names a looping ambient sound.
type SoundID string

const (
	SoundSoftWind   SoundID = "soft_wind"
	SoundNormalWind SoundID = "normal_wind"
	SoundHeavyWind  SoundID = "heavy_wind"
	SoundStormWind  SoundID = "storm_wind"
	SoundCascade    SoundID = "cascade"
)

// Sounds lists every ambient sound.
func Sounds() []SoundID {
	return []SoundID{SoundSoftWind, SoundNormalWind, SoundHeavyWind, SoundStormWind, SoundCascade}
}

// Attenuation selects how a sound is placed in the world.
type Attenuation uint8

const (
	// Static sounds are centred on the listener.
	Static Attenuation = iota
	// Directional sounds sit at a world position and fade with distance.
	Directional
)

func (a Attenuation) String() string {
	if a == Directional {
		return "directional"
	}
	return "static"
}

// AudioSink plays sounds. Handles are never shared between channels.
type AudioSink interface {
	Play(sound SoundID, volume float64, att Attenuation, pos mgl64.Vec3) uuid.UUID
	UpdateVolume(h uuid.UUID, volume float64)
	Stop(h uuid.UUID)
	IsPlaying(h uuid.UUID) bool
}
