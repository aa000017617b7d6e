package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"

	"windswept/internal/ambient"
)

// noiseProfile shapes one procedural ambient loop.
type noiseProfile struct {
	// cutoff is the one-pole low-pass coefficient; lower is darker.
	cutoff float64
	amp    float64
	// gust modulates the amplitude at gustHz to imitate rising and falling wind.
	gust   float64
	gustHz float64
}

var profiles = map[ambient.SoundID]noiseProfile{
	ambient.SoundSoftWind:   {cutoff: 0.02, amp: 0.35, gust: 0.5, gustHz: 0.08},
	ambient.SoundNormalWind: {cutoff: 0.04, amp: 0.45, gust: 0.45, gustHz: 0.12},
	ambient.SoundHeavyWind:  {cutoff: 0.07, amp: 0.55, gust: 0.4, gustHz: 0.2},
	ambient.SoundStormWind:  {cutoff: 0.12, amp: 0.65, gust: 0.35, gustHz: 0.35},
	ambient.SoundCascade:    {cutoff: 0.35, amp: 0.5, gust: 0.08, gustHz: 1.3},
}

// NoiseGenerator is an endless filtered-noise streamer.
type NoiseGenerator struct {
	sr      beep.SampleRate
	p       noiseProfile
	rng     *rand.Rand
	pos     int
	lpLeft  float64
	lpRight float64
}

// NewNoiseGenerator creates the loop for a sound. Unknown sounds get the normal wind profile.
func NewNoiseGenerator(sr beep.SampleRate, sound ambient.SoundID, seed int64) *NoiseGenerator {
	p, ok := profiles[sound]
	if !ok {
		p = profiles[ambient.SoundNormalWind]
	}
	return &NoiseGenerator{sr: sr, p: p, rng: rand.New(rand.NewSource(seed))}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := g.p.amp * (1 - g.p.gust*0.5*(1+math.Sin(2*math.Pi*g.p.gustHz*t)))

		g.lpLeft += g.p.cutoff * (g.rng.Float64()*2 - 1 - g.lpLeft)
		g.lpRight += g.p.cutoff * (g.rng.Float64()*2 - 1 - g.lpRight)
		// low-passed noise loses energy as the cutoff drops
		gain := env / math.Sqrt(g.p.cutoff)
		samples[i][0] = clampSample(g.lpLeft * gain)
		samples[i][1] = clampSample(g.lpRight * gain)
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error { return nil }

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
