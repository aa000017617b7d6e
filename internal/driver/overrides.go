package driver

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"windswept/internal/ambient"
	"windswept/internal/emission"
	"windswept/internal/entityfx"
)

const (
	// MaxBurstSeconds bounds the forced bursts of the debug surface.
	MaxBurstSeconds = 60
	burstStepTicks  = 5
	burstRadius     = 2
	burstChance     = 0.3
	burstScale      = 0.5
	ticksPerSecond  = 20
)

// ErrNoPlayer is returned by overrides that need a player position.
var ErrNoPlayer = errors.New("player or world not available")

// delayed adds a fixed delay to every scheduled effect.
type delayed struct {
	out   entityfx.Emitter
	delay int
}

func (d delayed) Schedule(e emission.Effect, pos mgl64.Vec3, delayTicks int) {
	d.out.Schedule(e, pos, delayTicks+d.delay)
}

// burst calls spawn once every burstStepTicks for the given number of seconds, each call
// with an emitter delayed to its slot.
func (d *Driver) burst(name string, seconds int, spawn func(out entityfx.Emitter) int) (int, error) {
	if seconds < 1 || seconds > MaxBurstSeconds {
		return 0, fmt.Errorf("%s: duration %d out of range [1, %d]", name, seconds, MaxBurstSeconds)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.ctx.World.Player(); !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNoPlayer)
	}

	queued := 0
	for t := 0; t < seconds*ticksPerSecond; t += burstStepTicks {
		queued += spawn(delayed{out: d.ctx.Scheduler, delay: t})
	}
	d.log.WithFields(logrus.Fields{
		"effect":  name,
		"seconds": seconds,
		"queued":  queued,
	}).Info("Forced burst")
	return queued, nil
}

// ForceCascade queues cascade particles for the given seconds, all at the player's position
// when the command runs.
func (d *Driver) ForceCascade(seconds int) (int, error) {
	return d.burst("cascade", seconds, func(out entityfx.Emitter) int {
		p, _ := d.ctx.World.Player()
		feet := p.BlockPos()
		rng := d.ctx.Rng
		pos := mgl64.Vec3{
			float64(feet.X) + 0.5 + (rng.Float64()-0.5)*0.5,
			float64(feet.Y) + 1,
			float64(feet.Z) + 0.5 + (rng.Float64()-0.5)*0.5,
		}
		out.Schedule(emission.Cascade{Scale: burstScale}, pos, 0)
		return 1
	})
}

// ForceRipples drops raindrop ripples over a 5x5 area around the player's position when the
// command runs.
func (d *Driver) ForceRipples(seconds int) (int, error) {
	s := entityfx.RaindropRipple
	return d.burst("ripple", seconds, func(out entityfx.Emitter) int {
		p, _ := d.ctx.World.Player()
		center := p.BlockPos()
		rng := d.ctx.Rng
		n := 0
		for x := -burstRadius; x <= burstRadius; x++ {
			for z := -burstRadius; z <= burstRadius; z++ {
				if rng.Float64() >= burstChance {
					continue
				}
				cell := center.Add(x, 0, z)
				pos := mgl64.Vec3{
					float64(cell.X) + 0.5 + rng.Float64()*0.6 - 0.3,
					float64(cell.Y) + 1.01,
					float64(cell.Z) + 0.5 + rng.Float64()*0.6 - 0.3,
				}
				out.Schedule(emission.Ripple{Size: s.SizeMultiplier, MaxAge: s.MaxAge, Speed: s.Speed}, pos, 0)
				n++
			}
		}
		return n
	})
}

// ForceDust kicks dust clouds over a 5x5 area around the player's position when the command
// runs, on solid ground only.
func (d *Driver) ForceDust(seconds int) (int, error) {
	return d.burst("dustcloud", seconds, func(out entityfx.Emitter) int {
		p, _ := d.ctx.World.Player()
		center := p.BlockPos()
		rng := d.ctx.Rng
		n := 0
		for x := -burstRadius; x <= burstRadius; x++ {
			for z := -burstRadius; z <= burstRadius; z++ {
				if rng.Float64() >= burstChance {
					continue
				}
				n += entityfx.EmitDust(center.Add(x, 0, z), 1, d.ctx.World, rng, out)
			}
		}
		return n
	})
}

// silentSink stands in for an audio device. Handles stay playing until stopped.
type silentSink struct {
	playing map[uuid.UUID]bool
}

func newSilentSink() *silentSink {
	return &silentSink{playing: make(map[uuid.UUID]bool)}
}

func (s *silentSink) Play(ambient.SoundID, float64, ambient.Attenuation, mgl64.Vec3) uuid.UUID {
	h := uuid.New()
	s.playing[h] = true
	return h
}

func (s *silentSink) UpdateVolume(uuid.UUID, float64) {}

func (s *silentSink) Stop(h uuid.UUID)           { delete(s.playing, h) }
func (s *silentSink) IsPlaying(h uuid.UUID) bool { return s.playing[h] }

