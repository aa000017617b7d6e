// Package particles is a minimal integrator for spawned effects. It keeps each effect alive
// for its lifetime and lets the wind push the families that drift.
package particles

import (
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/atomic"

	"windswept/internal/config"
	"windswept/internal/emission"
	"windswept/internal/profiling"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// gravityPerTick is the downward acceleration of a particle with gravity strength 1.
const gravityPerTick = 0.04

// Solid reports blocked cells. *world.World satisfies it.
type Solid interface {
	IsSolid(pos world.BlockPos) bool
}

// Particle is one live effect.
type Particle struct {
	Effect   emission.Effect
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Age      int
	MaxAge   int
	Scale    float64
	OnGround bool

	gravity  float64
	friction float64
	drift    *wind.DriftProfile
}

// Kind returns the effect kind.
func (p *Particle) Kind() emission.Kind { return p.Effect.Kind() }

// Progress is the fraction of the lifetime used.
func (p *Particle) Progress() float64 {
	if p.MaxAge <= 0 {
		return 1
	}
	return float64(p.Age) / float64(p.MaxAge)
}

// System owns every live particle. Spawn and Step come from the tick goroutine; Snapshot may be
// called from a render goroutine.
type System struct {
	mu        sync.RWMutex
	particles []*Particle
	wind      wind.VectorSource
	profiles  wind.Profiles
	solid     Solid
	rng       *rand.Rand

	dropped atomic.Int64
	spawned atomic.Int64
}

// NewSystem creates an empty system. solid may be nil to disable ground collisions.
func NewSystem(src wind.VectorSource, drift config.DriftTuning, solid Solid, seed int64) *System {
	return &System{
		particles: make([]*Particle, 0, 256),
		wind:      src,
		profiles:  wind.NewProfiles(drift),
		solid:     solid,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Spawn adds a particle for e. Effects past the live cap are dropped and counted.
func (s *System) Spawn(pos mgl64.Vec3, e emission.Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.particles) >= config.GetMaxParticles() {
		s.dropped.Inc()
		return
	}
	s.particles = append(s.particles, s.newParticle(pos, e))
	s.spawned.Inc()
}

func (s *System) newParticle(pos mgl64.Vec3, e emission.Effect) *Particle {
	p := &Particle{Effect: e, Position: pos, Scale: 1}
	switch v := e.(type) {
	case emission.Wind:
		p.MaxAge = v.Lifetime
		p.Velocity = v.Velocity
		p.Scale = v.Scale
		p.drift = &s.profiles.Leaves
	case emission.Cascade:
		p.MaxAge = 100 + s.rng.Intn(40)
		p.Scale = v.Scale * (0.4 + s.rng.Float64()*0.3)
		p.drift = &s.profiles.Cascade
	case emission.Wave:
		p.MaxAge = 25
	case emission.Foam:
		p.MaxAge = 50
		if v.CliffHeight > 0 {
			p.Scale = min(0.8+0.1*v.CliffHeight, 1.5)
		} else {
			p.Scale = 0.8
		}
	case emission.Splash:
		p.MaxAge = 30 + s.rng.Intn(15)
		p.Velocity = mgl64.Vec3{0, 0.1, 0}
		if v.Big {
			p.Velocity[1] = 0.2
			p.Scale = 1.5
		}
		p.gravity = 1
	case emission.Ripple:
		p.MaxAge = v.MaxAge
		p.Scale = 0.8 * v.Size
	case emission.WaterSplash:
		p.MaxAge = int(20 * v.Size)
		if v.Part == emission.SplashFoam {
			p.MaxAge = int(25 * v.Size)
		}
		p.Scale = 0.8 * v.Size
	case emission.DustCloud:
		p.MaxAge = 25 + s.rng.Intn(10)
		p.Velocity = v.Velocity
		p.Scale = v.Scale * (0.2 + s.rng.Float64()*0.3)
		p.gravity = 0.06
		p.friction = 0.92
		p.drift = &s.profiles.Dust
	case emission.Footprint:
		p.MaxAge = 200
		p.Scale = 0.3 * v.Size
	}
	return p
}

// Step advances every particle by one tick and removes expired ones.
func (s *System) Step() {
	defer profiling.Track("particles.Step")()
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, p := range s.particles {
		p.Age++
		if p.Age >= p.MaxAge {
			continue
		}
		s.integrate(p)
		s.particles[active] = p
		active++
	}
	clear(s.particles[active:])
	s.particles = s.particles[:active]
}

func (s *System) integrate(p *Particle) {
	if p.drift != nil && s.wind != nil {
		p.Velocity = wind.Drift(p.Velocity, s.wind, *p.drift)
	}
	if p.gravity > 0 {
		p.Velocity[1] -= gravityPerTick * p.gravity
	}
	if p.friction > 0 {
		p.Velocity[0] *= p.friction
		p.Velocity[2] *= p.friction
	}

	next := p.Position.Add(p.Velocity)
	if s.solid != nil && p.Velocity.Y() < 0 && s.solid.IsSolid(world.PosOf(next)) {
		next[1] = float64(world.PosOf(next).Y + 1)
		p.Velocity[1] = 0
		p.OnGround = true
	}
	p.Position = next
}

// Snapshot copies the live particles into dst and returns it.
func (s *System) Snapshot(dst []Particle) []Particle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dst = dst[:0]
	for _, p := range s.particles {
		dst = append(dst, *p)
	}
	return dst
}

// Len returns the number of live particles.
func (s *System) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.particles)
}

// Dropped returns how many effects were refused by the live cap.
func (s *System) Dropped() int64 { return s.dropped.Load() }

// Spawned returns how many effects were accepted.
func (s *System) Spawned() int64 { return s.spawned.Load() }

// Reset drops every particle.
func (s *System) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.particles)
	s.particles = s.particles[:0]
}
