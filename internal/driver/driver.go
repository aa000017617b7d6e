// Package driver runs every effect system once per simulation tick.
package driver

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"windswept/internal/ambient"
	"windswept/internal/config"
	"windswept/internal/culling"
	"windswept/internal/emission"
	"windswept/internal/entityfx"
	"windswept/internal/profiling"
	"windswept/internal/water"
	"windswept/internal/wind"
	"windswept/internal/world"
)

// DefaultSlowTick is the budget above which a tick is logged with its CPU breakdown.
const DefaultSlowTick = 10 * time.Millisecond

// Options configures a Driver. Zero values pick sensible defaults.
type Options struct {
	Tuning   config.Tuning
	Seed     int64
	Sink     emission.EffectSink
	Audio    ambient.AudioSink
	Log      logrus.FieldLogger
	SlowTick time.Duration
}

// Report summarizes one tick.
type Report struct {
	Tick        int64
	Skipped     bool
	Wind        wind.State
	WindChanged bool
	Impacts     int
	Edges       int
	Queued      int
	Dispatched  int
	Pending     int
	Elapsed     time.Duration
}

// listener is implemented by audio sinks that pan and attenuate around the player.
type listener interface {
	SetListener(pos mgl64.Vec3, yawDegrees float64)
}

// Driver owns the EnvironmentalContext and every per-session tracker. All methods are safe
// to call from different goroutines; ticks and overrides are serialized.
type Driver struct {
	mu  sync.Mutex
	ctx *EnvironmentalContext
	log logrus.FieldLogger

	sink     emission.EffectSink
	audio    ambient.AudioSink
	detector *water.Detector
	cascades *water.CascadeField
	ambient  *ambient.Engine

	splashes   *entityfx.SplashTracker
	footprints *entityfx.Footprints
	dust       *entityfx.DustClouds

	slowTick  time.Duration
	session   uuid.UUID
	hadPlayer bool

	tick     atomic.Int64
	windSnap atomic.Value
}

// New builds a driver over w. It fails when the tuning does not validate.
func New(w WorldQuery, opts Options) (*Driver, error) {
	ctx, err := NewEnvironmentalContext(w, opts.Tuning, opts.Seed)
	if err != nil {
		return nil, err
	}

	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	sink := opts.Sink
	if sink == nil {
		sink = emission.SinkFunc(func(mgl64.Vec3, emission.Effect) {})
	}
	audio := opts.Audio
	if audio == nil {
		audio = newSilentSink()
	}
	slow := opts.SlowTick
	if slow <= 0 {
		slow = DefaultSlowTick
	}

	det := water.NewDetector(w, ctx.Tuning)
	d := &Driver{
		ctx:        ctx,
		log:        log,
		sink:       sink,
		audio:      audio,
		detector:   det,
		cascades:   water.NewCascadeField(det),
		ambient:    ambient.NewEngine(audio, ctx.Tuning.Ambient, log),
		splashes:   entityfx.NewSplashTracker(ctx.Tuning.Entities),
		footprints: entityfx.NewFootprints(ctx.Tuning.Entities),
		dust:       entityfx.NewDustClouds(ctx.Tuning.Entities),
		slowTick:   slow,
	}
	d.windSnap.Store(ctx.Wind.State())
	return d, nil
}

// Context exposes the environmental context. Callers must not mutate it while ticks run.
func (d *Driver) Context() *EnvironmentalContext { return d.ctx }

// Ambient exposes the crossfade engine for inspection.
func (d *Driver) Ambient() *ambient.Engine { return d.ambient }

// Cascades exposes the cached waterfall impacts.
func (d *Driver) Cascades() *water.CascadeField { return d.cascades }

// Detector exposes the water feature detector for viewers and the feature map.
func (d *Driver) Detector() *water.Detector { return d.detector }

// Session returns the current session id, or uuid.Nil outside a session.
func (d *Driver) Session() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session
}

// CurrentTick returns the last completed tick of the session.
func (d *Driver) CurrentTick() int64 { return d.tick.Load() }

// Wind returns the wind published by the last tick.
func (d *Driver) Wind() wind.State { return d.windSnap.Load().(wind.State) }

// CurrentWindVector reads the published wind. It never blocks on a running tick, so
// particle integrators on other goroutines can use the driver as their wind.VectorSource.
func (d *Driver) CurrentWindVector() (mgl64.Vec3, float64) {
	s := d.Wind()
	return s.Direction, s.Strength()
}

// StartSession resets every piece of session state and opens a new session.
func (d *Driver) StartSession() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.startLocked()
}

func (d *Driver) startLocked() uuid.UUID {
	d.resetLocked()
	d.session = uuid.New()
	d.log.WithFields(logrus.Fields{
		"session": d.session,
		"day":     d.ctx.World.CurrentDayIndex(),
		"wind":    d.ctx.Wind.State().Type,
	}).Info("Environment session started")
	return d.session
}

// EndSession flushes the wind, the audio channels and the emission queue.
func (d *Driver) EndSession() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session == uuid.Nil {
		return
	}
	d.log.WithFields(logrus.Fields{
		"session": d.session,
		"ticks":   d.tick.Load(),
		"pending": d.ctx.Scheduler.Len(),
	}).Info("Environment session ended")
	d.resetLocked()
	d.session = uuid.Nil
}

func (d *Driver) resetLocked() {
	d.resetTransientLocked()
	d.ctx.Wind.Reset(d.ctx.World.CurrentDayIndex())
	d.windSnap.Store(d.ctx.Wind.State())
	d.tick.Store(0)
	d.hadPlayer = false
}

// resetTransientLocked drops everything derived from the player's surroundings. The wind survives.
func (d *Driver) resetTransientLocked() {
	d.ctx.Scheduler.Reset()
	d.cascades.Reset()
	d.ambient.Reset()
	d.splashes.Reset()
	d.footprints.Reset()
	d.dust.Reset()
}

// SetWind overrides the wind and restarts its daily clock.
func (d *Driver) SetWind(dir mgl64.Vec3, t wind.Type) wind.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	st := d.ctx.Wind.SetWind(dir, t, d.ctx.World.CurrentDayIndex())
	d.windSnap.Store(st)
	d.log.WithFields(logrus.Fields{
		"type":      st.Type,
		"direction": st.Direction,
	}).Info("Wind overridden")
	return st
}

// every reports whether a throttled job runs on tick. Ticks start at 1, so every job
// runs on the first tick of a session.
func every(tick int64, n int) bool {
	return n > 0 && (tick-1)%int64(n) == 0
}

// Tick runs one simulation tick. Without a player it only resets transient state.
func (d *Driver) Tick() Report {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	profiling.ResetTick()
	if d.session == uuid.Nil {
		d.startLocked()
	}

	ctx := d.ctx
	tun := ctx.Tuning
	tick := d.tick.Inc()
	ctx.Scheduler.SetTick(tick)
	rep := Report{Tick: tick}

	player, ok := ctx.World.Player()
	if !ok || !player.Alive {
		if d.hadPlayer {
			d.log.WithField("session", d.session).Debug("Player gone, clearing transient effects")
			d.resetTransientLocked()
			d.hadPlayer = false
		}
		rep.Skipped = true
		rep.Wind = ctx.Wind.State()
		return rep
	}
	d.hadPlayer = true
	feet := player.BlockPos()

	prev := ctx.Wind.State()
	st := ctx.Wind.Advance(
		ctx.World.CurrentDayIndex(),
		ctx.World.IsThundering(),
		ctx.World.IsRaining(),
		ctx.Biomes.For(ctx.World.BiomeAt(feet)),
		ctx.Rng,
	)
	d.windSnap.Store(st)
	rep.Wind = st
	if st.LastChangeDay != prev.LastChangeDay {
		rep.WindChanged = true
		d.log.WithFields(logrus.Fields{
			"day":       st.LastChangeDay,
			"type":      st.Type,
			"direction": st.Direction,
		}).Info("Wind changed")
	}

	if every(tick, tun.Wind.ParticleIntervalTicks) {
		rep.Queued += wind.EmitParticles(st, feet, ctx.World, tun.Wind, ctx.Rng, ctx.Scheduler)
	}

	if every(tick, tun.Cascade.ScanIntervalTicks) {
		func() {
			defer profiling.Track("water.ScanCascades")()
			d.cascades.Rescan(feet)
		}()
	}
	rep.Impacts = len(d.cascades.Impacts())
	view := culling.FromEntity(player, tun.Culling)
	rep.Queued += d.cascades.Emit(ctx.Rng, view, ctx.Scheduler)

	if every(tick, tun.Waves.IntervalTicks) {
		edges, queued := d.detector.EmitWaves(feet, ctx.Rng, ctx.Scheduler)
		rep.Edges = edges
		rep.Queued += queued
	}

	d.tickEntities(tick, player, &rep)

	if every(tick, tun.Ambient.UpdateIntervalTicks) {
		d.updateAmbient(player, st)
	}

	ready := ctx.Scheduler.Drain(tick)
	emission.Dispatch(d.sink, ready)
	rep.Dispatched = len(ready)
	rep.Pending = ctx.Scheduler.Len()

	rep.Elapsed = time.Since(start)
	if rep.Elapsed > d.slowTick {
		d.log.WithFields(logrus.Fields{
			"tick":    tick,
			"elapsed": rep.Elapsed,
		}).Warnf("Slow tick: %s", profiling.TopN(5))
	}
	return rep
}

func (d *Driver) tickEntities(tick int64, player world.Entity, rep *Report) {
	defer profiling.Track("entityfx.Update")()
	ctx := d.ctx
	tun := ctx.Tuning.Entities
	entities := ctx.World.Entities()

	if every(tick, tun.RippleIntervalTicks) {
		rep.Queued += entityfx.EmitRipples(entities, ctx.World, tun, ctx.Rng, ctx.Scheduler)
	}
	rep.Queued += d.splashes.Update(tick, entities, ctx.World, ctx.Scheduler)
	rep.Queued += entityfx.EmitFallSplashes(player.Position, entities, tun, ctx.Rng, ctx.Scheduler)
	rep.Queued += d.footprints.Update(player.Position, entities, ctx.World, ctx.Scheduler)
	rep.Queued += d.dust.Update(player, entities, ctx.World, ctx.Rng, ctx.Scheduler)
}

func (d *Driver) updateAmbient(player world.Entity, st wind.State) {
	defer profiling.Track("ambient.Update")()
	tun := d.ctx.Tuning.Ambient
	ear := player.EyePosition()
	if l, ok := d.audio.(listener); ok {
		l.SetListener(ear, player.Yaw)
	}

	in := ambient.Inputs{Wind: st.Type, Listener: ear}
	if im, _, ok := d.cascades.Nearest(ear, tun.CascadeRadius); ok {
		in.Cascade = im.Position
		in.HasCascade = true
	}
	d.ambient.Update(tun.DeltaSeconds, in)
}
