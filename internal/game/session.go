package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"windswept/internal/ambient"
	"windswept/internal/config"
	"windswept/internal/debugmap"
	"windswept/internal/driver"
	"windswept/internal/emission"
	"windswept/internal/particles"
	"windswept/internal/profiling"
	"windswept/internal/world"
)

// Options configures a Session.
type Options struct {
	Scene  string
	Seed   int64
	Tuning config.Tuning
	Audio  ambient.AudioSink
	Log    logrus.FieldLogger
	// Trace also logs every spawned effect at trace level.
	Trace    bool
	SlowTick time.Duration
}

// windFunc adapts a function to wind.VectorSource.
type windFunc func() (mgl64.Vec3, float64)

func (f windFunc) CurrentWindVector() (mgl64.Vec3, float64) { return f() }

// Session is one running scene: the world, its scripted bodies, the effect driver and the
// particles the driver spawns.
type Session struct {
	Scene     *Scene
	World     *world.World
	Driver    *driver.Driver
	Particles *particles.System
	Tally     *emission.Tally

	Paused bool

	log  logrus.FieldLogger
	tick int64
	last driver.Report
}

// NewSession builds the scene and wires the driver to it. The session is started on return.
func NewSession(opts Options) (*Session, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	scene, err := BuildScene(opts.Scene, opts.Seed)
	if err != nil {
		return nil, err
	}

	var d *driver.Driver
	src := windFunc(func() (mgl64.Vec3, float64) { return d.CurrentWindVector() })
	ps := particles.NewSystem(src, opts.Tuning.Drift, scene.World, opts.Seed)
	tally := &emission.Tally{}
	sinks := emission.Fanout{ps, tally}
	if opts.Trace {
		sinks = append(sinks, emission.LogSink{Log: log})
	}

	d, err = driver.New(scene.World, driver.Options{
		Tuning:   opts.Tuning,
		Seed:     opts.Seed,
		Sink:     sinks,
		Audio:    opts.Audio,
		Log:      log,
		SlowTick: opts.SlowTick,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		Scene:     scene,
		World:     scene.World,
		Driver:    d,
		Particles: ps,
		Tally:     tally,
		log:       log,
	}
	id := d.StartSession()
	log.WithFields(logrus.Fields{
		"session": id,
		"scene":   opts.Scene,
		"bodies":  len(scene.Bodies),
		"columns": scene.World.Store().Len(),
	}).Info("Scene ready")
	return s, nil
}

// Step runs one simulation tick: effects for the current state, then scripted movement,
// then entity and particle integration. A paused session does nothing.
func (s *Session) Step() driver.Report {
	if s.Paused {
		return s.last
	}
	rep := s.Driver.Tick()

	func() {
		defer profiling.Track("game.Bodies")()
		for _, b := range s.Scene.Bodies {
			b.Step(s.World, s.tick)
		}
	}()
	s.World.Step()
	s.Particles.Step()

	s.tick++
	s.last = rep
	return rep
}

// Ticks returns how many steps have run.
func (s *Session) Ticks() int64 { return s.tick }

// LastReport returns the most recent driver report.
func (s *Session) LastReport() driver.Report { return s.last }

// Cleanup ends the driver session and drops every live particle.
func (s *Session) Cleanup() {
	s.Driver.EndSession()
	s.Particles.Reset()
}

// SaveMap writes a top-down feature map of the radius columns around the player to path.
func (s *Session) SaveMap(path string, radius, scale int) error {
	p, ok := s.World.Player()
	if !ok {
		return fmt.Errorf("save map: %w", driver.ErrNoPlayer)
	}
	center := p.BlockPos()
	edges := s.Driver.Detector().ScanShoreline(center, rand.New(rand.NewSource(s.tick)))
	img := debugmap.Render(s.World, center, radius, scale, debugmap.Features{
		Impacts: s.Driver.Cascades().Impacts(),
		Edges:   edges,
		Wind:    s.Driver.Wind().Vector(),
	})
	if err := debugmap.WritePNG(path, img); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"path":    path,
		"impacts": len(s.Driver.Cascades().Impacts()),
		"edges":   len(edges),
	}).Info("Feature map saved")
	return nil
}
