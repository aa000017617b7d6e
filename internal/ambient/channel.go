package ambient

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// State is a channel's playback state.
type State uint8

const (
	Idle State = iota
	Playing
	// Restarting marks the update in which a looping sound was swapped for a fresh handle.
	Restarting
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Restarting:
		return "restarting"
	default:
		return "idle"
	}
}

// ChannelConfig tunes one channel.
type ChannelConfig struct {
	// Smoothing is the lerp factor applied to the volume on every update.
	Smoothing float64
	// FadeSeconds is the time constant of the fade in and out.
	FadeSeconds float64
	// LoopSeconds is how long a handle plays before it is proactively restarted.
	LoopSeconds float64
	MinAudible  float64
	Attenuation Attenuation
}

// Channel owns at most one playing handle for one ambient category.
// It is not safe for concurrent use.
type Channel struct {
	name string
	cfg  ChannelConfig
	sink AudioSink
	log  logrus.FieldLogger

	state   State
	handle  uuid.UUID
	sound   SoundID
	pos     mgl64.Vec3
	current float64
	target  float64
	fade    float64
	elapsed float64
}

// NewChannel creates an idle channel.
func NewChannel(name string, sink AudioSink, cfg ChannelConfig, log logrus.FieldLogger) *Channel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Channel{
		name: name,
		cfg:  cfg,
		sink: sink,
		log:  log.WithField("channel", name),
	}
}

// Update moves the channel one step toward playing sound at target volume.
// An empty sound means silence.
func (c *Channel) Update(dt float64, sound SoundID, target float64, pos mgl64.Vec3) {
	if c.state == Restarting {
		c.state = Playing
	}
	c.target = target
	c.release()

	shouldPlay := sound != "" && target > c.cfg.MinAudible
	fadeTarget := 0.0
	if shouldPlay {
		fadeTarget = 1
	}
	c.fade += (fadeTarget - c.fade) * min(dt/c.cfg.FadeSeconds, 1)
	c.current += (target - c.current) * c.cfg.Smoothing
	if c.state != Idle {
		c.elapsed += dt
	}

	switch {
	case shouldPlay && c.needsNewSound(sound, pos):
		c.start(sound, pos)
	case c.state == Idle:
	case !shouldPlay && c.Output() < c.cfg.MinAudible:
		c.Stop()
	default:
		c.sink.UpdateVolume(c.handle, c.Output())
	}
}

// release forgets a handle the sink has already finished.
func (c *Channel) release() {
	if c.state == Idle || c.sink.IsPlaying(c.handle) {
		return
	}
	c.sink.Stop(c.handle)
	c.log.WithField("sound", c.sound).Debug("sound ended by host")
	c.state = Idle
	c.handle = uuid.Nil
	c.sound = ""
}

func (c *Channel) needsNewSound(sound SoundID, pos mgl64.Vec3) bool {
	switch {
	case c.state == Idle, sound != c.sound:
		return true
	case c.elapsed >= c.cfg.LoopSeconds:
		return true
	case c.cfg.Attenuation == Directional && pos != c.pos:
		return true
	}
	return false
}

// start hard-cuts any current handle and plays a fresh one.
func (c *Channel) start(sound SoundID, pos mgl64.Vec3) {
	next := Playing
	if c.state != Idle {
		c.sink.Stop(c.handle)
		if sound == c.sound && (c.cfg.Attenuation == Static || pos == c.pos) {
			next = Restarting
		}
	}
	c.handle = c.sink.Play(sound, c.Output(), c.cfg.Attenuation, pos)
	c.log.WithFields(logrus.Fields{
		"sound":  sound,
		"volume": c.Output(),
		"state":  next.String(),
	}).Debug("start")
	c.state = next
	c.sound = sound
	c.pos = pos
	c.elapsed = 0
}

// Stop releases the handle and returns the channel to Idle, keeping the volume ramp.
func (c *Channel) Stop() {
	if c.state == Idle {
		return
	}
	c.sink.Stop(c.handle)
	c.log.WithField("sound", c.sound).Debug("stop")
	c.state = Idle
	c.handle = uuid.Nil
	c.sound = ""
	c.elapsed = 0
}

// Reset stops playback and zeroes every ramp.
func (c *Channel) Reset() {
	c.Stop()
	c.current, c.target, c.fade = 0, 0, 0
	c.pos = mgl64.Vec3{}
}

// Output is the volume sent to the sink: the smoothed volume scaled by the fade.
func (c *Channel) Output() float64 { return c.current * c.fade }

func (c *Channel) Name() string         { return c.name }
func (c *Channel) State() State         { return c.state }
func (c *Channel) Sound() SoundID       { return c.sound }
func (c *Channel) Handle() uuid.UUID    { return c.handle }
func (c *Channel) Volume() float64      { return c.current }
func (c *Channel) Target() float64      { return c.target }
func (c *Channel) Fade() float64        { return c.fade }
func (c *Channel) Position() mgl64.Vec3 { return c.pos }
