// Package audio plays the ambient loops through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"windswept/internal/ambient"
	"windswept/internal/config"
)

const (
	sampleRate = beep.SampleRate(44100)
	// loopLength is the length of one loop clip. A voice ends when it runs out.
	loopLength = 20 * time.Second
	// attenuationRange is the distance at which a directional voice falls silent.
	attenuationRange = 16.0
)

type voice struct {
	sound  ambient.SoundID
	att    ambient.Attenuation
	pos    mgl64.Vec3
	volume float64

	ctrl *beep.Ctrl
	gain *effects.Volume
	pan  *effects.Pan
	done *atomic.Bool
}

// Speaker implements ambient.AudioSink on a beep mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	voices      map[uuid.UUID]*voice
	listener    mgl64.Vec3
	listenerYaw float64
	loop        int
	seed        int64
	initialized bool
	log         logrus.FieldLogger
}

// NewSpeaker creates a speaker with an empty mixer. Call Initialize to open the device;
// without it the mixer can still be pulled with Render.
func NewSpeaker(log logrus.FieldLogger) *Speaker {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Speaker{
		mixer:  &beep.Mixer{},
		voices: make(map[uuid.UUID]*voice),
		loop:   sampleRate.N(loopLength),
		log:    log.WithField("component", "audio"),
	}
}

// Initialize opens the output device.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	s.log.WithField("sample_rate", int(sampleRate)).Info("speaker opened")
	return nil
}

// Cleanup stops every voice and clears the mixer.
func (s *Speaker) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	for id, v := range s.voices {
		v.ctrl.Paused = true
		delete(s.voices, id)
	}
	s.mixer.Clear()
	speaker.Unlock()

	if s.initialized {
		speaker.Clear()
		s.initialized = false
	}
}

// Play starts a loop and returns its handle.
func (s *Speaker) Play(sound ambient.SoundID, volume float64, att ambient.Attenuation, pos mgl64.Vec3) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seed++
	id := uuid.New()
	done := atomic.NewBool(false)
	clip := beep.Seq(
		beep.Take(s.loop, NewNoiseGenerator(sampleRate, sound, s.seed)),
		beep.Callback(func() { done.Store(true) }),
	)
	v := &voice{sound: sound, att: att, pos: pos, volume: volume, done: done}
	v.gain = &effects.Volume{Streamer: clip, Base: 2}
	v.pan = &effects.Pan{Streamer: v.gain}
	v.ctrl = &beep.Ctrl{Streamer: v.pan}

	speaker.Lock()
	s.applyLocked(v)
	s.mixer.Add(v.ctrl)
	speaker.Unlock()

	s.voices[id] = v
	s.log.WithFields(logrus.Fields{"sound": sound, "handle": id}).Debug("play")
	return id
}

// UpdateVolume changes a voice's requested volume.
func (s *Speaker) UpdateVolume(h uuid.UUID, volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[h]
	if !ok {
		return
	}
	v.volume = volume
	speaker.Lock()
	s.applyLocked(v)
	speaker.Unlock()
}

// Stop silences a voice and drops it from the mixer.
func (s *Speaker) Stop(h uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[h]
	if !ok {
		return
	}
	speaker.Lock()
	v.ctrl.Paused = true
	v.ctrl.Streamer = nil
	speaker.Unlock()
	delete(s.voices, h)
}

// IsPlaying reports whether the voice is known and has not run out.
func (s *Speaker) IsPlaying(h uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.voices[h]
	return ok && !v.done.Load()
}

// SetListener moves the listener and re-derives directional gains and pans.
func (s *Speaker) SetListener(pos mgl64.Vec3, yawDegrees float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listener = pos
	s.listenerYaw = yawDegrees
	speaker.Lock()
	for _, v := range s.voices {
		s.applyLocked(v)
	}
	speaker.Unlock()
}

// Voices returns the number of live voices.
func (s *Speaker) Voices() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.voices)
}

// Render pulls samples straight from the mixer. Only valid while the device is closed.
func (s *Speaker) Render(samples [][2]float64) {
	speaker.Lock()
	defer speaker.Unlock()
	n, _ := s.mixer.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
}

// applyLocked pushes a voice's effective gain and pan to its effects. The speaker lock must be held.
func (s *Speaker) applyLocked(v *voice) {
	gain := v.volume
	v.pan.Pan = 0
	if v.att == ambient.Directional {
		offset := v.pos.Sub(s.listener)
		dist := offset.Len()
		gain *= math.Max(0, 1-dist/attenuationRange)
		if dist > 1e-6 {
			yaw := mgl64.DegToRad(s.listenerYaw)
			right := mgl64.Vec3{-math.Cos(yaw), 0, -math.Sin(yaw)}
			v.pan.Pan = math.Max(-1, math.Min(1, offset.Normalize().Dot(right)))
		}
	}
	if gain <= 0 || config.GetMuted() {
		v.gain.Silent = true
		v.gain.Volume = 0
		return
	}
	v.gain.Silent = false
	v.gain.Volume = math.Log2(gain)
}
