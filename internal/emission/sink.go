package emission

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// EffectSink receives ready effects. Implementations own rendering.
type EffectSink interface {
	Spawn(pos mgl64.Vec3, e Effect)
}

// SinkFunc adapts a function to EffectSink.
type SinkFunc func(pos mgl64.Vec3, e Effect)

func (f SinkFunc) Spawn(pos mgl64.Vec3, e Effect) { f(pos, e) }

// Dispatch hands every drained entry to the sink in order.
func Dispatch(sink EffectSink, ready []PendingEmission) {
	for _, p := range ready {
		sink.Spawn(p.Position, p.Effect)
	}
}

// Fanout forwards every effect to each sink in turn.
type Fanout []EffectSink

func (f Fanout) Spawn(pos mgl64.Vec3, e Effect) {
	for _, s := range f {
		s.Spawn(pos, e)
	}
}

// Tally counts spawned effects per kind. Counters may be read from other goroutines.
type Tally struct {
	counts [kindCount]atomic.Int64
}

func (t *Tally) Spawn(_ mgl64.Vec3, e Effect) {
	t.counts[e.Kind()].Inc()
}

// Count returns the number of effects of kind k seen so far.
func (t *Tally) Count(k Kind) int64 {
	if k >= kindCount {
		return 0
	}
	return t.counts[k].Load()
}

// Total returns the number of effects seen so far.
func (t *Tally) Total() int64 {
	var n int64
	for i := range t.counts {
		n += t.counts[i].Load()
	}
	return n
}

// Snapshot returns the non-zero counts keyed by kind name.
func (t *Tally) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	for i := range t.counts {
		if n := t.counts[i].Load(); n > 0 {
			out[Kind(i).String()] = n
		}
	}
	return out
}

// LogSink traces every effect.
type LogSink struct {
	Log logrus.FieldLogger
}

func (s LogSink) Spawn(pos mgl64.Vec3, e Effect) {
	s.Log.WithFields(logrus.Fields{
		"kind": e.Kind().String(),
		"x":    pos.X(),
		"y":    pos.Y(),
		"z":    pos.Z(),
	}).Trace("spawn")
}
