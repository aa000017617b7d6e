package emission

import (
	"container/heap"

	"github.com/go-gl/mathgl/mgl64"
)

// PendingEmission is an effect waiting for its ready tick.
type PendingEmission struct {
	Effect    Effect
	Position  mgl64.Vec3
	ReadyTick int64

	seq uint64
}

// Scheduler is a delay queue ordered by ready tick. Entries with equal ready ticks
// come out in insertion order. It is not safe for concurrent use.
type Scheduler struct {
	queue pendingHeap
	now   int64
	seq   uint64
}

// NewScheduler creates an empty scheduler at tick 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// SetTick moves the scheduler clock. Later Schedule calls are relative to it.
func (s *Scheduler) SetTick(tick int64) {
	s.now = tick
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() int64 { return s.now }

// Schedule queues an effect to become ready delayTicks after the current tick.
// Negative delays are treated as zero.
func (s *Scheduler) Schedule(e Effect, pos mgl64.Vec3, delayTicks int) {
	if delayTicks < 0 {
		delayTicks = 0
	}
	s.seq++
	heap.Push(&s.queue, PendingEmission{
		Effect:    e,
		Position:  pos,
		ReadyTick: s.now + int64(delayTicks),
		seq:       s.seq,
	})
}

// Drain advances the clock to tick and removes every entry whose ready tick has passed.
func (s *Scheduler) Drain(tick int64) []PendingEmission {
	s.now = tick
	var out []PendingEmission
	for len(s.queue) > 0 && s.queue[0].ReadyTick <= tick {
		out = append(out, heap.Pop(&s.queue).(PendingEmission))
	}
	return out
}

// Len returns the number of queued entries.
func (s *Scheduler) Len() int { return len(s.queue) }

// Reset drops every queued entry and rewinds the clock.
func (s *Scheduler) Reset() {
	clear(s.queue)
	s.queue = s.queue[:0]
	s.now = 0
	s.seq = 0
}

type pendingHeap []PendingEmission

func (h pendingHeap) Len() int { return len(h) }

func (h pendingHeap) Less(i, j int) bool {
	if h[i].ReadyTick != h[j].ReadyTick {
		return h[i].ReadyTick < h[j].ReadyTick
	}
	return h[i].seq < h[j].seq
}

func (h pendingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pendingHeap) Push(x any) { *h = append(*h, x.(PendingEmission)) }

func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = PendingEmission{}
	*h = old[:n-1]
	return item
}
