package game

import (
	"time"

	"windswept/internal/config"
)

// pausedRate is how often a paused loop wakes up to poll for input.
const pausedRate = 60

// TickLimiter paces a loop at a rate read before every wait
type TickLimiter struct {
	next time.Time
	rate func() int
}

// NewTickLimiter creates a limiter that follows config.GetTickRate
func NewTickLimiter() *TickLimiter {
	return &TickLimiter{rate: config.GetTickRate}
}

// NewFrameLimiter creates a limiter with a fixed rate; fps <= 0 never waits.
func NewFrameLimiter(fps int) *TickLimiter {
	return &TickLimiter{rate: func() int { return fps }}
}

// Wait blocks until the next tick is due.
// Uses a hybrid sleep/spin approach for better precision on high rates.
func (l *TickLimiter) Wait(paused bool) {
	rate := l.rate()
	if paused {
		rate = pausedRate
	}

	if rate <= 0 {
		l.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(rate)

	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}
