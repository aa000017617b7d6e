package config

import "sync"

// RuntimeSettings holds values the debug console and command flags may change while running.
type RuntimeSettings struct {
	mu           sync.RWMutex
	tickRate     int // ticks per second, 0 = unthrottled
	muted        bool
	maxParticles int
}

var globalRuntimeSettings = &RuntimeSettings{
	tickRate:     20,
	maxParticles: 4096,
}

// GetTickRate returns the simulation rate in ticks per second
func GetTickRate() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.tickRate
}

// SetTickRate sets the simulation rate. 0 disables throttling.
func SetTickRate(rate int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if rate < 0 {
		rate = 0
	}
	if rate > 1000 {
		rate = 1000
	}
	globalRuntimeSettings.tickRate = rate
}

// GetMuted reports whether ambient audio is muted
func GetMuted() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.muted
}

// SetMuted mutes or unmutes ambient audio
func SetMuted(muted bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.muted = muted
}

// GetMaxParticles returns the live particle cap of the integrator
func GetMaxParticles() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.maxParticles
}

// SetMaxParticles sets the live particle cap, clamped to [64, 65536]
func SetMaxParticles(n int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if n < 64 {
		n = 64
	}
	if n > 65536 {
		n = 65536
	}
	globalRuntimeSettings.maxParticles = n
}
