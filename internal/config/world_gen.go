package config

import "sync"

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu       sync.RWMutex
	seed     int64
	flat     bool
	flatY    int
	seaLevel int
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:     1,
	flatY:    64,
	seaLevel: 62, // Standard sea level
}

// GetSeed returns the terrain seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the terrain seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetFlat returns whether the flat generator is used, and its grass height
func GetFlat() (bool, int) {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.flat, globalWorldGenSettings.flatY
}

// SetFlat selects the flat generator. Heights are clamped to [1, 250].
func SetFlat(enabled bool, y int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.flat = enabled
	globalWorldGenSettings.flatY = clampHeight(y)
}

// GetSeaLevel returns the configured sea level
func GetSeaLevel() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seaLevel
}

// SetSeaLevel sets the still-water height, clamped like SetFlat.
func SetSeaLevel(level int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seaLevel = clampHeight(level)
}

func clampHeight(y int) int {
	return min(max(y, 1), 250)
}
