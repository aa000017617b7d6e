package world

import "math"

// fractal is seeded 2D value noise summed over octaves. Results lie in [0,1].
type fractal struct {
	seed        int64
	octaves     int
	persistence float64
	lacunarity  float64
}

// biomeNoise is the two-octave field behind biome elevation, temperature and humidity.
func biomeNoise(seed int64) fractal {
	return fractal{seed: seed, octaves: 2, persistence: 0.5, lacunarity: 2}
}

func (f fractal) at(x, z float64) float64 {
	amp, freq := 1.0, 1.0
	var sum, norm float64
	for i := range f.octaves {
		sum += amp * value2D(x*freq, z*freq, f.seed+int64(i)*131)
		norm += amp
		amp *= f.persistence
		freq *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// value2D interpolates lattice values with a quintic ease in both axes.
func value2D(x, z float64, seed int64) float64 {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int64(fx), int64(fz)
	tx, tz := ease(x-fx), ease(z-fz)

	north := mix(lattice(ix, iz, seed), lattice(ix+1, iz, seed), tx)
	south := mix(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), tx)
	return mix(north, south, tz)
}

// lattice maps an integer corner to [0,1].
func lattice(x, z, seed int64) float64 {
	return float64(cornerHash(x, z, seed)>>11) / (1 << 53)
}

// cornerHash mixes the corner and seed through a splitmix64 finalizer.
func cornerHash(x, z, seed int64) uint64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(z)*0xC2B2AE3D27D4EB4F ^ uint64(seed)*0x165667B19E3779F9
	h ^= h >> 30
	h *= 0xBF58476D1CE4E5B9
	h ^= h >> 27
	h *= 0x94D049BB133111EB
	return h ^ h>>31
}

func ease(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
