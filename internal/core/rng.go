package core

// RNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG so a seed fully determines a session.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are the well-distributed ones
	return int((r.Next() >> 11) % uint64(n)) //#nosec G115 -- n is always positive
}

// IntRange returns a random int in [min, max].
func (r *RNG) IntRange(min, max int) int {
	if max < min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// FloatRange returns a random float64 in [min, max).
func (r *RNG) FloatRange(min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Sign returns -1 or +1 with equal probability.
func (r *RNG) Sign() float64 {
	if r.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// State exposes the generator state for snapshots.
func (r *RNG) State() uint64 {
	return r.state
}
