package engine

import "math/rand/v2"

// Rand yields uniform pseudo-random floats in [0,1). A Rand value is owned by
// a single simulation call; the engine never shares one across calls.
type Rand func() float64

const (
	lcgModulus    int64 = 2147483647 // 2^31 - 1, prime
	lcgMultiplier int64 = 16807      // Park-Miller minimal standard
)

// NewSeededRand returns a reproducible Rand backed by a multiplicative
// linear-congruential generator. For a fixed seed the full sequence of
// returned values is identical across platforms. Period divides 2147483646.
func NewSeededRand(seed int64) Rand {
	state := seed % lcgModulus
	if state <= 0 {
		// Map into (0, lcgModulus) so seed 0 avoids the generator's fixed point.
		state += lcgModulus - 1
	}
	return func() float64 {
		state = state * lcgMultiplier % lcgModulus
		return float64(state-1) / float64(lcgModulus-1)
	}
}

// SystemRand returns the platform default non-reproducible uniform source.
func SystemRand() Rand {
	return rand.Float64
}

func randFromSeed(seed *int64) Rand {
	if seed == nil {
		return SystemRand()
	}
	return NewSeededRand(*seed)
}
