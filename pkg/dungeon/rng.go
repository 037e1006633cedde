package dungeon

import "github.com/cespare/xxhash/v2"

// RNG is a small deterministic LCG seeded from a seed string.
// The same seed and salt always yield the same sequence.
type RNG struct {
	state uint64
}

// NewRNG hashes seed and mixes in salt so independent consumers of one seed
// (fill, carving, placement) draw from separate streams.
func NewRNG(seed string, salt uint64) *RNG {
	s := xxhash.Sum64String(seed) ^ (salt * 0x9E3779B97F4A7C15)
	return &RNG{state: s}
}

func (r *RNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n). n must be > 0.
func (r *RNG) Intn(n int) int {
	return int((r.next() >> 33) % uint64(n))
}

// Coin returns true half of the time.
func (r *RNG) Coin() bool {
	return (r.next()>>63)&1 == 1
}

// Percent returns true with probability p/100.
func (r *RNG) Percent(p int) bool {
	return r.Intn(100) < p
}
