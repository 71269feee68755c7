package io

import (
	"math/rand/v2"
)

// Random is a seeded, reproducible byte source.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random source from seed.
func NewRandom(seed uint64) *Random {
	return &Random{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NextByte returns a uniformly distributed byte.
func (rs *Random) NextByte() byte {
	return byte(rs.rng.Uint32())
}
