// Package rng provides the random source shared by dungeon generation,
// encounters and combat.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the randomness provider for every game roll.
// *rand.Rand satisfies it; tests substitute scripted sources.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform int in [0, n). n must be > 0.
	Intn(n int) int
}

// New returns a deterministic source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a high-entropy seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Range returns a uniform int in [lo, hi] inclusive.
// If hi <= lo, lo is returned without consuming a draw.
func Range(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Percent returns a uniform value in [0, 100).
func Percent(src Source) float64 {
	return src.Float64() * 100
}

// Chance reports whether a draw in [0, 1) falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Shuffle permutes n elements with Fisher–Yates, calling swap for each exchange.
// Every permutation is equally likely.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
