// Package rngtest provides scripted random sources for tests.
package rngtest

import (
	"fmt"

	"github.com/samdwyer/dungeoncrawl/internal/rng"
)

// Constant returns the same draws forever.
// Int is clamped to n-1 so it is always a valid Intn result.
type Constant struct {
	Float float64
	Int   int
}

// Float64 returns c.Float.
func (c Constant) Float64() float64 { return c.Float }

// Intn returns c.Int, clamped into [0, n).
func (c Constant) Intn(n int) int {
	if c.Int >= n {
		return n - 1
	}
	if c.Int < 0 {
		return 0
	}
	return c.Int
}

// Script replays queued draws in order, then defers to Fallback.
// A nil Fallback returns zero once the queues are empty.
type Script struct {
	Floats   []float64
	Ints     []int
	Fallback rng.Source
}

// Float64 pops the next queued float.
func (s *Script) Float64() float64 {
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.Float64()
	}
	return 0
}

// Intn pops the next queued int. It panics if the scripted value is out of range,
// which means the test scripted the wrong roll.
func (s *Script) Intn(n int) int {
	if len(s.Ints) > 0 {
		v := s.Ints[0]
		s.Ints = s.Ints[1:]
		if v < 0 || v >= n {
			panic(fmt.Sprintf("rngtest: scripted Intn value %d out of range [0,%d)", v, n))
		}
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.Intn(n)
	}
	return 0
}

var (
	_ rng.Source = Constant{}
	_ rng.Source = (*Script)(nil)
)
