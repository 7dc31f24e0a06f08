// Package producer generates placeholder findings. The shape of every
// result is fixed; values are drawn from an injected random source so that
// tests can pin them.
package producer

import (
	"math/rand"
	"time"
)

// Source creates random generators. Each call to New starts a generator;
// a seeded source starts the same sequence every time.
type Source interface {
	New() *rand.Rand
}

// SeededSource always yields generators seeded with the same value
type SeededSource int64

// New returns a generator seeded with s
func (s SeededSource) New() *rand.Rand {
	return rand.New(rand.NewSource(int64(s)))
}

type clockSource struct{}

func (clockSource) New() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// ClockSource returns a source seeded from the wall clock
func ClockSource() Source {
	return clockSource{}
}

// NewSource returns a seeded source, or a clock source when seed is zero
func NewSource(seed int64) Source {
	if seed == 0 {
		return ClockSource()
	}
	return SeededSource(seed)
}

// Split draws n independent seeds from rng. Tasks running concurrently each
// get their own generator so that results do not depend on scheduling.
func Split(rng *rand.Rand, n int) []SeededSource {
	out := make([]SeededSource, n)
	for i := range out {
		seed := rng.Int63()
		if seed == 0 {
			seed = 1
		}
		out[i] = SeededSource(seed)
	}
	return out
}

// roundTo1 rounds to one decimal place
func roundTo1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
