// Package rng derives independent per-worker random streams.
package rng

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// Golden-ratio increment; separates worker streams sharing a base.
const golden = 0x9e3779b97f4a7c15

// Process-wide sequence mixed into time-derived bases so two calls in the
// same clock tick still get distinct seeds.
var sequence atomic.Int64

// DeriveSeed scrambles a base seed and a worker index into a stream seed.
// The scramble is splitmix64, so adjacent worker indexes land far apart.
func DeriveSeed(base int64, worker int) int64 {
	z := uint64(base) + uint64(worker+1)*golden
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// TimeSeeder derives worker seeds from the wall clock. Every WorkerSeed call
// reads a fresh high-resolution timestamp and a process-wide counter, so no
// two calls (even in the same instant, even for the same worker index) can
// collide.
type TimeSeeder struct{}

// NewTimeSeeder creates a time-derived seed source.
func NewTimeSeeder() *TimeSeeder {
	return &TimeSeeder{}
}

func (s *TimeSeeder) WorkerSeed(worker int) int64 {
	base := time.Now().UnixNano() ^ (sequence.Add(1) << 17)
	return DeriveSeed(base, worker)
}

func (s *TimeSeeder) Stream(worker int) *rand.Rand {
	return rand.New(rand.NewSource(s.WorkerSeed(worker)))
}

// FixedSeeder derives worker seeds from an explicit base, giving
// bit-reproducible integration runs.
type FixedSeeder struct {
	Base int64
}

// NewFixedSeeder creates a deterministic seed source.
func NewFixedSeeder(base int64) *FixedSeeder {
	return &FixedSeeder{Base: base}
}

func (s *FixedSeeder) WorkerSeed(worker int) int64 {
	return DeriveSeed(s.Base, worker)
}

func (s *FixedSeeder) Stream(worker int) *rand.Rand {
	return rand.New(rand.NewSource(s.WorkerSeed(worker)))
}
