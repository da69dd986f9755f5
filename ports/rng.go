package ports

import (
	"math/rand"
)

// SeedSource derives statistically independent random streams for workers.
//
// Independence is a correctness requirement, not a performance nicety: two
// workers sharing a seed produce correlated sub-estimates and the combined
// error becomes meaningless.
type SeedSource interface {
	// WorkerSeed returns the seed for the given worker index. A fixed source
	// must return the same seed for the same index on every call; a
	// time-derived source must never repeat a seed across calls. No two
	// worker indexes may ever collide.
	WorkerSeed(worker int) int64

	// Stream returns a ready-to-use generator seeded for the given worker.
	Stream(worker int) *rand.Rand
}
