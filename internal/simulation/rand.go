package simulation

import "math/rand/v2"

// particleRand derives an independent generator for one particle from the
// base seed. Sub-seeding per particle (rather than sharing one stream)
// keeps the ensemble deterministic no matter how particles are spread
// across workers.
func particleRand(seed uint64, particle int) *rand.Rand {
	// Offset the second PCG word so particle 0 does not collide with the
	// conventional (seed, 0) stream used elsewhere.
	return rand.New(rand.NewPCG(seed, uint64(particle)+1))
}
