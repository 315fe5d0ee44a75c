package selection

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// rngFromSeed builds a deterministic PRNG from an externally supplied seed
// string (derived from a blockchain block hash). The engine never generates
// its own randomness; re-running with the same seed reproduces every draw.
func rngFromSeed(seed string) *rand.Rand {
	sum := sha256.Sum256([]byte(seed))
	return rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(sum[:8]))))
}

// shuffleOrder returns a permutation of [0, n) derived from the seed.
// The position of each index in the permutation is used as the random
// tie-break key during ranking.
func shuffleOrder(n int, seed string) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rngFromSeed(seed)
	rng.Shuffle(n, func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
