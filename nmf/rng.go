// SPDX-License-Identifier: MIT

// Package nmf - RNG utilities for factor initialization.
//
// Goals:
//   - Determinism: same seed ⇒ identical initial factors across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Initialization runs on the caller's
//     goroutine only; the UpdateV workers never draw random numbers.
package nmf

import (
	"math/rand"

	"github.com/katalvlaran/lvnmf/matrix"
)

// initLevels is the number of integer levels drawn per entry: int(rand·10) ∈ [0, 9].
const initLevels = 10

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use DefaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// fillLevels writes int(rng.Float64()·10) into every entry of a, row-major.
// Complexity: O(r*c).
func fillLevels(rng *rand.Rand, a *matrix.Dense) {
	raw := a.RawMatrix()
	for idx := range raw.Data[:raw.Rows*raw.Stride] {
		raw.Data[idx] = float64(int(rng.Float64() * initLevels))
	}
}
