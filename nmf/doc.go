// Package nmf implements non-negative matrix factorization D ≈ U·V by
// alternating constrained least squares.
//
// What:
//
//   - Engine owns D (m×n, read-only input), U (m×k) and V (k×n).
//   - UpdateU: projected gradient descent on U with a diminishing step
//     c/sqrt(t), holding V fixed; converges on ||Δ||_F <= uEps.
//   - UpdateV: coordinate (Gauss–Seidel) descent on the normal equations of
//     each column of V, holding U fixed; columns are solved concurrently by a
//     fixed worker pool and joined before the next outer iteration.
//   - Decompose: random initialization (integer levels 0..9, unit columns),
//     then exactly OuterLoopMax alternations of {UpdateU; UpdateV}.
//
// Why:
//
//   - Low-rank, interpretable (non-negative) approximations for feature
//     extraction, clustering and dimensionality reduction.
//
// Options:
//
//   - WithVEps, WithUEps, WithScaledUEps: inner tolerances
//     (uEps defaults to vEps; WithScaledUEps derives vEps·sqrt(m+n)).
//   - WithZero: near-zero threshold for every cleaned result.
//   - WithInnerLoopMax, WithOuterLoopMax: iteration caps.
//   - WithStepCoefficient: UpdateU step numerator (default 0 disables UpdateU).
//   - WithWorkers: UpdateV pool size.
//   - WithSeed: deterministic initialization.
//   - WithContext: cancellation between outer iterations.
//   - WithOnOuterIteration: progress hook receiving IterationStats.
//   - WithPersister: receives (D, U, V) after the outer loop.
//
// Invariants:
//
//   - U and V are entrywise >= 0 whenever observable outside an update.
//   - D, U and V never change shape after construction.
//
// Complexity (per outer iteration):
//
//   - UpdateU: O(n*k*(m+k) + inner*m*k²).
//   - UpdateV: O(m*k*(n+k) + n*inner*k²), divided across workers.
//
// See example_test.go for usage.
package nmf
