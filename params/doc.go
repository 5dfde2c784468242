// Package params selects the crystal seed parameters for a given pool size.
//
// What:
//
//   - OptimalK maps a pool size to the number of crystal layers K.
//   - CrystalVertices maps K to the seed vertex count V.
//   - OptimalAmplitude maps a pool size to the pulse amplitude.
//   - RhythmSequence returns the fixed 12-beat pulse schedule.
//   - EntanglementParams bundles all four for one pool size.
//
// Layer thresholds (pool → K → V):
//
//	pool ≤ 150    → K=2 → 13   (center + icosa)
//	pool ≤ 400    → K=3 → 16   (+ triad)
//	pool ≤ 3000   → K=4 → 52   (+ 36-vertex shell)
//	pool ≤ 15000  → K=5 → 160  (+ 108-vertex shell)
//	pool > 15000  → K=6 → 484  (+ 324-vertex shell)
//
// Amplitudes are derived from triangular numbers T(n)=n(n+1)/2:
//
//	pool ≤ 100 → 3/T(3) = 0.5
//	pool ≤ 500 → 3/T(4) = 0.3
//	pool > 500 → 2/T(4) = 0.2
//
// Every function here is pure: no randomness, no I/O, no retained state,
// so callers may query parameters without building or running a network.
//
// Errors:
//
//   - ErrInvalidLayers: K < 2.
//   - ErrInvalidPool:   pool ≤ 0.
package params
