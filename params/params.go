package params

import "fmt"

// MinLayers is the smallest admissible crystal layer count (center + icosa).
const MinLayers = 2

// Layer indices used by the rhythm schedule.
const (
	LayerCenter = 0
	LayerTriad  = 1
	LayerIcosa  = 2
)

// CycleLength is the number of beats in one rhythm cycle.
const CycleLength = 12

// Base shell sizes of the crystal.
const (
	centerSize = 1
	triadSize  = 3
	icosaSize  = 12
	shellScale = 3 // each outer shell is 3× the previous one
)

// poolThreshold pairs an inclusive pool upper bound with the layer count used up to it.
type poolThreshold struct {
	maxPool int
	layers  int
}

// layerThresholds is the empirical crossover table, ascending by maxPool.
var layerThresholds = []poolThreshold{
	{maxPool: 150, layers: 2},
	{maxPool: 400, layers: 3},
	{maxPool: 3000, layers: 4},
	{maxPool: 15000, layers: 5},
}

// maxLayers is used above the last threshold.
const maxLayers = 6

// Beat is one entry of the rhythm schedule: a 1-based beat number and the
// layer index pulsed on that beat.
type Beat struct {
	Number int `json:"beat" yaml:"beat"`
	Layer  int `json:"layer" yaml:"layer"`
}

// Params is the full parameter set for one pool size.
type Params struct {
	Pool      int     `json:"pool" yaml:"pool"`
	K         int     `json:"K" yaml:"K"`
	V         int     `json:"V" yaml:"V"`
	Amplitude float64 `json:"amplitude" yaml:"amplitude"`
	Rhythm    []Beat  `json:"rhythm" yaml:"rhythm"`
}

// T returns the n-th triangular number n(n+1)/2.
func T(n int) int {
	return n * (n + 1) / 2
}

// CrystalVertices returns the seed vertex count V for a K-layer crystal.
//
//	K=2: 1 + 12           = 13
//	K=3: 1 + 3 + 12       = 16
//	K=4: 16 + 36          = 52
//	K=5: 52 + 108         = 160
//	K=6: 160 + 324        = 484
//
// Complexity: O(K).
func CrystalVertices(k int) (int, error) {
	if k < MinLayers {
		return 0, fmt.Errorf("CrystalVertices: K=%d: %w", k, ErrInvalidLayers)
	}
	if k == MinLayers {
		return centerSize + icosaSize, nil
	}

	v := centerSize + triadSize + icosaSize
	shell := icosaSize
	for i := 0; i < k-3; i++ {
		shell *= shellScale
		v += shell
	}

	return v, nil
}

// OptimalK returns the crystal layer count for the given pool size.
// Thresholds are inclusive upper bounds: pool=150 → 2, pool=151 → 3.
func OptimalK(pool int) (int, error) {
	if pool <= 0 {
		return 0, fmt.Errorf("OptimalK: pool=%d: %w", pool, ErrInvalidPool)
	}
	for _, th := range layerThresholds {
		if pool <= th.maxPool {
			return th.layers, nil
		}
	}

	return maxLayers, nil
}

// OptimalAmplitude returns the pulse amplitude for the given pool size.
func OptimalAmplitude(pool int) (float64, error) {
	if pool <= 0 {
		return 0, fmt.Errorf("OptimalAmplitude: pool=%d: %w", pool, ErrInvalidPool)
	}
	switch {
	case pool <= 100:
		return 3 / float64(T(3)), nil
	case pool <= 500:
		return 3 / float64(T(4)), nil
	default:
		return 2 / float64(T(4)), nil
	}
}

// RhythmSequence returns a fresh copy of the 12-beat pulse schedule.
// Layers cycle center → triad → icosa on every beat.
func RhythmSequence() []Beat {
	out := make([]Beat, CycleLength)
	for i := range out {
		out[i] = Beat{Number: i + 1, Layer: i % 3}
	}

	return out
}

// EntanglementParams returns K, V, amplitude and rhythm for a pool size.
func EntanglementParams(pool int) (Params, error) {
	k, err := OptimalK(pool)
	if err != nil {
		return Params{}, fmt.Errorf("EntanglementParams: %w", err)
	}
	v, err := CrystalVertices(k)
	if err != nil {
		return Params{}, fmt.Errorf("EntanglementParams: %w", err)
	}
	amp, err := OptimalAmplitude(pool)
	if err != nil {
		return Params{}, fmt.Errorf("EntanglementParams: %w", err)
	}

	return Params{
		Pool:      pool,
		K:         k,
		V:         v,
		Amplitude: amp,
		Rhythm:    RhythmSequence(),
	}, nil
}

// CrystalRow is one line of the crystal size table.
type CrystalRow struct {
	K int `json:"K" yaml:"K"`
	V int `json:"V" yaml:"V"`
}

// CrystalTable lists vertex counts for K = 2..maxK.
// Returns an empty table when maxK < 2.
func CrystalTable(maxK int) []CrystalRow {
	var rows []CrystalRow
	for k := MinLayers; k <= maxK; k++ {
		v, _ := CrystalVertices(k) // k ≥ MinLayers by construction
		rows = append(rows, CrystalRow{K: k, V: v})
	}

	return rows
}
