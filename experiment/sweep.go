package experiment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/entangle/fault"
)

const minSweepPool = 50

var (
	comparisonMultipliers = []float64{0.5, 1, 2, 3, 5}
	scalingBases          = []int{50, 100, 200, 500}
)

// ComparisonPoolSizes returns int(m·10^(e/2)) for m in {0.5,1,2,3,5} and
// e in [2,20), restricted to [50, maxPool], sorted and de-duplicated.
func ComparisonPoolSizes(maxPool int) []int {
	seen := make(map[int]struct{})
	var out []int
	for e := 2; e < 20; e++ {
		scale := math.Pow(10, float64(e)/2)
		for _, m := range comparisonMultipliers {
			size := int(m * scale)
			if size < minSweepPool || size > maxPool {
				continue
			}
			if _, dup := seen[size]; dup {
				continue
			}
			seen[size] = struct{}{}
			out = append(out, size)
		}
	}
	sort.Ints(out)
	return out
}

// ScalingPoolSizes returns 50, 100, 200, 500 times powers of ten up to maxPool,
// sorted and de-duplicated (500 and 50×10 are one size).
func ScalingPoolSizes(maxPool int) []int {
	seen := make(map[int]struct{})
	var out []int
	for mult := 1; scalingBases[0]*mult <= maxPool; mult *= 10 {
		for _, b := range scalingBases {
			size := b * mult
			if size > maxPool {
				break
			}
			if _, dup := seen[size]; dup {
				continue
			}
			seen[size] = struct{}{}
			out = append(out, size)
		}
	}
	sort.Ints(out)
	return out
}

// StrategyStats are per-pool means over the comparison trials.
type StrategyStats struct {
	Steps       float64 `json:"steps" yaml:"steps"`
	Coherence   float64 `json:"coherence" yaml:"coherence"`
	Corrections float64 `json:"corrections" yaml:"corrections"`
	SuccessRate float64 `json:"success_rate" yaml:"success_rate"`
}

// ComparisonPoint compares both strategies at one pool size.
type ComparisonPoint struct {
	Pool       int           `json:"pool" yaml:"pool"`
	Seed       int           `json:"seed" yaml:"seed"` // V of the crystal
	Geometry   StrategyStats `json:"geometry" yaml:"geometry"`
	Correction StrategyStats `json:"correction" yaml:"correction"`
	// Ratio is the correction strategy's mean corrective actions per seed vertex.
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

// Range is a closed [Min, Max] interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r *Range) add(v float64, first bool) {
	if first || v < r.Min {
		r.Min = v
	}
	if first || v > r.Max {
		r.Max = v
	}
}

// ComparisonSummary spans all points of a comparison.
type ComparisonSummary struct {
	GeometrySteps    Range `json:"geometry_steps" yaml:"geometry_steps"`
	CorrectionCounts Range `json:"correction_counts" yaml:"correction_counts"`
	Ratios           Range `json:"ratios" yaml:"ratios"`
}

// Comparison is the outcome of Compare.
type Comparison struct {
	MaxPool int               `json:"max_pool" yaml:"max_pool"`
	Trials  int               `json:"trials" yaml:"trials"`
	Total   int               `json:"total" yaml:"total"`
	Points  []ComparisonPoint `json:"results" yaml:"results"`
	Summary ComparisonSummary `json:"summary" yaml:"summary"`
}

// Compare runs both strategies trials times at every ComparisonPoolSizes(maxPool)
// size. ctx is checked between pool sizes.
func Compare(ctx context.Context, maxPool, trials int, opts Options) (*Comparison, error) {
	if trials < 1 {
		return nil, fmt.Errorf("Compare: trials=%d: %w", trials, ErrInvalidTrials)
	}
	sizes := ComparisonPoolSizes(maxPool)
	if len(sizes) == 0 {
		return nil, fmt.Errorf("Compare: max_pool=%d: %w", maxPool, ErrInvalidMaxPool)
	}

	log := opts.logger()
	out := &Comparison{MaxPool: maxPool, Trials: trials, Total: len(sizes), Points: make([]ComparisonPoint, 0, len(sizes))}
	for _, pool := range sizes {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		pt, err := comparePool(pool, trials, opts)
		if err != nil {
			return out, fmt.Errorf("Compare: %w", err)
		}
		out.Points = append(out.Points, pt)
		out.Summary = Summarize(out.Points)

		log.Info("compare",
			"pool", pool,
			"seed", pt.Seed,
			"geometry_steps", pt.Geometry.Steps,
			"correction_steps", pt.Correction.Steps,
			"corrections", pt.Correction.Corrections,
			"ratio", pt.Ratio,
		)
	}
	return out, nil
}

// Summarize spans the geometry steps, correction counts and ratios of points.
func Summarize(points []ComparisonPoint) ComparisonSummary {
	var s ComparisonSummary
	for i, p := range points {
		first := i == 0
		s.GeometrySteps.add(p.Geometry.Steps, first)
		s.CorrectionCounts.add(p.Correction.Corrections, first)
		s.Ratios.add(p.Ratio, first)
	}
	return s
}

func comparePool(pool, trials int, opts Options) (ComparisonPoint, error) {
	g, err := prepare(pool)
	if err != nil {
		return ComparisonPoint{}, err
	}
	var geo, cor []RunResult
	for t := 0; t < trials; t++ {
		gr, err := g.runTrial(t, opts)
		if err != nil {
			return ComparisonPoint{}, err
		}
		cr, err := g.runCorrection(t, opts)
		if err != nil {
			return ComparisonPoint{}, err
		}
		geo = append(geo, gr)
		cor = append(cor, cr)
	}

	pt := ComparisonPoint{Pool: pool, Seed: g.p.V, Geometry: mean(geo), Correction: mean(cor)}
	if pt.Seed > 0 {
		pt.Ratio = pt.Correction.Corrections / float64(pt.Seed)
	}
	return pt, nil
}

func mean(rs []RunResult) StrategyStats {
	var s StrategyStats
	for _, r := range rs {
		s.Steps += float64(r.Steps)
		s.Coherence += r.Coherence
		s.Corrections += float64(r.Corrections)
		if r.Success {
			s.SuccessRate++
		}
	}
	n := float64(len(rs))
	s.Steps /= n
	s.Coherence /= n
	s.Corrections /= n
	s.SuccessRate /= n
	return s
}

// ScalePoint is one pool size of a scaling sweep.
type ScalePoint struct {
	fault.Summary `yaml:",inline"`
	TestTimeSec   float64 `json:"test_time_sec" yaml:"test_time_sec"`
}

// Scaling is the outcome of Scale.
type Scaling struct {
	Started   time.Time    `json:"started" yaml:"started"`
	Completed time.Time    `json:"completed" yaml:"completed"`
	MaxPool   int          `json:"max_pool" yaml:"max_pool"`
	Trials    int          `json:"trials" yaml:"trials"`
	Total     int          `json:"total" yaml:"total"`
	Points    []ScalePoint `json:"results" yaml:"results"`
	AllPassed bool         `json:"all_passed" yaml:"all_passed"`
	// Failures lists the pool sizes with a success rate below 1.
	Failures []int `json:"failures" yaml:"failures"`
}

// DurationHours returns the wall time of the sweep in hours.
func (s *Scaling) DurationHours() float64 {
	return s.Completed.Sub(s.Started).Hours()
}

// Progress is called after each pool size of a scaling sweep with the
// partial result so far.
type Progress func(done int, partial *Scaling)

// Scale runs FaultTolerance with trials trials at every ScalingPoolSizes(maxPool)
// size. progress may be nil. ctx is checked between pool sizes.
func Scale(ctx context.Context, maxPool, trials int, opts Options, progress Progress) (*Scaling, error) {
	if trials < 1 {
		return nil, fmt.Errorf("Scale: trials=%d: %w", trials, ErrInvalidTrials)
	}
	sizes := ScalingPoolSizes(maxPool)
	if len(sizes) == 0 {
		return nil, fmt.Errorf("Scale: max_pool=%d: %w", maxPool, ErrInvalidMaxPool)
	}

	opts.Trials = trials
	out := &Scaling{
		Started:   time.Now().UTC(),
		MaxPool:   maxPool,
		Trials:    trials,
		Total:     len(sizes),
		AllPassed: true,
		Failures:  []int{},
	}
	for i, pool := range sizes {
		if err := ctx.Err(); err != nil {
			out.Completed = time.Now().UTC()
			return out, err
		}
		opts.logger().Debug("scale", "index", i+1, "of", len(sizes), "pool", pool)

		t0 := time.Now()
		s, err := FaultTolerance(pool, opts)
		if err != nil {
			out.Completed = time.Now().UTC()
			return out, fmt.Errorf("Scale: %w", err)
		}
		out.Points = append(out.Points, ScalePoint{Summary: s, TestTimeSec: time.Since(t0).Seconds()})
		if !s.Passed() {
			out.AllPassed = false
			out.Failures = append(out.Failures, pool)
		}
		out.Completed = time.Now().UTC()

		if progress != nil {
			progress(i+1, out)
		}
	}
	return out, nil
}
