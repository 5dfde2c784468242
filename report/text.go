package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/katalvlaran/entangle/experiment"
	"github.com/katalvlaran/entangle/fault"
	"github.com/katalvlaran/entangle/params"
	"github.com/katalvlaran/entangle/store"
)

const (
	rule     = 70
	wideRule = 90
	maxBar   = 50
)

func bar(n int) string {
	if n < 0 {
		n = 0
	}
	if n > maxBar {
		n = maxBar
	}
	return strings.Repeat("█", n)
}

func percent(rate float64) string { return fmt.Sprintf("%.0f%%", rate*100) }

// WriteParams prints the parameters selected for a pool size.
func WriteParams(w io.Writer, p params.Params) error {
	_, err := fmt.Fprintf(w, "Pool size: %s\n  K (layers): %d\n  V (vertices): %d\n  Amplitude: %.3f\n",
		humanize.Comma(int64(p.Pool)), p.K, p.V, p.Amplitude)
	return err
}

// WriteCrystalTable prints vertex counts per layer count.
func WriteCrystalTable(w io.Writer, rows []params.CrystalRow) error {
	if _, err := fmt.Fprintln(w, "Crystal vertex counts:"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "  K=%d: %d vertices\n", r.K, r.V); err != nil {
			return err
		}
	}
	return nil
}

// WriteFault prints one fault-tolerance summary.
func WriteFault(w io.Writer, s fault.Summary) error {
	_, err := fmt.Fprintf(w,
		"Results:\n  Crystal: K=%d, V=%d\n  Amplitude: %.3f\n  Success rate: %s\n  Avg steps: %.1f (%d-%d)\n  Avg coherence: %.3f\n",
		s.K, s.V, s.Amplitude, percent(s.SuccessRate), s.AvgSteps, s.MinSteps, s.MaxSteps, s.AvgCoherence)
	return err
}

// WriteComparison prints the per-pool comparison table and its summary.
func WriteComparison(w io.Writer, c *experiment.Comparison) error {
	b := &strings.Builder{}
	fmt.Fprintln(b, strings.Repeat("=", wideRule))
	fmt.Fprintln(b, "GEOMETRY vs CORRECTION")
	fmt.Fprintln(b, strings.Repeat("=", wideRule))
	fmt.Fprintf(b, "Max pool: %s\nTrials: %d\nTest sizes: %d\n\n", humanize.Comma(int64(c.MaxPool)), c.Trials, len(c.Points))

	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Pool\t geo steps\t coh\t seed\t cor steps\t coh\t corrections\t ratio\t")
	for _, p := range c.Points {
		fmt.Fprintf(tw, "%s\t %.1f\t %.3f\t %d\t %.1f\t %.3f\t %.0f\t %.0f:1\t\n",
			humanize.Comma(int64(p.Pool)),
			p.Geometry.Steps, p.Geometry.Coherence, p.Seed,
			p.Correction.Steps, p.Correction.Coherence, p.Correction.Corrections, p.Ratio)
	}
	tw.Flush()

	s := c.Summary
	fmt.Fprintln(b)
	fmt.Fprintln(b, "SUMMARY")
	fmt.Fprintf(b, "Geometry steps range: %.1f - %.1f\n", s.GeometrySteps.Min, s.GeometrySteps.Max)
	fmt.Fprintf(b, "Correction count range: %.0f - %.0f\n", s.CorrectionCounts.Min, s.CorrectionCounts.Max)
	fmt.Fprintf(b, "Efficiency ratio range: %.0f:1 - %.0f:1\n\n", s.Ratios.Min, s.Ratios.Max)
	fmt.Fprintln(b, "Corrections per seed vertex:")
	for _, p := range c.Points {
		fmt.Fprintf(b, "  %10s: %6.0f:1 %s\n", humanize.Comma(int64(p.Pool)), p.Ratio, bar(int(p.Ratio/10)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteScalePoint prints one line of a scaling sweep.
func WriteScalePoint(w io.Writer, done, total int, p experiment.ScalePoint) error {
	status := "✓"
	if !p.Passed() {
		status = "✗"
	}
	_, err := fmt.Fprintf(w, "[%d/%d] Pool %10s  %s K=%d, V=%4d, steps=%5.1f (%d-%d), coh=%.3f, success=%s, time=%.1fs\n",
		done, total, humanize.Comma(int64(p.Pool)), status, p.K, p.V,
		p.AvgSteps, p.MinSteps, p.MaxSteps, p.AvgCoherence, percent(p.SuccessRate), p.TestTimeSec)
	return err
}

// WriteScaling prints the summary of a scaling sweep.
func WriteScaling(w io.Writer, s *experiment.Scaling) error {
	b := &strings.Builder{}
	fmt.Fprintln(b, strings.Repeat("=", rule))
	fmt.Fprintln(b, "SUMMARY")
	fmt.Fprintln(b, strings.Repeat("=", rule))
	fmt.Fprintf(b, "Duration:   %.2f hours\n", s.DurationHours())
	fmt.Fprintf(b, "Tests run:  %d\n", len(s.Points))
	if s.AllPassed {
		fmt.Fprintf(b, "Failures:   0 (100%% success across all scales)\n")
	} else {
		fmt.Fprintf(b, "Failures:   %d\n", len(s.Failures))
		for _, p := range s.Points {
			if !p.Passed() {
				fmt.Fprintf(b, "  - Pool %s: %s success\n", humanize.Comma(int64(p.Pool)), percent(p.SuccessRate))
			}
		}
	}
	fmt.Fprintln(b)
	fmt.Fprintln(b, "Step trend:")
	for _, p := range s.Points {
		fmt.Fprintf(b, "  %10s: %5.1f %s\n", humanize.Comma(int64(p.Pool)), p.AvgSteps, bar(int(p.AvgSteps/2)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteRuns prints stored runs as a table.
func WriteRuns(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No stored runs.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tCREATED\tMAX POOL\tTRIALS\tSEED\tPOINTS\tPASSED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d/%d\t%t\n",
			r.ID, r.Kind, humanize.Time(r.CreatedAt), humanize.Comma(int64(r.MaxPool)),
			r.Trials, r.Seed, r.Points, r.Total, r.AllPassed)
	}
	return tw.Flush()
}
