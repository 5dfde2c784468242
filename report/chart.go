package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/entangle/experiment"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooFewPoints is returned when a chart would have fewer than two pool sizes.
var ErrTooFewPoints = errors.New("report: need at least two points to plot")

const (
	chartWidth  = 1024
	chartHeight = 512
)

var orange = drawing.Color{R: 255, G: 165, B: 0, A: 255}

// powerOfTen labels a log10 axis value with its linear magnitude.
func powerOfTen(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", math.Pow(10, f))
	}
	return ""
}

func plain(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return ""
}

// logTicks places one tick per power of ten across [lo, hi].
func logTicks(lo, hi float64) []chart.Tick {
	var ticks []chart.Tick
	for e := math.Floor(lo); e <= math.Ceil(hi); e++ {
		ticks = append(ticks, chart.Tick{Value: e, Label: powerOfTen(e)})
	}
	return ticks
}

// span returns a non-degenerate range covering vs with a little headroom.
func span(vs ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range vs {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}

type axis struct {
	name   string
	lo, hi float64
	ticks  []chart.Tick
	format chart.ValueFormatter
}

// logAxis spans log10 values vs out to whole powers of ten.
func logAxis(name string, vs ...[]float64) axis {
	lo, hi := span(vs...)
	lo, hi = math.Floor(lo), math.Ceil(hi)
	return axis{name: name, lo: lo, hi: hi, ticks: logTicks(lo, hi), format: powerOfTen}
}

func render(w io.Writer, title string, x, y axis, series ...chart.Series) error {
	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           x.name,
			Style:          chart.Style{FontSize: 10.0},
			ValueFormatter: x.format,
			Range:          &chart.ContinuousRange{Min: x.lo, Max: x.hi},
			Ticks:          x.ticks,
		},
		YAxis: chart.YAxis{
			Name:           y.name,
			Style:          chart.Style{FontSize: 10.0},
			ValueFormatter: y.format,
			Range:          &chart.ContinuousRange{Min: y.lo, Max: y.hi},
			Ticks:          y.ticks,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering %q: %w", title, err)
	}
	return nil
}

// PlotScaling draws average, minimum and maximum recovery steps against pool
// size (log scale) as a PNG.
func PlotScaling(w io.Writer, s *experiment.Scaling) error {
	if len(s.Points) < 2 {
		return ErrTooFewPoints
	}
	xs := make([]float64, len(s.Points))
	avg := make([]float64, len(s.Points))
	lo := make([]float64, len(s.Points))
	hi := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = math.Log10(float64(p.Pool))
		avg[i] = p.AvgSteps
		lo[i] = float64(p.MinSteps)
		hi[i] = float64(p.MaxSteps)
	}
	yHi := 1.0
	for _, v := range hi {
		yHi = math.Max(yHi, v*1.1)
	}
	x := logAxis("pool size", xs)

	return render(w, "Recovery steps after corruption", x,
		axis{name: "steps", lo: 0, hi: yHi, format: plain},
		chart.ContinuousSeries{
			Name: "min steps", XValues: xs, YValues: lo,
			Style: chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0},
		},
		chart.ContinuousSeries{
			Name: "max steps", XValues: xs, YValues: hi,
			Style: chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
		},
		chart.ContinuousSeries{
			Name: "avg steps", XValues: xs, YValues: avg,
			Style: chart.Style{StrokeColor: orange, StrokeWidth: 4.0},
		},
	)
}

// PlotComparison draws the correction strategy's mean corrective actions
// against the crystal seed size, both on log scales, as a PNG.
func PlotComparison(w io.Writer, c *experiment.Comparison) error {
	if len(c.Points) < 2 {
		return ErrTooFewPoints
	}
	xs := make([]float64, len(c.Points))
	work := make([]float64, len(c.Points))
	seed := make([]float64, len(c.Points))
	for i, p := range c.Points {
		xs[i] = math.Log10(float64(p.Pool))
		work[i] = math.Log10(math.Max(1, p.Correction.Corrections))
		seed[i] = math.Log10(math.Max(1, float64(p.Seed)))
	}
	return render(w, "Corrective actions vs seed size",
		logAxis("pool size", xs),
		logAxis("count", work, seed),
		chart.ContinuousSeries{
			Name: "correction actions", XValues: xs, YValues: work,
			Style: chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 3.0},
		},
		chart.ContinuousSeries{
			Name: "seed vertices", XValues: xs, YValues: seed,
			Style: chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 3.0},
		},
	)
}

// SavePNG renders with plot into path.
func SavePNG(path string, plot func(io.Writer) error) error {
	return writeFile(path, plot)
}
