package metrics

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is one named convergence curve.
type Series struct {
	Name   string
	Deltas []float64
}

// WriteConvergenceChart renders the per-sweep deltas of each series on a log10 scale
// into convergence.html.
func (w *Writer) WriteConvergenceChart(title string, series []Series) (string, error) {
	longest := 0
	for _, s := range series {
		longest = max(longest, len(s.Deltas))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "log10 max-norm delta per sweep",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	sweeps := make([]string, longest)
	for i := range sweeps {
		sweeps[i] = fmt.Sprintf("%d", i+1)
	}
	line = line.SetXAxis(sweeps)

	for _, s := range series {
		items := make([]opts.LineData, 0, len(s.Deltas))
		for _, delta := range s.Deltas {
			items = append(items, opts.LineData{Value: logDelta(delta)})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)

	path := filepath.Join(w.baseDir, "convergence.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return path, nil
}

// Deltas of exactly zero are drawn at the float64 epsilon floor.
func logDelta(delta float64) float64 {
	return math.Log10(math.Max(delta, 1e-16))
}
