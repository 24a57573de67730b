package figure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// WriteHTML renders f as a standalone ECharts line chart.
func WriteHTML(w io.Writer, f Figure, title, subtitle string) error {
	line := charts.NewLine()

	yAxis := opts.YAxis{Name: f.YAxis.Title}
	if !f.YAxis.AutoRange {
		yAxis.Min = f.YAxis.Min
		yAxis.Max = f.YAxis.Max
	}
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XAxis.Title}),
		charts.WithYAxisOpts(yAxis),
	)

	xs := make([]string, len(f.Trace.X))
	for i, x := range f.Trace.X {
		xs[i] = instrument.FormatValue(x)
	}
	ys := make([]opts.LineData, len(f.Trace.Y))
	for i, y := range f.Trace.Y {
		ys[i] = opts.LineData{Value: y}
	}
	line.SetXAxis(xs).AddSeries(VoltageAxisTitle, ys)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// ExportFile writes the chart to dir/name.html, creating dir as needed, and
// returns the path written.
func ExportFile(dir, name string, f Figure, title, subtitle string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	target := filepath.Join(dir, name+".html")
	tmp := target + ".tmp"

	out, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := WriteHTML(out, f, title, subtitle); err != nil {
		out.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename export file: %w", err)
	}
	return target, nil
}
