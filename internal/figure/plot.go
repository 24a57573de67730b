package figure

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
)

// Plot draws f as braille line art in a width x height cell area. The
// canvas scales to its data, so two flat rails at the bottom and top of the
// voltage range are drawn with the trace to hold the axis at YRange.
func Plot(f Figure, width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}
	points := width * 2 // braille cells are two dots wide
	lo, hi := f.YRange()
	span := hi - lo

	trace := resample(f.Trace.Y, points)
	for i, v := range trace {
		trace[i] = clamp(v, lo, hi) - lo
	}
	floor := make([]float64, points)
	ceiling := make([]float64, points)
	for i := range ceiling {
		ceiling[i] = span
	}

	var highlight, dim plot.Color
	if lipgloss.HasDarkBackground() {
		highlight, dim = plot.Red, plot.DimGray
	} else {
		highlight, dim = plot.Black, plot.LightGray
	}

	c := plot.NewCanvas(width, height)
	c.NumDataPoints = points
	c.ShowAxis = false
	c.LineColors = []plot.Color{dim, dim, highlight}
	c.Fill([][]float64{floor, ceiling, trace})
	out := strings.TrimRight(c.String(), "\n")
	if out == "" {
		return emptyPlot(width, height)
	}
	return fitRows(out, width, height)
}

// fitRows crops or pads the canvas output to exactly height lines.
func fitRows(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func emptyPlot(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// resample picks n evenly spaced points from ys. An empty input yields a
// flat zero series.
func resample(ys []float64, n int) []float64 {
	out := make([]float64, n)
	if len(ys) == 0 {
		return out
	}
	if len(ys) == 1 || n == 1 {
		for i := range out {
			out[i] = ys[0]
		}
		return out
	}
	for i := range out {
		idx := i * (len(ys) - 1) / (n - 1)
		out[i] = ys[idx]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
