// Package figure describes what the scope panel draws: one trace of
// time/voltage points and the axis layout around it.
package figure

import (
	"github.com/justinpbarnett/scopesync/internal/instrument"
)

const (
	TimeAxisTitle    = "s"
	VoltageAxisTitle = "Voltage (V)"
)

type Axis struct {
	Title string
	// AutoRange lets the renderer fit the axis to the data; Min and Max are
	// used otherwise.
	AutoRange bool
	Min, Max  float64
}

type Trace struct {
	X, Y []float64
}

type Figure struct {
	Trace Trace
	XAxis Axis
	YAxis Axis
	// Placeholder marks the flat line shown for a run that has no capture.
	Placeholder bool
}

// Live builds the figure for a capture, pinned to +/-vrange volts.
func Live(samples []instrument.Sample, vrange float64) Figure {
	tr := Trace{
		X: make([]float64, len(samples)),
		Y: make([]float64, len(samples)),
	}
	for i, s := range samples {
		tr.X[i] = s.Time
		tr.Y[i] = s.Voltage
	}
	return Figure{
		Trace: tr,
		XAxis: Axis{Title: TimeAxisTitle, AutoRange: true},
		YAxis: Axis{Title: VoltageAxisTitle, Min: -vrange, Max: vrange},
	}
}

// Zero builds the flat placeholder line over timeBase. Its voltage axis is
// left to autorange.
func Zero(timeBase []float64) Figure {
	tr := Trace{
		X: append([]float64(nil), timeBase...),
		Y: make([]float64, len(timeBase)),
	}
	return Figure{
		Trace:       tr,
		XAxis:       Axis{Title: TimeAxisTitle, AutoRange: true},
		YAxis:       Axis{Title: VoltageAxisTitle, AutoRange: true},
		Placeholder: true,
	}
}

// TimeBase returns n evenly spaced instants covering [0, window].
func TimeBase(n int, window float64) []float64 {
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	step := window / float64(n-1)
	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// Len is the number of points in the trace.
func (f Figure) Len() int { return len(f.Trace.Y) }

// YRange returns the voltage span the figure should be drawn over.
func (f Figure) YRange() (lo, hi float64) {
	if !f.YAxis.AutoRange {
		return f.YAxis.Min, f.YAxis.Max
	}
	if len(f.Trace.Y) == 0 {
		return -1, 1
	}
	lo, hi = f.Trace.Y[0], f.Trace.Y[0]
	for _, v := range f.Trace.Y[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		// a flat line sits in the middle of a unit band
		return lo - 1, hi + 1
	}
	return lo, hi
}
