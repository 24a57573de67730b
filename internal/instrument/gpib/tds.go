package gpib

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// Scope reads waveforms from a TDS300 series oscilloscope using ASCII curve
// transfer.
type Scope struct {
	bus    *bus
	source string
}

func NewScope(c conn, channel string) *Scope {
	if channel == "" {
		channel = "CH1"
	}
	return &Scope{bus: &bus{c: c}, source: strings.ToUpper(channel)}
}

// Configure selects the source channel and the ASCII encoding Capture
// expects. It is safe to call again after the front panel was used.
func (s *Scope) Configure(ctx context.Context) error {
	for _, cmd := range []string{
		"HEADER OFF",
		"DATA:SOURCE " + s.source,
		"DATA:ENCDG ASCII",
		"DATA:WIDTH 1",
	} {
		if err := s.bus.command(ctx, cmd); err != nil {
			return fmt.Errorf("configure scope: %w", err)
		}
	}
	return nil
}

// Capture transfers the current record and scales it to seconds and volts.
func (s *Scope) Capture(ctx context.Context) ([]instrument.Sample, error) {
	var pre preamble
	for _, f := range []struct {
		q   string
		dst *float64
	}{
		{"WFMPRE:XINCR?", &pre.xincr},
		{"WFMPRE:XZERO?", &pre.xzero},
		{"WFMPRE:YMULT?", &pre.ymult},
		{"WFMPRE:YOFF?", &pre.yoff},
		{"WFMPRE:YZERO?", &pre.yzero},
	} {
		v, err := s.bus.queryFloat(ctx, f.q)
		if err != nil {
			return nil, fmt.Errorf("read preamble: %w", err)
		}
		*f.dst = v
	}

	const q = "CURVE?"
	reply, err := s.bus.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("read curve: %w", err)
	}
	samples, err := pre.scale(reply)
	if err != nil {
		return nil, &instrument.CommError{Op: q, Err: err}
	}
	return samples, nil
}

type preamble struct {
	xincr, xzero float64
	ymult, yoff  float64
	yzero        float64
}

// scale converts the comma separated digitizer levels of a CURVE? reply.
func (p preamble) scale(curve string) ([]instrument.Sample, error) {
	curve = strings.TrimSpace(curve)
	if i := strings.IndexByte(curve, ' '); i >= 0 {
		curve = curve[i+1:] // ":CURVE " header
	}
	if curve == "" {
		return nil, fmt.Errorf("empty curve")
	}
	fields := strings.Split(curve, ",")
	out := make([]instrument.Sample, len(fields))
	for i, f := range fields {
		raw, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("curve point %d: %w", i, err)
		}
		out[i] = instrument.Sample{
			Time:    p.xzero + float64(i)*p.xincr,
			Voltage: (raw-p.yoff)*p.ymult + p.yzero,
		}
	}
	return out, nil
}
