package gpib

import (
	"context"
	"strconv"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// Generator speaks the AFG3000 series command set on source 1. Amplitude
// and offset cross the facade in millivolts; the instrument works in volts.
type Generator struct {
	bus *bus
}

func NewGenerator(c conn) *Generator {
	return &Generator{bus: &bus{c: c}}
}

func (g *Generator) Frequency(ctx context.Context) (float64, error) {
	return g.bus.queryFloat(ctx, "SOURCE1:FREQUENCY?")
}

func (g *Generator) SetFrequency(ctx context.Context, hz float64) error {
	return g.bus.command(ctx, "SOURCE1:FREQUENCY "+formatSCPI(hz))
}

func (g *Generator) Amplitude(ctx context.Context) (float64, error) {
	v, err := g.bus.queryFloat(ctx, "SOURCE1:VOLTAGE:AMPLITUDE?")
	return v * 1000, err
}

func (g *Generator) SetAmplitude(ctx context.Context, mv float64) error {
	return g.bus.command(ctx, "SOURCE1:VOLTAGE:AMPLITUDE "+formatSCPI(mv/1000))
}

func (g *Generator) Offset(ctx context.Context) (float64, error) {
	v, err := g.bus.queryFloat(ctx, "SOURCE1:VOLTAGE:OFFSET?")
	return v * 1000, err
}

func (g *Generator) SetOffset(ctx context.Context, mv float64) error {
	return g.bus.command(ctx, "SOURCE1:VOLTAGE:OFFSET "+formatSCPI(mv/1000))
}

func (g *Generator) Waveform(ctx context.Context) (instrument.Waveform, error) {
	const q = "SOURCE1:FUNCTION:SHAPE?"
	reply, err := g.bus.query(ctx, q)
	if err != nil {
		return "", err
	}
	w, err := instrument.ParseWaveform(reply)
	if err != nil {
		return "", &instrument.CommError{Op: q, Err: err}
	}
	return w, nil
}

func (g *Generator) SetWaveform(ctx context.Context, w instrument.Waveform) error {
	if _, err := instrument.ParseWaveform(string(w)); err != nil {
		return err
	}
	return g.bus.command(ctx, "SOURCE1:FUNCTION:SHAPE "+string(w))
}

func formatSCPI(v float64) string {
	return strconv.FormatFloat(v, 'G', 10, 64)
}
