package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// Param names a generator setting a control can write.
type Param string

const (
	ParamFrequency Param = "frequency"
	ParamAmplitude Param = "amplitude"
	ParamOffset    Param = "offset"
	ParamWaveform  Param = "waveform"
)

func ParseParam(s string) (Param, error) {
	switch p := Param(strings.ToLower(strings.TrimSpace(s))); p {
	case ParamFrequency, ParamAmplitude, ParamOffset, ParamWaveform:
		return p, nil
	}
	return "", fmt.Errorf("unknown parameter %q", s)
}

// The setters forward a control value to the generator and echo it back for
// display. They are not ordered against live captures: a capture running
// concurrently may record the old or the new value.

func (s *Session) SetFrequency(ctx context.Context, hz float64) (float64, error) {
	return hz, s.write(ParamFrequency, s.inst.SetFrequency(ctx, hz))
}

func (s *Session) SetAmplitude(ctx context.Context, mv float64) (float64, error) {
	return mv, s.write(ParamAmplitude, s.inst.SetAmplitude(ctx, mv))
}

func (s *Session) SetOffset(ctx context.Context, mv float64) (float64, error) {
	return mv, s.write(ParamOffset, s.inst.SetOffset(ctx, mv))
}

func (s *Session) SetWaveform(ctx context.Context, w instrument.Waveform) (instrument.Waveform, error) {
	return w, s.write(ParamWaveform, s.inst.SetWaveform(ctx, w))
}

// OnParameterChanged parses value for the named parameter and writes it.
// The echoed value is returned in its canonical text form.
func (s *Session) OnParameterChanged(ctx context.Context, name Param, value string) (string, error) {
	if name == ParamWaveform {
		w, err := instrument.ParseWaveform(value)
		if err != nil {
			return "", err
		}
		echo, err := s.SetWaveform(ctx, w)
		return string(echo), err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", fmt.Errorf("%s: invalid number %q", name, value)
	}
	var echo float64
	switch name {
	case ParamFrequency:
		echo, err = s.SetFrequency(ctx, v)
	case ParamAmplitude:
		echo, err = s.SetAmplitude(ctx, v)
	case ParamOffset:
		echo, err = s.SetOffset(ctx, v)
	default:
		return "", fmt.Errorf("unknown parameter %q", name)
	}
	return instrument.FormatValue(echo), err
}

// Parameters reads the generator's current settings, e.g. to seed the
// controls at startup.
func (s *Session) Parameters(ctx context.Context) (instrument.Params, error) {
	return instrument.ReadParams(ctx, s.inst)
}

func (s *Session) write(p Param, err error) error {
	if err == nil {
		return nil
	}
	log.Printf("warning: session %s: set %s: %v", s.id, p, err)
	return fmt.Errorf("set %s: %w", p, err)
}
