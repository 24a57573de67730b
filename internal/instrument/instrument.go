package instrument

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Waveform is the generator's output shape.
type Waveform string

const (
	Sine   Waveform = "SIN"
	Square Waveform = "SQUARE"
	Ramp   Waveform = "RAMP"
)

// Waveforms lists the shapes selectable from the control panel, in display order.
var Waveforms = []Waveform{Sine, Square, Ramp}

// ParseWaveform accepts the canonical names plus the short forms instruments
// report (SQU) and is case-insensitive.
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SIN", "SINE", "SINUSOID":
		return Sine, nil
	case "SQU", "SQUARE":
		return Square, nil
	case "RAMP", "SAW", "SAWTOOTH":
		return Ramp, nil
	}
	return "", fmt.Errorf("unknown waveform %q", s)
}

// Sample is one point of an oscilloscope capture.
type Sample struct {
	Time    float64
	Voltage float64
}

// Params is a snapshot of the generator settings.
type Params struct {
	Waveform  Waveform
	Frequency float64
	Amplitude float64
	Offset    float64
}

// ErrCommunication is matched (via errors.Is) by every failure to talk to an
// instrument: I/O errors, timeouts and unparseable replies.
var ErrCommunication = errors.New("instrument communication failed")

// CommError records which instrument operation failed.
type CommError struct {
	Op  string
	Err error
}

func (e *CommError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommError) Unwrap() error { return e.Err }

func (e *CommError) Is(target error) bool { return target == ErrCommunication }

// Generator is the waveform generator side of the facade.
type Generator interface {
	Frequency(ctx context.Context) (float64, error)
	SetFrequency(ctx context.Context, hz float64) error
	Amplitude(ctx context.Context) (float64, error)
	SetAmplitude(ctx context.Context, mv float64) error
	Offset(ctx context.Context) (float64, error)
	SetOffset(ctx context.Context, mv float64) error
	Waveform(ctx context.Context) (Waveform, error)
	SetWaveform(ctx context.Context, w Waveform) error
}

// Scope is the oscilloscope side of the facade.
type Scope interface {
	Capture(ctx context.Context) ([]Sample, error)
}

// Facade is everything the reconciliation engine needs from the bench.
type Facade interface {
	Generator
	Scope
}

type pair struct {
	Generator
	Scope
}

// Join combines a generator and a scope driven by different backends.
func Join(g Generator, s Scope) Facade {
	return pair{Generator: g, Scope: s}
}

// ReadParams reads all four generator settings. It stops at the first failure
// and returns a zero Params with the error.
func ReadParams(ctx context.Context, g Generator) (Params, error) {
	var p Params
	var err error
	if p.Waveform, err = g.Waveform(ctx); err != nil {
		return Params{}, fmt.Errorf("read waveform: %w", err)
	}
	if p.Frequency, err = g.Frequency(ctx); err != nil {
		return Params{}, fmt.Errorf("read frequency: %w", err)
	}
	if p.Amplitude, err = g.Amplitude(ctx); err != nil {
		return Params{}, fmt.Errorf("read amplitude: %w", err)
	}
	if p.Offset, err = g.Offset(ctx); err != nil {
		return Params{}, fmt.Errorf("read offset: %w", err)
	}
	return p, nil
}

// FormatValue renders a numeric setting without a trailing ".0" for whole
// numbers: 1e6 -> "1000000", 2.5 -> "2.5".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
