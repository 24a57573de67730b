// Package sim is an in-process generator and oscilloscope pair. The scope
// "measures" whatever the generator is currently set to, so the dashboard can
// run without a bench attached.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

type Config struct {
	Initial instrument.Params
	// Samples per capture.
	Samples int
	// Cycles of the generated signal visible in one capture.
	Cycles float64
	// VoltsPerUnit converts the generator's amplitude/offset units into the
	// volts the scope reports.
	VoltsPerUnit float64
	// Noise is the standard deviation, in volts, added to every sample.
	Noise float64
	Seed  int64
}

// Instrument implements instrument.Facade.
type Instrument struct {
	mu     sync.Mutex
	params instrument.Params
	cfg    Config
	rng    *rand.Rand
}

func New(cfg Config) *Instrument {
	if cfg.Samples < 2 {
		cfg.Samples = 500
	}
	if cfg.Cycles <= 0 {
		cfg.Cycles = 3
	}
	if cfg.VoltsPerUnit == 0 {
		cfg.VoltsPerUnit = 1
	}
	if cfg.Initial.Waveform == "" {
		cfg.Initial.Waveform = instrument.Sine
	}
	return &Instrument{
		params: cfg.Initial,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
}

func (s *Instrument) Frequency(ctx context.Context) (float64, error) {
	return read(ctx, s, func(p instrument.Params) float64 { return p.Frequency })
}

func (s *Instrument) Amplitude(ctx context.Context) (float64, error) {
	return read(ctx, s, func(p instrument.Params) float64 { return p.Amplitude })
}

func (s *Instrument) Offset(ctx context.Context) (float64, error) {
	return read(ctx, s, func(p instrument.Params) float64 { return p.Offset })
}

func (s *Instrument) Waveform(ctx context.Context) (instrument.Waveform, error) {
	return read(ctx, s, func(p instrument.Params) instrument.Waveform { return p.Waveform })
}

func (s *Instrument) SetFrequency(ctx context.Context, hz float64) error {
	if hz <= 0 {
		return fmt.Errorf("frequency must be positive, got %v", hz)
	}
	return s.write(ctx, func(p *instrument.Params) { p.Frequency = hz })
}

func (s *Instrument) SetAmplitude(ctx context.Context, mv float64) error {
	return s.write(ctx, func(p *instrument.Params) { p.Amplitude = mv })
}

func (s *Instrument) SetOffset(ctx context.Context, mv float64) error {
	return s.write(ctx, func(p *instrument.Params) { p.Offset = mv })
}

func (s *Instrument) SetWaveform(ctx context.Context, w instrument.Waveform) error {
	if _, err := instrument.ParseWaveform(string(w)); err != nil {
		return err
	}
	return s.write(ctx, func(p *instrument.Params) { p.Waveform = w })
}

// Capture synthesizes Config.Cycles periods of the current signal, triggered
// at phase zero.
func (s *Instrument) Capture(ctx context.Context) ([]instrument.Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, &instrument.CommError{Op: "capture", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params
	n := s.cfg.Samples
	freq := p.Frequency
	if freq <= 0 {
		freq = 1
	}
	window := s.cfg.Cycles / freq
	dt := window / float64(n-1)

	out := make([]instrument.Sample, n)
	for i := range out {
		t := float64(i) * dt
		v := (p.Amplitude*shape(p.Waveform, 2*math.Pi*freq*t) + p.Offset) * s.cfg.VoltsPerUnit
		if s.cfg.Noise > 0 {
			v += s.rng.NormFloat64() * s.cfg.Noise
		}
		out[i] = instrument.Sample{Time: t, Voltage: v}
	}
	return out, nil
}

func (s *Instrument) write(ctx context.Context, fn func(*instrument.Params)) error {
	if err := ctx.Err(); err != nil {
		return &instrument.CommError{Op: "write", Err: err}
	}
	s.mu.Lock()
	fn(&s.params)
	s.mu.Unlock()
	return nil
}

func read[T any](ctx context.Context, s *Instrument, fn func(instrument.Params) T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, &instrument.CommError{Op: "read", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.params), nil
}

// shape returns the unit-amplitude waveform at phase x (radians).
func shape(w instrument.Waveform, x float64) float64 {
	switch w {
	case instrument.Square:
		if math.Sin(x) >= 0 {
			return 1
		}
		return -1
	case instrument.Ramp:
		// rising sawtooth, -1 at the start of each period
		frac := x/(2*math.Pi) - math.Floor(x/(2*math.Pi))
		return 2*frac - 1
	default:
		return math.Sin(x)
	}
}
