package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

func TestSetAndRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(Config{Initial: instrument.Params{Frequency: 1e5}})

	if err := s.SetFrequency(ctx, 2e5); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if err := s.SetAmplitude(ctx, 4); err != nil {
		t.Fatalf("SetAmplitude: %v", err)
	}
	if err := s.SetOffset(ctx, 1.5); err != nil {
		t.Fatalf("SetOffset: %v", err)
	}
	if err := s.SetWaveform(ctx, instrument.Square); err != nil {
		t.Fatalf("SetWaveform: %v", err)
	}

	p, err := instrument.ReadParams(ctx, s)
	if err != nil {
		t.Fatalf("ReadParams: %v", err)
	}
	want := instrument.Params{Waveform: instrument.Square, Frequency: 2e5, Amplitude: 4, Offset: 1.5}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestDefaultsToSine(t *testing.T) {
	t.Parallel()
	s := New(Config{})
	w, _ := s.Waveform(context.Background())
	if w != instrument.Sine {
		t.Errorf("expected default waveform SIN, got %q", w)
	}
}

func TestRejectsInvalidWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(Config{})

	if err := s.SetFrequency(ctx, 0); err == nil {
		t.Error("expected error for zero frequency")
	}
	if err := s.SetWaveform(ctx, "TRIANGLE"); err == nil {
		t.Error("expected error for unknown waveform")
	}
}

func TestCaptureShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		wave     instrument.Waveform
		min, max float64
	}{
		{instrument.Sine, -3 + 2, 3 + 2},
		{instrument.Square, -3 + 2, 3 + 2},
		{instrument.Ramp, -3 + 2, 3 + 2},
	}
	for _, tt := range tests {
		s := New(Config{
			Initial: instrument.Params{Waveform: tt.wave, Frequency: 1e3, Amplitude: 3, Offset: 2},
			Samples: 200,
			Cycles:  2,
		})
		samples, err := s.Capture(context.Background())
		if err != nil {
			t.Fatalf("%s: Capture: %v", tt.wave, err)
		}
		if len(samples) != 200 {
			t.Fatalf("%s: expected 200 samples, got %d", tt.wave, len(samples))
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for i, smp := range samples {
			if i > 0 && smp.Time <= samples[i-1].Time {
				t.Fatalf("%s: time base not increasing at %d", tt.wave, i)
			}
			lo = math.Min(lo, smp.Voltage)
			hi = math.Max(hi, smp.Voltage)
		}
		if lo < tt.min-1e-9 || hi > tt.max+1e-9 {
			t.Errorf("%s: voltage range [%v, %v] outside [%v, %v]", tt.wave, lo, hi, tt.min, tt.max)
		}
		if wantWindow := 2 / 1e3; math.Abs(samples[len(samples)-1].Time-wantWindow) > 1e-12 {
			t.Errorf("%s: window %v, want %v", tt.wave, samples[len(samples)-1].Time, wantWindow)
		}
	}
}

func TestSquareIsTwoLevel(t *testing.T) {
	t.Parallel()
	s := New(Config{Initial: instrument.Params{Waveform: instrument.Square, Frequency: 10, Amplitude: 1}})
	samples, _ := s.Capture(context.Background())
	for _, smp := range samples {
		if smp.Voltage != 1 && smp.Voltage != -1 {
			t.Fatalf("square sample %v not at +/-1", smp.Voltage)
		}
	}
}

func TestCaptureCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{}).Capture(ctx)
	if !errors.Is(err, instrument.ErrCommunication) {
		t.Errorf("expected ErrCommunication, got %v", err)
	}
}
