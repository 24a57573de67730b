package text

import (
	"testing"
	"time"
)

func TestFormatSI(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{0, "Hz", "0 Hz"},
		{500, "Hz", "500 Hz"},
		{100000, "Hz", "100 kHz"},
		{1000000, "Hz", "1 MHz"},
		{2500000, "Hz", "2.5 MHz"},
		{1234567, "Hz", "1.235 MHz"},
		{-2000, "V", "-2 kV"},
		{5, "mV", "5 mV"},
	}
	for _, tt := range tests {
		if got := FormatSI(tt.v, tt.unit); got != tt.want {
			t.Errorf("FormatSI(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "0ms"},
		{100 * time.Millisecond, "100ms"},
		{2 * time.Second, "2s"},
		{1500 * time.Millisecond, "1.5s"},
		{3 * time.Minute, "3m"},
		{72 * time.Minute, "1h12m"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
