package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWriteReportsMethod(t *testing.T) {
	// keep OSC 52 output out of the test log
	origStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		w.Close()
		r.Close()
		os.Stderr = origStderr
	}()

	method, err := Write("SIN | 1000000Hz | 5mV | 0mV")
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if method != Native && method != OSC52 {
		t.Errorf("unexpected method %q", method)
	}
}

func TestOSC52Encoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"label", "RAMP | 250000Hz | 2.5mV | -1mV"},
		{"placeholder", "-"},
		{"unicode", "Run #1 · live"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeOSC52(&buf, tt.input); err != nil {
				t.Fatalf("writeOSC52: %v", err)
			}
			got := buf.String()
			if !strings.HasPrefix(got, "\x1b]52;c;") || !strings.HasSuffix(got, "\x07") {
				t.Fatalf("malformed sequence %q", got)
			}
			payload := strings.TrimSuffix(strings.TrimPrefix(got, "\x1b]52;c;"), "\x07")
			decoded, err := base64.StdEncoding.DecodeString(payload)
			if err != nil {
				t.Fatalf("payload is not base64: %v", err)
			}
			if string(decoded) != tt.input {
				t.Errorf("decoded %q, want %q", decoded, tt.input)
			}
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestOSC52WriteError(t *testing.T) {
	if err := writeOSC52(failWriter{}, "x"); err == nil {
		t.Error("expected write error")
	}
}
