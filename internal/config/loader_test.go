package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	tmp := t.TempDir()

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Instrument.Driver != "sim" {
		t.Errorf("expected driver %q, got %q", "sim", cfg.Instrument.Driver)
	}
	if cfg.Engine.TickInterval() != 2*time.Second {
		t.Errorf("expected tick interval 2s, got %v", cfg.Engine.TickInterval())
	}
	if cfg.Engine.SettleDelay() != 100*time.Millisecond {
		t.Errorf("expected settle delay 100ms, got %v", cfg.Engine.SettleDelay())
	}
	if cfg.Display.VoltageRange != 10 {
		t.Errorf("expected voltage range 10, got %v", cfg.Display.VoltageRange)
	}
	if cfg.Controls.Frequency.Step != 100000 {
		t.Errorf("expected frequency step 100000, got %v", cfg.Controls.Frequency.Step)
	}
	if cfg.Display.ShowAxis == nil || !*cfg.Display.ShowAxis {
		t.Error("expected ShowAxis default to be true")
	}
	if cfg.UI.AccentColor != "#447EFF" {
		t.Errorf("expected accent %q, got %q", "#447EFF", cfg.UI.AccentColor)
	}
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	yaml := `
instrument:
  driver: gpib
  generator:
    port: /dev/ttyUSB3
    address: 11
  channel: CH2
engine:
  max_runs: 8
display:
  show_axis: false
`
	os.WriteFile(filepath.Join(tmp, "scopesync.yaml"), []byte(yaml), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Instrument.Driver != "gpib" {
		t.Errorf("expected driver %q, got %q", "gpib", cfg.Instrument.Driver)
	}
	if cfg.Instrument.Generator.Port != "/dev/ttyUSB3" || cfg.Instrument.Generator.Address != 11 {
		t.Errorf("unexpected generator endpoint %+v", cfg.Instrument.Generator)
	}
	if cfg.Instrument.Scope.Port != "/dev/ttyUSB1" {
		t.Errorf("expected scope port default preserved, got %q", cfg.Instrument.Scope.Port)
	}
	if cfg.Instrument.Channel != "CH2" {
		t.Errorf("expected channel CH2, got %q", cfg.Instrument.Channel)
	}
	if cfg.Engine.MaxRuns != 8 {
		t.Errorf("expected max runs 8, got %d", cfg.Engine.MaxRuns)
	}
	if cfg.Display.ShowAxis == nil || *cfg.Display.ShowAxis {
		t.Error("expected ShowAxis to be overridden to false")
	}
}

func TestLoadFromTOML(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()

	toml := `
[engine]
tick_interval_ms = 500

[sim]
waveform = "ramp"
amplitude = 2.5

[controls.amplitude]
min = 1.0
max = 4.0
`
	os.WriteFile(filepath.Join(tmp, "scopesync.toml"), []byte(toml), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.Engine.TickIntervalMS != 500 {
		t.Errorf("expected tick 500, got %d", cfg.Engine.TickIntervalMS)
	}
	if cfg.Sim.Waveform != "ramp" || cfg.Sim.Amplitude != 2.5 {
		t.Errorf("unexpected sim config %+v", cfg.Sim)
	}
	if cfg.Sim.Frequency != 1000000 {
		t.Errorf("expected sim frequency default preserved, got %v", cfg.Sim.Frequency)
	}
	k := cfg.Controls.Amplitude
	if k.Min != 1 || k.Max != 4 || k.Step != 1 {
		t.Errorf("unexpected amplitude knob %+v", k)
	}
}

func TestYAMLTakesPrecedenceOverTOML(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "scopesync.yaml"), []byte("engine:\n  max_runs: 3\n"), 0644)
	os.WriteFile(filepath.Join(tmp, "scopesync.toml"), []byte("[engine]\nmax_runs = 9\n"), 0644)

	cfg, err := LoadFrom(tmp)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Engine.MaxRuns != 3 {
		t.Errorf("expected yaml value 3, got %d", cfg.Engine.MaxRuns)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bench.toml")
	os.WriteFile(path, []byte("[instrument]\nchannel = \"CH3\"\n"), 0644)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Instrument.Channel != "CH3" {
		t.Errorf("expected channel CH3, got %q", cfg.Instrument.Channel)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "scopesync.yaml"), []byte("engine: [unclosed"), 0644)

	if _, err := LoadFrom(tmp); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Parallel()
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "scopesync.yaml"), []byte("instrument:\n  driver: usbtmc\n"), 0644)

	_, err := LoadFrom(tmp)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "instrument.driver") {
		t.Errorf("expected error about instrument.driver, got: %v", err)
	}
}

func TestMergePreservesDefaults(t *testing.T) {
	t.Parallel()
	base := DefaultConfig()
	override := &Config{
		UI: UIConfig{AccentColor: "#FF0000"},
	}

	merge(&base, override)

	if base.UI.AccentColor != "#FF0000" {
		t.Errorf("expected accent %q, got %q", "#FF0000", base.UI.AccentColor)
	}
	if base.UI.LogFile != "scopesync.log" {
		t.Errorf("expected log file preserved, got %q", base.UI.LogFile)
	}
	if base.Engine.TickIntervalMS != 2000 {
		t.Errorf("expected tick preserved as 2000, got %d", base.Engine.TickIntervalMS)
	}
	if base.Controls.Frequency.Max != 2500000 {
		t.Errorf("expected frequency max preserved, got %v", base.Controls.Frequency.Max)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCOPESYNC_DRIVER", "gpib")
	t.Setenv("SCOPESYNC_GEN_PORT", "/dev/ttyACM0")
	t.Setenv("SCOPESYNC_TICK_MS", "250")
	t.Setenv("SCOPESYNC_MAX_RUNS", "not-a-number")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.Instrument.Driver != "gpib" {
		t.Errorf("expected driver gpib, got %q", cfg.Instrument.Driver)
	}
	if cfg.Instrument.Generator.Port != "/dev/ttyACM0" {
		t.Errorf("expected generator port override, got %q", cfg.Instrument.Generator.Port)
	}
	if cfg.Engine.TickIntervalMS != 250 {
		t.Errorf("expected tick 250, got %d", cfg.Engine.TickIntervalMS)
	}
	if cfg.Engine.MaxRuns != 0 {
		t.Errorf("expected invalid max runs to be ignored, got %d", cfg.Engine.MaxRuns)
	}
}
