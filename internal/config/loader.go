package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using dir as the first place to look for a file.
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path := discoverConfigPath(dir)
	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// LoadFile loads an explicit config file instead of searching for one.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	override, err := loadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	merge(&cfg, override)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

// discoverConfigPath returns the first existing file of the discovery chain,
// or "" when none exists (defaults-only mode).
func discoverConfigPath(dir string) string {
	candidates := []string{
		filepath.Join(dir, "scopesync.yaml"),
		filepath.Join(dir, "scopesync.toml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "scopesync", "config.yaml"),
			filepath.Join(home, ".config", "scopesync", "config.toml"),
		)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadFromFile reads a YAML or TOML file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}
	return &cfg, nil
}

// merge overlays override onto base. Scalar fields override when non-zero;
// pointer-to-bool fields override when non-nil.
func merge(base *Config, override *Config) {
	// Instrument
	if override.Instrument.Driver != "" {
		base.Instrument.Driver = override.Instrument.Driver
	}
	mergeEndpoint(&base.Instrument.Generator, override.Instrument.Generator)
	mergeEndpoint(&base.Instrument.Scope, override.Instrument.Scope)
	if override.Instrument.Channel != "" {
		base.Instrument.Channel = override.Instrument.Channel
	}

	// Engine
	if override.Engine.TickIntervalMS != 0 {
		base.Engine.TickIntervalMS = override.Engine.TickIntervalMS
	}
	if override.Engine.SettleDelayMS != 0 {
		base.Engine.SettleDelayMS = override.Engine.SettleDelayMS
	}
	if override.Engine.MaxRuns != 0 {
		base.Engine.MaxRuns = override.Engine.MaxRuns
	}

	// Display
	if override.Display.VoltageRange != 0 {
		base.Display.VoltageRange = override.Display.VoltageRange
	}
	if override.Display.Samples != 0 {
		base.Display.Samples = override.Display.Samples
	}
	if override.Display.WindowUS != 0 {
		base.Display.WindowUS = override.Display.WindowUS
	}
	if override.Display.ShowAxis != nil {
		base.Display.ShowAxis = override.Display.ShowAxis
	}

	// Controls
	mergeKnob(&base.Controls.Frequency, override.Controls.Frequency)
	mergeKnob(&base.Controls.Amplitude, override.Controls.Amplitude)
	mergeKnob(&base.Controls.Offset, override.Controls.Offset)

	// Sim
	if override.Sim.Waveform != "" {
		base.Sim.Waveform = override.Sim.Waveform
	}
	if override.Sim.Frequency != 0 {
		base.Sim.Frequency = override.Sim.Frequency
	}
	if override.Sim.Amplitude != 0 {
		base.Sim.Amplitude = override.Sim.Amplitude
	}
	if override.Sim.Offset != 0 {
		base.Sim.Offset = override.Sim.Offset
	}
	if override.Sim.Noise != 0 {
		base.Sim.Noise = override.Sim.Noise
	}
	if override.Sim.VoltsPerUnit != 0 {
		base.Sim.VoltsPerUnit = override.Sim.VoltsPerUnit
	}

	// UI
	if override.UI.AccentColor != "" {
		base.UI.AccentColor = override.UI.AccentColor
	}
	if override.UI.LogFile != "" {
		base.UI.LogFile = override.UI.LogFile
	}
	if override.UI.ExportDir != "" {
		base.UI.ExportDir = override.UI.ExportDir
	}
}

func mergeEndpoint(base *EndpointConfig, override EndpointConfig) {
	if override.Port != "" {
		base.Port = override.Port
	}
	if override.Address != 0 {
		base.Address = override.Address
	}
}

// mergeKnob replaces the whole range when any bound is set, so a file that
// narrows min to zero is not half-merged with the default max.
func mergeKnob(base *KnobConfig, override KnobConfig) {
	if override == (KnobConfig{}) {
		return
	}
	if override.Step == 0 {
		override.Step = base.Step
	}
	*base = override
}

// applyEnvOverrides applies SCOPESYNC_* environment variables on top of the
// config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SCOPESYNC_DRIVER"); v != "" {
		cfg.Instrument.Driver = v
	}
	if v := os.Getenv("SCOPESYNC_GEN_PORT"); v != "" {
		cfg.Instrument.Generator.Port = v
	}
	if v := os.Getenv("SCOPESYNC_SCOPE_PORT"); v != "" {
		cfg.Instrument.Scope.Port = v
	}
	envInt("SCOPESYNC_TICK_MS", &cfg.Engine.TickIntervalMS)
	envInt("SCOPESYNC_SETTLE_MS", &cfg.Engine.SettleDelayMS)
	envInt("SCOPESYNC_MAX_RUNS", &cfg.Engine.MaxRuns)
}

func envInt(name string, dst *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s=%q is not a valid integer, ignoring\n", name, v)
		return
	}
	*dst = n
}

func (c EngineConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

func (c EngineConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}

// Window is the placeholder time window in seconds.
func (c DisplayConfig) Window() float64 {
	return c.WindowUS * 1e-6
}
