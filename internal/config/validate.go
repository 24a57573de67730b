package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validate checks the config for internal consistency. All checks run and
// every failure is reported.
func validate(cfg *Config) error {
	var errs []string

	switch cfg.Instrument.Driver {
	case "sim":
	case "gpib":
		if cfg.Instrument.Generator.Port == "" {
			errs = append(errs, "instrument.generator.port is required for the gpib driver")
		}
		if cfg.Instrument.Scope.Port == "" {
			errs = append(errs, "instrument.scope.port is required for the gpib driver")
		}
		if p := cfg.Instrument.Generator.Port; p != "" && p == cfg.Instrument.Scope.Port {
			errs = append(errs, fmt.Sprintf("instrument.scope.port %q is also the generator port; each instrument needs its own adapter", p))
		}
	default:
		errs = append(errs, fmt.Sprintf("instrument.driver %q must be \"sim\" or \"gpib\"", cfg.Instrument.Driver))
	}
	for name, ep := range map[string]EndpointConfig{"generator": cfg.Instrument.Generator, "scope": cfg.Instrument.Scope} {
		if ep.Address < 0 || ep.Address > 30 {
			errs = append(errs, fmt.Sprintf("instrument.%s.address %d must be between 0 and 30", name, ep.Address))
		}
	}

	if cfg.Engine.TickIntervalMS <= 0 {
		errs = append(errs, "engine.tick_interval_ms must be positive")
	}
	if cfg.Engine.SettleDelayMS < 0 {
		errs = append(errs, "engine.settle_delay_ms must not be negative")
	}
	if cfg.Engine.MaxRuns < 0 {
		errs = append(errs, "engine.max_runs must not be negative")
	}

	if cfg.Display.VoltageRange <= 0 {
		errs = append(errs, "display.voltage_range must be positive")
	}
	if cfg.Display.Samples < 2 {
		errs = append(errs, "display.samples must be at least 2")
	}
	if cfg.Display.WindowUS <= 0 {
		errs = append(errs, "display.window_us must be positive")
	}

	for name, k := range map[string]KnobConfig{
		"frequency": cfg.Controls.Frequency,
		"amplitude": cfg.Controls.Amplitude,
		"offset":    cfg.Controls.Offset,
	} {
		if k.Max <= k.Min {
			errs = append(errs, fmt.Sprintf("controls.%s.max must be greater than min", name))
		}
		if k.Step <= 0 {
			errs = append(errs, fmt.Sprintf("controls.%s.step must be positive", name))
		}
	}

	if _, err := instrument.ParseWaveform(cfg.Sim.Waveform); err != nil {
		errs = append(errs, fmt.Sprintf("sim.waveform: %v", err))
	}
	if cfg.Sim.Frequency <= 0 {
		errs = append(errs, "sim.frequency must be positive")
	}
	if cfg.Sim.Noise < 0 {
		errs = append(errs, "sim.noise must not be negative")
	}

	if !hexColor.MatchString(cfg.UI.AccentColor) {
		errs = append(errs, fmt.Sprintf("ui.accent_color %q must be a #rrggbb color", cfg.UI.AccentColor))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return &ValidationError{Errors: errs}
	}
	return nil
}
