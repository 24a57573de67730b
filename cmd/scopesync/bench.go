package main

import (
	"context"
	"fmt"

	"github.com/justinpbarnett/scopesync/internal/config"
	"github.com/justinpbarnett/scopesync/internal/engine"
	"github.com/justinpbarnett/scopesync/internal/figure"
	"github.com/justinpbarnett/scopesync/internal/instrument"
	"github.com/justinpbarnett/scopesync/internal/instrument/gpib"
	"github.com/justinpbarnett/scopesync/internal/instrument/sim"
)

// openBench connects the configured driver. The returned func releases it.
func openBench(ctx context.Context, cfg *config.Config) (instrument.Facade, func() error, error) {
	ic := cfg.Instrument
	switch ic.Driver {
	case "sim":
		w, err := instrument.ParseWaveform(cfg.Sim.Waveform)
		if err != nil {
			return nil, nil, fmt.Errorf("sim: %w", err)
		}
		bench := sim.New(sim.Config{
			Initial: instrument.Params{
				Waveform:  w,
				Frequency: cfg.Sim.Frequency,
				Amplitude: cfg.Sim.Amplitude,
				Offset:    cfg.Sim.Offset,
			},
			Samples:      cfg.Display.Samples,
			VoltsPerUnit: cfg.Sim.VoltsPerUnit,
			Noise:        cfg.Sim.Noise,
		})
		return bench, func() error { return nil }, nil

	case "gpib":
		bench, err := gpib.Open(ctx, gpib.Config{
			Generator: gpib.Endpoint{Port: ic.Generator.Port, Address: ic.Generator.Address},
			Scope:     gpib.Endpoint{Port: ic.Scope.Port, Address: ic.Scope.Address},
			Channel:   ic.Channel,
		})
		if err != nil {
			return nil, nil, err
		}
		return bench, bench.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown driver %q", ic.Driver)
}

func sessionOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Settle:       cfg.Engine.SettleDelay(),
		VoltageRange: cfg.Display.VoltageRange,
		TimeBase:     figure.TimeBase(cfg.Display.Samples, cfg.Display.Window()),
		MaxRuns:      cfg.Engine.MaxRuns,
	}
}
