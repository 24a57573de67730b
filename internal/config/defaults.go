package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Instrument: InstrumentConfig{
			Driver:    "sim",
			Generator: EndpointConfig{Port: "/dev/ttyUSB0", Address: 10},
			Scope:     EndpointConfig{Port: "/dev/ttyUSB1", Address: 1},
			Channel:   "CH1",
		},
		Engine: EngineConfig{
			TickIntervalMS: 2000,
			SettleDelayMS:  100,
		},
		Display: DisplayConfig{
			VoltageRange: 10,
			Samples:      500,
			WindowUS:     10,
			ShowAxis:     boolPtr(true),
		},
		Controls: ControlsConfig{
			Frequency: KnobConfig{Min: 100000, Max: 2500000, Step: 100000},
			Amplitude: KnobConfig{Min: 0, Max: 10, Step: 1},
			Offset:    KnobConfig{Min: 0, Max: 10, Step: 1},
		},
		Sim: SimConfig{
			Waveform:     "SIN",
			Frequency:    1000000,
			Amplitude:    5,
			VoltsPerUnit: 1,
		},
		UI: UIConfig{
			AccentColor: "#447EFF",
			LogFile:     "scopesync.log",
			ExportDir:   ".",
		},
	}
}
