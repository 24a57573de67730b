package config

type Config struct {
	Instrument InstrumentConfig `yaml:"instrument" toml:"instrument"`
	Engine     EngineConfig     `yaml:"engine" toml:"engine"`
	Display    DisplayConfig    `yaml:"display" toml:"display"`
	Controls   ControlsConfig   `yaml:"controls" toml:"controls"`
	Sim        SimConfig        `yaml:"sim" toml:"sim"`
	UI         UIConfig         `yaml:"ui" toml:"ui"`
}

type InstrumentConfig struct {
	// Driver is "sim" or "gpib".
	Driver    string         `yaml:"driver" toml:"driver"`
	Generator EndpointConfig `yaml:"generator" toml:"generator"`
	Scope     EndpointConfig `yaml:"scope" toml:"scope"`
	Channel   string         `yaml:"channel" toml:"channel"`
}

// EndpointConfig locates one instrument behind a Prologix adapter.
type EndpointConfig struct {
	Port    string `yaml:"port" toml:"port"`
	Address int    `yaml:"address" toml:"address"`
}

type EngineConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms" toml:"tick_interval_ms"`
	SettleDelayMS  int `yaml:"settle_delay_ms" toml:"settle_delay_ms"`
	MaxRuns        int `yaml:"max_runs" toml:"max_runs"`
}

type DisplayConfig struct {
	VoltageRange float64 `yaml:"voltage_range" toml:"voltage_range"`
	Samples      int     `yaml:"samples" toml:"samples"`
	WindowUS     float64 `yaml:"window_us" toml:"window_us"`
	ShowAxis     *bool   `yaml:"show_axis" toml:"show_axis"`
}

type ControlsConfig struct {
	Frequency KnobConfig `yaml:"frequency" toml:"frequency"`
	Amplitude KnobConfig `yaml:"amplitude" toml:"amplitude"`
	Offset    KnobConfig `yaml:"offset" toml:"offset"`
}

type KnobConfig struct {
	Min  float64 `yaml:"min" toml:"min"`
	Max  float64 `yaml:"max" toml:"max"`
	Step float64 `yaml:"step" toml:"step"`
}

type SimConfig struct {
	Waveform  string  `yaml:"waveform" toml:"waveform"`
	Frequency float64 `yaml:"frequency" toml:"frequency"`
	Amplitude float64 `yaml:"amplitude" toml:"amplitude"`
	Offset    float64 `yaml:"offset" toml:"offset"`
	Noise     float64 `yaml:"noise" toml:"noise"`
	// VoltsPerUnit converts amplitude and offset settings to trace volts.
	VoltsPerUnit float64 `yaml:"volts_per_unit" toml:"volts_per_unit"`
}

type UIConfig struct {
	AccentColor string `yaml:"accent_color" toml:"accent_color"`
	LogFile     string `yaml:"log_file" toml:"log_file"`
	ExportDir   string `yaml:"export_dir" toml:"export_dir"`
}
