package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Display drivers.
const (
	DriverSSD1306  = "ssd1306"
	DriverTerminal = "terminal"
)

// Probe methods.
const (
	ProbeICMP = "icmp"
	ProbeTCP  = "tcp"
)

// Config represents the complete oledmon.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Hosts     []string        `yaml:"hosts" mapstructure:"hosts"`
	Display   DisplayConfig   `yaml:"display" mapstructure:"display"`
	Probe     ProbeConfig     `yaml:"probe" mapstructure:"probe"`
	Monitor   MonitorConfig   `yaml:"monitor" mapstructure:"monitor"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DisplayConfig selects and sizes the frame sink.
type DisplayConfig struct {
	// Driver is "ssd1306" (I2C OLED) or "terminal" (ANSI preview on stdout).
	Driver string `yaml:"driver" mapstructure:"driver"`

	// Bus is the I2C bus name or number passed to the host driver ("1" on a Raspberry Pi).
	Bus string `yaml:"bus" mapstructure:"bus"`

	// Width and Height are the panel size in pixels. Height must be a multiple of 8.
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	// Rotated flips the panel 180 degrees.
	Rotated bool `yaml:"rotated" mapstructure:"rotated"`

	// Font is an optional path to a TrueType font. Empty uses Go Mono.
	Font string `yaml:"font" mapstructure:"font"`
}

// ProbeConfig controls how liveness checks are issued.
type ProbeConfig struct {
	// Method is "icmp" (echo request) or "tcp" (connect to Port).
	Method string `yaml:"method" mapstructure:"method"`

	// Timeout bounds a single probe, regardless of transport retries.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Privileged uses raw ICMP sockets instead of unprivileged datagram sockets.
	Privileged bool `yaml:"privileged" mapstructure:"privileged"`

	// Port is the TCP port dialed when Method is "tcp".
	Port int `yaml:"port" mapstructure:"port"`
}

// MonitorConfig controls the background polling loop.
type MonitorConfig struct {
	// RoundInterval is the sleep between two full passes over all targets.
	RoundInterval time.Duration `yaml:"round_interval" mapstructure:"round_interval"`

	// StopTimeout bounds how long shutdown waits for the loop to exit.
	StopTimeout time.Duration `yaml:"stop_timeout" mapstructure:"stop_timeout"`

	// Warmup is how long to wait after starting the monitor before the first frame.
	Warmup time.Duration `yaml:"warmup" mapstructure:"warmup"`
}

// DashboardConfig controls screen rotation.
type DashboardConfig struct {
	SwitchInterval  time.Duration `yaml:"switch_interval" mapstructure:"switch_interval"`
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Hosts:   []string{},
		Display: DisplayConfig{
			Driver: DriverSSD1306,
			Bus:    "1",
			Width:  128,
			Height: 64,
		},
		Probe: ProbeConfig{
			Method:  ProbeICMP,
			Timeout: 2 * time.Second,
			Port:    22,
		},
		Monitor: MonitorConfig{
			RoundInterval: 3 * time.Second,
			StopTimeout:   5 * time.Second,
			Warmup:        2 * time.Second,
		},
		Dashboard: DashboardConfig{
			SwitchInterval:  10 * time.Second,
			RefreshInterval: time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
