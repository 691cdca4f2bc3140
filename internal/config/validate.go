package config

import (
	"fmt"

	"github.com/rileyhilliard/oledmon/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but oledmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade oledmon or lower the version in "+ConfigFileName+".")
	}

	if err := validateDisplay(cfg.Display); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'display' section in your "+ConfigFileName+".")
	}

	if err := validateProbe(cfg.Probe); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'probe' section in your "+ConfigFileName+".")
	}

	if err := validateMonitor(cfg.Monitor); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'monitor' section in your "+ConfigFileName+".")
	}

	if err := ValidateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Use positive intervals, e.g. --switch-interval 10 --refresh-interval 1.")
	}

	return nil
}

func validateDisplay(d DisplayConfig) error {
	switch d.Driver {
	case DriverSSD1306, DriverTerminal:
	default:
		return fmt.Errorf("unknown display driver '%s' (expected %s or %s)", d.Driver, DriverSSD1306, DriverTerminal)
	}

	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", d.Width, d.Height)
	}
	if d.Height%8 != 0 {
		return fmt.Errorf("display height must be a multiple of 8, got %d", d.Height)
	}
	if d.Driver == DriverSSD1306 && d.Bus == "" {
		return fmt.Errorf("display.bus is required for the %s driver", DriverSSD1306)
	}
	return nil
}

func validateProbe(p ProbeConfig) error {
	switch p.Method {
	case ProbeICMP, ProbeTCP:
	default:
		return fmt.Errorf("unknown probe method '%s' (expected %s or %s)", p.Method, ProbeICMP, ProbeTCP)
	}

	if p.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive, got %s", p.Timeout)
	}
	if p.Method == ProbeTCP && (p.Port <= 0 || p.Port > 65535) {
		return fmt.Errorf("probe.port must be between 1 and 65535, got %d", p.Port)
	}
	return nil
}

func validateMonitor(m MonitorConfig) error {
	if m.RoundInterval <= 0 {
		return fmt.Errorf("monitor.round_interval must be positive, got %s", m.RoundInterval)
	}
	if m.StopTimeout <= 0 {
		return fmt.Errorf("monitor.stop_timeout must be positive, got %s", m.StopTimeout)
	}
	if m.Warmup < 0 {
		return fmt.Errorf("monitor.warmup cannot be negative, got %s", m.Warmup)
	}
	return nil
}

// ValidateDashboard checks the two rotation intervals. They are independent:
// any positive switch interval pairs with any positive refresh interval.
func ValidateDashboard(d DashboardConfig) error {
	if d.SwitchInterval <= 0 {
		return fmt.Errorf("switch interval must be positive, got %s", d.SwitchInterval)
	}
	if d.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", d.RefreshInterval)
	}
	return nil
}
