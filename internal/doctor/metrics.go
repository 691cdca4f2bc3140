package doctor

import (
	"github.com/spf13/afero"

	"github.com/rileyhilliard/oledmon/internal/metrics"
	"github.com/rileyhilliard/oledmon/internal/util"
)

// ProcSourcesCheck verifies the /proc files behind the stats screens are readable.
type ProcSourcesCheck struct {
	Fs afero.Fs
}

func (c *ProcSourcesCheck) Name() string     { return "proc_sources" }
func (c *ProcSourcesCheck) Category() string { return CategoryMetrics }

func (c *ProcSourcesCheck) Run() CheckResult {
	var missing []string
	for _, path := range []string{metrics.ProcStat, metrics.ProcMeminfo, metrics.ProcNetDev, metrics.ProcNetTCP} {
		if _, err := c.Fs.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Missing: " + util.JoinOrNone(missing),
			Suggestion: "Stats screens show zeros for these values (not a Linux host?)",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "/proc metrics readable",
	}
}

// ThermalCheck reports whether a temperature sensor is available.
type ThermalCheck struct {
	Fs afero.Fs
}

func (c *ThermalCheck) Name() string     { return "thermal_sensor" }
func (c *ThermalCheck) Category() string { return CategoryMetrics }

func (c *ThermalCheck) Run() CheckResult {
	if _, err := c.Fs.Stat(metrics.ThermalZone); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No thermal sensor, TEMP shows n/a",
			Suggestion: "Expected on most single-board computers at " + metrics.ThermalZone,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Thermal sensor found",
	}
}

// NewMetricsChecks creates all metric source checks.
func NewMetricsChecks(fs afero.Fs) []Check {
	return []Check{
		&ProcSourcesCheck{Fs: fs},
		&ThermalCheck{Fs: fs},
	}
}
