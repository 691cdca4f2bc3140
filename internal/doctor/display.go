package doctor

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/display"
)

// I2CBusCheck verifies the I2C device node for the configured bus exists and is writable.
type I2CBusCheck struct {
	Fs      afero.Fs
	Display config.DisplayConfig
}

func (c *I2CBusCheck) Name() string     { return "i2c_bus" }
func (c *I2CBusCheck) Category() string { return CategoryDisplay }

func (c *I2CBusCheck) Run() CheckResult {
	if c.Display.Driver != config.DriverSSD1306 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("Using %s display, no I2C bus needed", c.Display.Driver),
		}
	}

	dev := "/dev/i2c-" + c.Display.Bus
	info, err := c.Fs.Stat(dev)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("I2C bus %s not found (%s)", c.Display.Bus, dev),
			Suggestion: "Enable I2C (raspi-config → Interface Options → I2C), or use --display terminal",
		}
	}

	if info.Mode().Perm()&0o006 == 0 && info.Mode().Perm()&0o060 == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s may not be accessible to your user", dev),
			Suggestion: "Add your user to the i2c group: sudo usermod -aG i2c $USER",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("I2C bus %s present", dev),
	}
}

// FontCheck verifies the configured font loads at every size.
type FontCheck struct {
	Path string
}

func (c *FontCheck) Name() string     { return "font" }
func (c *FontCheck) Category() string { return CategoryDisplay }

func (c *FontCheck) Run() CheckResult {
	if _, err := display.LoadFonts(c.Path); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Font failed to load: %v", err),
			Suggestion: "Point display.font at a TrueType file, or leave it empty for the built-in font",
		}
	}

	name := c.Path
	if name == "" {
		name = "built-in Go Mono"
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Font: " + name,
	}
}

// NewDisplayChecks creates all display-related checks.
func NewDisplayChecks(fs afero.Fs, cfg config.DisplayConfig) []Check {
	return []Check{
		&I2CBusCheck{Fs: fs, Display: cfg},
		&FontCheck{Path: cfg.Font},
	}
}
