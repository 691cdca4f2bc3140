package display

import (
	"fmt"
	"image"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/logger"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	periphhost "periph.io/x/host/v3"
)

// SSD1306 drives a monochrome OLED over I2C.
type SSD1306 struct {
	bus  i2c.BusCloser
	dev  *ssd1306.Dev
	rect image.Rectangle
	log  logger.Logger
}

// OpenSSD1306 initializes the host drivers, opens the I2C bus and attaches the panel.
func OpenSSD1306(cfg config.DisplayConfig, log logger.Logger) (*SSD1306, error) {
	if _, err := periphhost.Init(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDisplay,
			"Failed to initialize host drivers",
			"Run on a board with I2C enabled, or use --display terminal.")
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDisplay,
			fmt.Sprintf("Cannot open I2C bus %q", cfg.Bus),
			"Check that I2C is enabled and the user can access /dev/i2c-*.")
	}

	opts := ssd1306.DefaultOpts
	opts.W = cfg.Width
	opts.H = cfg.Height
	opts.Rotated = cfg.Rotated

	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		_ = bus.Close()
		return nil, errors.WrapWithCode(err, errors.ErrDisplay,
			"Cannot attach SSD1306 panel",
			"Check the wiring and that the panel answers on the bus (i2cdetect).")
	}

	log.Debug("ssd1306 %dx%d attached on bus %s", cfg.Width, cfg.Height, cfg.Bus)
	return &SSD1306{
		bus:  bus,
		dev:  dev,
		rect: image.Rect(0, 0, cfg.Width, cfg.Height),
		log:  log,
	}, nil
}

// Bounds implements Display.
func (d *SSD1306) Bounds() image.Rectangle { return d.rect }

// Show implements Display.
func (d *SSD1306) Show(f *Frame) error {
	if err := d.dev.Draw(d.dev.Bounds(), f.Image(), image.Point{}); err != nil {
		return errors.WrapWithCode(err, errors.ErrDisplay, "Failed to write frame", "")
	}
	return nil
}

// Clear implements Display.
func (d *SSD1306) Clear() error {
	return d.Show(NewFrame(d.rect.Dx(), d.rect.Dy()))
}

// Close implements Display. The panel keeps its last frame.
func (d *SSD1306) Close() error {
	return d.bus.Close()
}
