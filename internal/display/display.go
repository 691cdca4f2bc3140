// Package display renders monochrome frames to an output device.
//
// A Frame is a 1-bit bitmap the size of the panel. Screens draw into frames
// and hand them to a Display, which is either an SSD1306 OLED on an I2C bus or
// a terminal preview used when no panel is attached.
package display

import (
	"image"
	"io"
	"os"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/logger"
)

// Display is a write-only frame sink. Calls are never concurrent.
type Display interface {
	// Bounds is the panel size.
	Bounds() image.Rectangle
	// Show pushes a full frame to the device.
	Show(f *Frame) error
	// Clear blanks the device.
	Clear() error
	// Close releases the device without clearing it.
	Close() error
}

// OpenOptions carries the process-level settings a sink needs.
type OpenOptions struct {
	// Out receives terminal preview output. Defaults to os.Stdout.
	Out     io.Writer
	NoColor bool
	Log     logger.Logger
}

// Open creates the sink selected by cfg.Driver.
func Open(cfg config.DisplayConfig, opts OpenOptions) (Display, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}

	switch cfg.Driver {
	case config.DriverSSD1306:
		return OpenSSD1306(cfg, opts.Log)
	case config.DriverTerminal:
		return NewTerminal(opts.Out, cfg.Width, cfg.Height, opts.NoColor), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			"Unknown display driver: "+cfg.Driver,
			"Use 'ssd1306' or 'terminal'.")
	}
}
