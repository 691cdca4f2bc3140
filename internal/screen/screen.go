// Package screen draws dashboard pages into frames.
//
// A Screen owns one frame. Update redraws it from its data source and Show
// pushes it to the display. Screens keep no state between calls apart from
// their fixed pagination.
package screen

import (
	"github.com/rileyhilliard/oledmon/internal/display"
	"golang.org/x/image/font"
)

// Screen is one page in the dashboard rotation.
type Screen interface {
	// Name identifies the screen in logs.
	Name() string
	// Update redraws the private frame from current data.
	Update()
	// Show sends the frame to the display.
	Show() error
}

// canvas is the frame and sink shared by every screen implementation.
type canvas struct {
	disp  display.Display
	fonts *display.Fonts
	frame *display.Frame
}

func newCanvas(d display.Display, fonts *display.Fonts) canvas {
	b := d.Bounds()
	return canvas{
		disp:  d,
		fonts: fonts,
		frame: display.NewFrame(b.Dx(), b.Dy()),
	}
}

// Frame returns the screen's frame for inspection.
func (c *canvas) Frame() *display.Frame { return c.frame }

// Show implements Screen.
func (c *canvas) Show() error {
	return c.disp.Show(c.frame)
}

// header blanks rows 0..bottom and writes title at the top-left.
func (c *canvas) header(title string, face font.Face, bottom int) {
	c.frame.FillRect(0, 0, c.frame.Width()-1, bottom, false)
	c.frame.Text(0, 0, face, title)
}

// clearContent blanks everything from row top down.
func (c *canvas) clearContent(top int) {
	c.frame.FillRect(0, top, c.frame.Width()-1, c.frame.Height()-1, false)
}
