package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Palette is the two-colour palette of every frame: index 0 off, index 1 on.
var Palette = color.Palette{color.Black, color.White}

const (
	off uint8 = 0
	on  uint8 = 1
)

// Frame is a monochrome bitmap sized to the panel. Drawing coordinates are
// inclusive on both ends, matching how rectangles are described on a datasheet.
type Frame struct {
	img *image.Paletted
}

// NewFrame allocates a blank frame.
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewPaletted(image.Rect(0, 0, width, height), Palette)}
}

// Image exposes the frame as an image for sinks and font rendering.
func (f *Frame) Image() *image.Paletted { return f.img }

// Bounds returns the frame rectangle.
func (f *Frame) Bounds() image.Rectangle { return f.img.Rect }

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.img.Rect.Dx() }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.img.Rect.Dy() }

// Set lights or clears one pixel. Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, lit bool) {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return
	}
	if lit {
		f.img.SetColorIndex(x, y, on)
	} else {
		f.img.SetColorIndex(x, y, off)
	}
}

// On reports whether the pixel is lit.
func (f *Frame) On(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(f.img.Rect) {
		return false
	}
	return f.img.ColorIndexAt(x, y) == on
}

// Clear turns every pixel off.
func (f *Frame) Clear() {
	for i := range f.img.Pix {
		f.img.Pix[i] = off
	}
}

// FillRect sets every pixel in the inclusive rectangle (x0,y0)-(x1,y1).
func (f *Frame) FillRect(x0, y0, x1, y1 int, lit bool) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			f.Set(x, y, lit)
		}
	}
}

// HLine draws a horizontal line from x0 to x1 inclusive.
func (f *Frame) HLine(x0, x1, y int) {
	f.FillRect(x0, y, x1, y, true)
}

// Ellipse draws the ellipse inscribed in the inclusive box (x0,y0)-(x1,y1).
// The outline is always lit; the interior is lit when fill is true and cleared otherwise.
func (f *Frame) Ellipse(x0, y0, x1, y1 int, fill bool) {
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := float64(x1-x0)/2 + 0.5
	ry := float64(y1-y0)/2 + 0.5

	inside := func(x, y int) bool {
		if x < x0 || x > x1 || y < y0 || y > y1 {
			return false
		}
		dx := (float64(x) - cx) / rx
		dy := (float64(y) - cy) / ry
		return dx*dx+dy*dy <= 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !inside(x, y) {
				continue
			}
			edge := !inside(x-1, y) || !inside(x+1, y) || !inside(x, y-1) || !inside(x, y+1)
			f.Set(x, y, edge || fill)
		}
	}
}

// Text draws s with its top-left corner at (x, y).
func (f *Frame) Text(x, y int, face font.Face, s string) {
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// CountOn returns the number of lit pixels inside r.
func (f *Frame) CountOn(r image.Rectangle) int {
	r = r.Intersect(f.img.Rect)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if f.img.ColorIndexAt(x, y) == on {
				n++
			}
		}
	}
	return n
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Width(), f.Height())
	copy(c.img.Pix, f.img.Pix)
	return c
}

// Equal reports whether two frames have identical size and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if o == nil || f.img.Rect != o.img.Rect {
		return false
	}
	for i := range f.img.Pix {
		if f.img.Pix[i] != o.img.Pix[i] {
			return false
		}
	}
	return true
}
