// Package testing provides test doubles for the display package.
package testing

import (
	"image"
	"sync"

	"github.com/rileyhilliard/oledmon/internal/display"
)

// FakeDisplay records frames and lifecycle calls in memory.
type FakeDisplay struct {
	mu     sync.Mutex
	rect   image.Rectangle
	frames []*display.Frame
	events []string
	clears int
	closed bool

	// ShowErr is returned from every Show call when set. The frame is still recorded.
	ShowErr error
}

// NewFakeDisplay creates a fake panel of the given size.
func NewFakeDisplay(width, height int) *FakeDisplay {
	return &FakeDisplay{rect: image.Rect(0, 0, width, height)}
}

// Bounds implements display.Display.
func (d *FakeDisplay) Bounds() image.Rectangle { return d.rect }

// Show implements display.Display.
func (d *FakeDisplay) Show(f *display.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, f.Clone())
	d.events = append(d.events, "show")
	return d.ShowErr
}

// Clear implements display.Display.
func (d *FakeDisplay) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clears++
	d.events = append(d.events, "clear")
	return nil
}

// Close implements display.Display.
func (d *FakeDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.events = append(d.events, "close")
	return nil
}

// Frames returns copies of every frame shown so far.
func (d *FakeDisplay) Frames() []*display.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*display.Frame, len(d.frames))
	copy(out, d.frames)
	return out
}

// LastFrame returns the most recent frame, or nil.
func (d *FakeDisplay) LastFrame() *display.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// ShowCount returns how many frames were shown.
func (d *FakeDisplay) ShowCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// ClearCount returns how many times Clear was called.
func (d *FakeDisplay) ClearCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// Closed reports whether Close was called.
func (d *FakeDisplay) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// Events returns the ordered list of calls: "show", "clear", "close".
func (d *FakeDisplay) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.events))
	copy(out, d.events)
	return out
}
