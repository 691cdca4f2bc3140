package display

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/oledmon/internal/ui"
)

// Half-block glyphs: each character cell shows two vertically stacked pixels.
const (
	cellEmpty  = ' '
	cellUpper  = '▀'
	cellLower  = '▄'
	cellFilled = '█'
)

// Terminal previews frames as Unicode half blocks inside a bordered box.
// On a TTY each frame redraws in place; otherwise frames are appended.
type Terminal struct {
	w           io.Writer
	out         *termenv.Output
	rect        image.Rectangle
	style       lipgloss.Style
	interactive bool
}

// NewTerminal creates a preview sink of the given pixel size writing to w.
func NewTerminal(w io.Writer, width, height int, noColor bool) *Terminal {
	var outOpts []termenv.OutputOption
	if noColor {
		outOpts = append(outOpts, termenv.WithProfile(termenv.Ascii))
	}
	renderer := lipgloss.NewRenderer(w, outOpts...)

	return &Terminal{
		w:    w,
		out:  termenv.NewOutput(w, outOpts...),
		rect: image.Rect(0, 0, width, height),
		style: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorMuted).
			Foreground(ui.ColorInfo),
		interactive: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Bounds implements Display.
func (t *Terminal) Bounds() image.Rectangle { return t.rect }

// Render converts a frame to half-block rows wrapped in the border style.
func (t *Terminal) Render(f *Frame) string {
	return t.style.Render(HalfBlocks(f))
}

// HalfBlocks converts a frame to text, two pixel rows per line.
func HalfBlocks(f *Frame) string {
	var sb strings.Builder
	w, h := f.Width(), f.Height()
	sb.Grow((w*3 + 1) * (h + 1) / 2)

	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top, bottom := f.On(x, y), f.On(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune(cellFilled)
			case top:
				sb.WriteRune(cellUpper)
			case bottom:
				sb.WriteRune(cellLower)
			default:
				sb.WriteRune(cellEmpty)
			}
		}
	}
	return sb.String()
}

// Show implements Display.
func (t *Terminal) Show(f *Frame) error {
	if t.interactive {
		t.out.MoveCursor(1, 1)
	}
	_, err := fmt.Fprintln(t.w, t.Render(f))
	return err
}

// Clear implements Display.
func (t *Terminal) Clear() error {
	if t.interactive {
		t.out.ClearScreen()
	}
	return nil
}

// Close implements Display.
func (t *Terminal) Close() error { return nil }
