package display

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	f := NewFrame(128, 64)
	assert.Equal(t, 128, f.Width())
	assert.Equal(t, 64, f.Height())
	assert.Equal(t, image.Rect(0, 0, 128, 64), f.Bounds())
	assert.Zero(t, f.CountOn(f.Bounds()))
}

func TestFrame_SetOutOfBounds(t *testing.T) {
	f := NewFrame(8, 8)
	f.Set(-1, 0, true)
	f.Set(8, 0, true)
	f.Set(0, 8, true)
	assert.Zero(t, f.CountOn(f.Bounds()))
	assert.False(t, f.On(100, 100))
}

func TestFrame_FillRectInclusive(t *testing.T) {
	f := NewFrame(16, 16)
	f.FillRect(2, 3, 5, 4, true)

	assert.Equal(t, 8, f.CountOn(f.Bounds()))
	assert.True(t, f.On(2, 3))
	assert.True(t, f.On(5, 4))
	assert.False(t, f.On(6, 4))
	assert.False(t, f.On(2, 5))

	f.FillRect(2, 3, 5, 3, false)
	assert.Equal(t, 4, f.CountOn(f.Bounds()))
}

func TestFrame_HLine(t *testing.T) {
	f := NewFrame(128, 64)
	f.HLine(0, 127, 11)
	assert.Equal(t, 128, f.CountOn(f.Bounds()))
	assert.Equal(t, 128, f.CountOn(image.Rect(0, 11, 128, 12)))
}

func TestFrame_Clear(t *testing.T) {
	f := NewFrame(16, 16)
	f.FillRect(0, 0, 15, 15, true)
	require.Equal(t, 256, f.CountOn(f.Bounds()))
	f.Clear()
	assert.Zero(t, f.CountOn(f.Bounds()))
}

func TestFrame_Ellipse(t *testing.T) {
	box := image.Rect(1, 2, 7, 8)

	filled := NewFrame(16, 16)
	filled.Ellipse(1, 2, 6, 7, true)

	hollow := NewFrame(16, 16)
	hollow.Ellipse(1, 2, 6, 7, false)

	assert.Greater(t, filled.CountOn(box), hollow.CountOn(box))
	assert.Positive(t, hollow.CountOn(box))

	// Centre pixels: lit when filled, dark when hollow.
	assert.True(t, filled.On(3, 4))
	assert.False(t, hollow.On(3, 4))

	// Corners of the bounding box are outside the ellipse.
	assert.False(t, filled.On(1, 2))
	assert.False(t, filled.On(6, 7))

	// Nothing leaks outside the box.
	assert.Equal(t, filled.CountOn(filled.Bounds()), filled.CountOn(box))
}

func TestFrame_HollowEllipseClearsInterior(t *testing.T) {
	f := NewFrame(16, 16)
	f.FillRect(0, 0, 15, 15, true)
	f.Ellipse(1, 2, 6, 7, false)
	assert.False(t, f.On(3, 4))
	assert.True(t, f.On(0, 0))
}

func TestFrame_Text(t *testing.T) {
	fonts, err := LoadFonts("")
	require.NoError(t, err)

	f := NewFrame(128, 64)
	f.Text(0, 0, fonts.Small, "10.0.0.1")
	lit := f.CountOn(f.Bounds())
	assert.Positive(t, lit)

	// Glyphs start at the top edge rather than above it.
	assert.Positive(t, f.CountOn(image.Rect(0, 0, 128, 12)))
	assert.Equal(t, lit, f.CountOn(image.Rect(0, 0, 128, 16)))
}

func TestFrame_CloneAndEqual(t *testing.T) {
	f := NewFrame(8, 8)
	f.Set(1, 1, true)

	c := f.Clone()
	assert.True(t, f.Equal(c))

	c.Set(2, 2, true)
	assert.False(t, f.Equal(c))
	assert.False(t, f.On(2, 2))

	assert.False(t, f.Equal(nil))
	assert.False(t, f.Equal(NewFrame(8, 16)))
}
