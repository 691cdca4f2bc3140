package screen

import (
	"fmt"
	"image"
	"testing"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		n         int
		wantPages int
		wantLast  int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{3, 1, 3},
		{4, 1, 4},
		{5, 2, 1},
		{8, 2, 4},
		{9, 3, 1},
		{17, 5, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d items", tt.n), func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			pages := Paginate(items, 4)
			require.Len(t, pages, tt.wantPages)
			if tt.wantPages == 0 {
				return
			}
			assert.Len(t, pages[len(pages)-1], tt.wantLast)

			// Order preserved, nothing dropped or duplicated.
			var flat []int
			for _, p := range pages {
				assert.LessOrEqual(t, len(p), 4)
				flat = append(flat, p...)
			}
			assert.Equal(t, items, flat)
		})
	}
}

func TestPaginate_PagesDoNotAlias(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	pages := Paginate(items, 4)
	pages[0] = append(pages[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
}

func TestPaginate_InvalidSize(t *testing.T) {
	assert.Nil(t, Paginate([]int{1, 2}, 0))
}

func TestNewPingScreens_Titles(t *testing.T) {
	tests := []struct {
		n          int
		wantTitles []string
	}{
		{1, []string{"Ping Monitor"}},
		{4, []string{"Ping Monitor"}},
		{5, []string{"Ping Monitor [1/2]", "Ping Monitor [2/2]"}},
		{9, []string{"Ping Monitor [1/3]", "Ping Monitor [2/3]", "Ping Monitor [3/3]"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d targets", tt.n), func(t *testing.T) {
			screens := NewPingScreens(newTestDisplay(), testFonts(t), statusMap{}, targets(tt.n))
			require.Len(t, screens, len(tt.wantTitles))
			for i, s := range screens {
				assert.Equal(t, tt.wantTitles[i], s.(*PingScreen).Title())
			}
		})
	}
}

func TestPingScreen_Indicators(t *testing.T) {
	d := newTestDisplay()
	ts := []config.Target{
		{Address: "10.0.0.1", Label: "router"},
		{Address: "10.0.0.2", Label: "ap"},
	}
	status := statusMap{"10.0.0.1": true, "10.0.0.2": false}

	s := NewPingScreen(d, testFonts(t), status, ts, 1, 1)
	s.Update()
	require.NoError(t, s.Show())

	f := d.LastFrame()
	require.NotNil(t, f)

	up := indicatorCentre(0)
	down := indicatorCentre(1)
	assert.True(t, f.On(up.X, up.Y), "router should render filled")
	assert.False(t, f.On(down.X, down.Y), "ap should render hollow")

	// The hollow circle still has an outline.
	outline := image.Rect(1, pingFirstRow+pingRowHeight+2, 7, pingFirstRow+pingRowHeight+8)
	assert.Positive(t, f.CountOn(outline))

	// Header underline spans the panel.
	assert.Equal(t, 128, f.CountOn(image.Rect(0, pingHeaderBottom, 128, pingHeaderBottom+1)))

	// Row text is drawn to the right of the indicator.
	assert.Positive(t, f.CountOn(image.Rect(pingTextOffset, pingFirstRow, 128, pingFirstRow+pingRowHeight)))
}

func TestPingScreen_RedrawReflectsStatusChange(t *testing.T) {
	d := newTestDisplay()
	ts := []config.Target{{Address: "10.0.0.1", Label: "router"}}
	status := statusMap{"10.0.0.1": true}

	s := NewPingScreen(d, testFonts(t), status, ts, 1, 1)
	s.Update()
	require.NoError(t, s.Show())

	status["10.0.0.1"] = false
	s.Update()
	require.NoError(t, s.Show())

	frames := d.Frames()
	require.Len(t, frames, 2)
	c := indicatorCentre(0)
	assert.True(t, frames[0].On(c.X, c.Y))
	assert.False(t, frames[1].On(c.X, c.Y))
}

func TestPingScreen_UnknownTargetRendersDown(t *testing.T) {
	d := newTestDisplay()
	s := NewPingScreen(d, testFonts(t), statusMap{}, []config.Target{{Address: "10.9.9.9", Label: "ghost"}}, 1, 1)
	s.Update()

	c := indicatorCentre(0)
	assert.False(t, s.Frame().On(c.X, c.Y))
}

func TestPingScreen_Name(t *testing.T) {
	s := NewPingScreen(newTestDisplay(), testFonts(t), statusMap{}, targets(2), 2, 3)
	assert.Equal(t, "ping 2/3", s.Name())
	assert.Len(t, s.Targets(), 2)
}
