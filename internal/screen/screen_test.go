package screen

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/display"
	displaytesting "github.com/rileyhilliard/oledmon/internal/display/testing"
	"github.com/rileyhilliard/oledmon/internal/metrics"
	"github.com/stretchr/testify/require"
)

var (
	fontsOnce sync.Once
	fonts     *display.Fonts
	fontsErr  error
)

func testFonts(t *testing.T) *display.Fonts {
	t.Helper()
	fontsOnce.Do(func() { fonts, fontsErr = display.LoadFonts("") })
	require.NoError(t, fontsErr)
	return fonts
}

func newTestDisplay() *displaytesting.FakeDisplay {
	return displaytesting.NewFakeDisplay(128, 64)
}

// statusMap is a fixed liveness source keyed by address.
type statusMap map[string]bool

func (m statusMap) Status(address string) bool { return m[address] }

// fakeProvider returns fixed samples and counts calls.
type fakeProvider struct {
	system       metrics.SystemStats
	network      metrics.NetworkStats
	systemCalls  int
	networkCalls int
}

func (p *fakeProvider) System() metrics.SystemStats {
	p.systemCalls++
	return p.system
}

func (p *fakeProvider) Network() metrics.NetworkStats {
	p.networkCalls++
	return p.network
}

func targets(n int) []config.Target {
	out := make([]config.Target, n)
	for i := range out {
		out[i] = config.Target{Address: "10.0.0." + string(rune('1'+i)), Label: "host"}
	}
	return out
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local)
}

// indicatorCentre is a pixel inside the status circle of the given row.
func indicatorCentre(row int) image.Point {
	return image.Pt(3, pingFirstRow+row*pingRowHeight+4)
}
