package screen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/oledmon/internal/display"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/metrics"
	"github.com/rileyhilliard/oledmon/internal/util"
)

// Stats page layout in pixels.
const (
	statsHeaderBottom = 15
	statsFirstRow     = 16
	statsRowHeight    = 12
)

// Names of the stats screens, in rotation order.
const (
	NameSystem  = "system"
	NameNetwork = "network"
	NameClock   = "clock"
)

// StatsScreenNames lists the stats screens by index.
var StatsScreenNames = []string{NameSystem, NameNetwork, NameClock}

// SystemScreen shows CPU, memory, temperature and disk usage.
type SystemScreen struct {
	canvas
	provider metrics.Provider
}

// NewSystemScreen creates the system screen.
func NewSystemScreen(d display.Display, fonts *display.Fonts, p metrics.Provider) *SystemScreen {
	return &SystemScreen{canvas: newCanvas(d, fonts), provider: p}
}

// Name implements Screen.
func (s *SystemScreen) Name() string { return NameSystem }

// Update implements Screen.
func (s *SystemScreen) Update() {
	s.clearContent(statsFirstRow)
	st := s.provider.System()

	temp := "TEMP: n/a"
	if st.Temperature != nil {
		temp = fmt.Sprintf("TEMP: %4.1f°C", *st.Temperature)
	}

	s.header("System Stats", s.fonts.Normal, statsHeaderBottom)
	s.rows(0,
		fmt.Sprintf("CPU: %4.1f%%", st.CPUPercent),
		fmt.Sprintf("MEM: %4.1f%%", st.MemPercent),
		temp,
		fmt.Sprintf("DISK: %4.1f%%", st.DiskPercent),
	)
}

// NetworkScreen shows the local address, traffic counters and open connections.
type NetworkScreen struct {
	canvas
	provider metrics.Provider
}

// NewNetworkScreen creates the network screen.
func NewNetworkScreen(d display.Display, fonts *display.Fonts, p metrics.Provider) *NetworkScreen {
	return &NetworkScreen{canvas: newCanvas(d, fonts), provider: p}
}

// Name implements Screen.
func (s *NetworkScreen) Name() string { return NameNetwork }

// Update implements Screen.
func (s *NetworkScreen) Update() {
	s.clearContent(statsFirstRow)
	st := s.provider.Network()

	s.header("↔ Network", s.fonts.Normal, statsHeaderBottom)
	s.rows(2,
		"IP: "+st.IP,
		fmt.Sprintf("▲ SENT: %d KB", st.BytesSent/1024),
		fmt.Sprintf("▼ RECV: %d KB", st.BytesRecv/1024),
		fmt.Sprintf("↔ ESTAB: %d", st.Established),
	)
}

// ClockScreen shows the local date and time in the large font.
type ClockScreen struct {
	canvas
	now func() time.Time
}

// NewClockScreen creates the clock screen. A nil now uses time.Now.
func NewClockScreen(d display.Display, fonts *display.Fonts, now func() time.Time) *ClockScreen {
	if now == nil {
		now = time.Now
	}
	return &ClockScreen{canvas: newCanvas(d, fonts), now: now}
}

// Name implements Screen.
func (s *ClockScreen) Name() string { return NameClock }

// Update implements Screen.
func (s *ClockScreen) Update() {
	s.clearContent(statsFirstRow)
	now := s.now()

	s.header("► Clock", s.fonts.Normal, statsHeaderBottom)
	s.frame.Text(8, 16, s.fonts.Big, now.Format("2006-01-02"))
	s.frame.Text(16, 38, s.fonts.Big, now.Format("15:04:05"))
}

func (c *canvas) rows(x int, lines ...string) {
	for i, line := range lines {
		c.frame.Text(x, statsFirstRow+i*statsRowHeight, c.fonts.Small, line)
	}
}

// NewStatsScreens returns the system, network and clock screens in StatsScreenNames order.
func NewStatsScreens(d display.Display, fonts *display.Fonts, p metrics.Provider, now func() time.Time) []Screen {
	return []Screen{
		NewSystemScreen(d, fonts, p),
		NewNetworkScreen(d, fonts, p),
		NewClockScreen(d, fonts, now),
	}
}

// ParseSelector resolves a screen name (case-insensitive) or zero-based index.
func ParseSelector(sel string, names []string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(sel))
	for i, n := range names {
		if key == n {
			return i, nil
		}
	}

	idx, err := strconv.Atoi(key)
	if err != nil {
		suggestion := "Valid screens: " + strings.Join(names, ", ") + ", or an index 0-" + strconv.Itoa(len(names)-1) + "."
		if similar := util.SuggestSimilar(key, names, 3); len(similar) > 0 {
			suggestion = "Did you mean '" + similar[0] + "'? " + suggestion
		}
		return 0, errors.New(errors.ErrConfig, fmt.Sprintf("Unknown screen '%s'", sel), suggestion)
	}
	if idx < 0 || idx >= len(names) {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Screen index %d out of range", idx),
			fmt.Sprintf("Use an index between 0 and %d.", len(names)-1))
	}
	return idx, nil
}
