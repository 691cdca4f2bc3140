package screen

import (
	"fmt"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/display"
)

// TargetsPerPage is how many targets fit on one ping page.
const TargetsPerPage = 4

// Ping page layout in pixels.
const (
	pingHeaderBottom = 11
	pingFirstRow     = 14
	pingRowHeight    = 13
	pingTextOffset   = 9
)

// StatusSource reports the current liveness of an address.
type StatusSource interface {
	Status(address string) bool
}

// PingScreen shows up to TargetsPerPage targets with an up/down indicator each.
type PingScreen struct {
	canvas
	source  StatusSource
	targets []config.Target
	page    int
	pages   int
}

// NewPingScreen creates page (1-based) of pages for targets.
func NewPingScreen(d display.Display, fonts *display.Fonts, source StatusSource, targets []config.Target, page, pages int) *PingScreen {
	return &PingScreen{
		canvas:  newCanvas(d, fonts),
		source:  source,
		targets: targets,
		page:    page,
		pages:   pages,
	}
}

// NewPingScreens splits targets into pages and returns one screen per page.
func NewPingScreens(d display.Display, fonts *display.Fonts, source StatusSource, targets []config.Target) []Screen {
	pages := Paginate(targets, TargetsPerPage)
	screens := make([]Screen, 0, len(pages))
	for i, p := range pages {
		screens = append(screens, NewPingScreen(d, fonts, source, p, i+1, len(pages)))
	}
	return screens
}

// Paginate splits items into consecutive pages of at most size items.
func Paginate[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// Name implements Screen.
func (s *PingScreen) Name() string { return fmt.Sprintf("ping %d/%d", s.page, s.pages) }

// Title is the header text. The page counter appears only when there is more than one page.
func (s *PingScreen) Title() string {
	if s.pages > 1 {
		return fmt.Sprintf("Ping Monitor [%d/%d]", s.page, s.pages)
	}
	return "Ping Monitor"
}

// Targets returns the targets on this page.
func (s *PingScreen) Targets() []config.Target { return s.targets }

// Update implements Screen.
func (s *PingScreen) Update() {
	s.clearContent(pingHeaderBottom + 1)
	s.header(s.Title(), s.fonts.Small, pingHeaderBottom)
	s.frame.HLine(0, s.frame.Width()-1, pingHeaderBottom)

	for row, t := range s.targets {
		x, y := 0, pingFirstRow+row*pingRowHeight
		s.frame.Ellipse(x+1, y+2, x+6, y+7, s.source.Status(t.Address))
		s.frame.Text(x+pingTextOffset, y, s.fonts.Tiny, t.String())
	}
}
