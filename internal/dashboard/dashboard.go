// Package dashboard rotates screens on a display.
//
// The loop runs on two independent cadences: every RefreshInterval the active
// screen is redrawn, and once SwitchInterval has elapsed since the last switch
// the next screen becomes active. The switch is checked after the sleep using
// the time taken before rendering, so the newly active screen is first drawn
// on the following tick.
package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/oledmon/internal/display"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/logger"
	"github.com/rileyhilliard/oledmon/internal/screen"
)

// Defaults for the two cadences.
const (
	DefaultSwitchInterval  = 10 * time.Second
	DefaultRefreshInterval = time.Second
)

// Dashboard owns the screen list and the render loop. It is not safe for concurrent use.
type Dashboard struct {
	disp            display.Display
	screens         []screen.Screen
	switchInterval  time.Duration
	refreshInterval time.Duration
	clock           Clock
	log             logger.Logger

	current    int
	lastSwitch time.Time
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithSwitchInterval sets how long each screen stays active.
func WithSwitchInterval(d time.Duration) Option {
	return func(db *Dashboard) { db.switchInterval = d }
}

// WithRefreshInterval sets how often the active screen is redrawn.
func WithRefreshInterval(d time.Duration) Option {
	return func(db *Dashboard) { db.refreshInterval = d }
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(db *Dashboard) { db.clock = c }
}

// WithLogger sets the logger for render failures.
func WithLogger(l logger.Logger) Option {
	return func(db *Dashboard) { db.log = l }
}

// WithStart selects the initially active screen.
func WithStart(index int) Option {
	return func(db *Dashboard) { db.current = index }
}

// New creates a dashboard over screens, which must be non-empty.
func New(d display.Display, screens []screen.Screen, opts ...Option) (*Dashboard, error) {
	db := &Dashboard{
		disp:            d,
		screens:         screens,
		switchInterval:  DefaultSwitchInterval,
		refreshInterval: DefaultRefreshInterval,
		clock:           RealClock(),
		log:             logger.Noop(),
	}
	for _, opt := range opts {
		opt(db)
	}

	if len(db.screens) == 0 {
		return nil, errors.New(errors.ErrConfig, "Nothing to display", "Provide at least one host or screen.")
	}
	if db.current < 0 || db.current >= len(db.screens) {
		return nil, errors.New(errors.ErrConfig, "Start screen out of range", "")
	}
	if db.switchInterval <= 0 || db.refreshInterval <= 0 {
		return nil, errors.New(errors.ErrConfig,
			"Switch and refresh intervals must be positive",
			"Check --switch-interval and --refresh-interval.")
	}
	return db, nil
}

// Current returns the index of the active screen.
func (db *Dashboard) Current() int { return db.current }

// Len returns the number of screens in rotation.
func (db *Dashboard) Len() int { return len(db.screens) }

// Run drives the loop until ctx is cancelled, then clears the display.
func (db *Dashboard) Run(ctx context.Context) error {
	db.lastSwitch = db.clock.Now()
	db.log.Debug("dashboard running %d screen(s), switch %s, refresh %s",
		len(db.screens), db.switchInterval, db.refreshInterval)

	for ctx.Err() == nil {
		if err := db.tick(ctx); err != nil {
			break
		}
	}

	if err := db.disp.Clear(); err != nil {
		db.log.Warn("failed to clear display: %v", err)
	}
	return nil
}

// RunOnce draws the active screen a single time. The display is not cleared.
func (db *Dashboard) RunOnce() error {
	s := db.screens[db.current]
	s.Update()
	if err := s.Show(); err != nil {
		return errors.WrapWithCode(err, errors.ErrDisplay, "Failed to show "+s.Name(), "")
	}
	return nil
}

// tick renders the active screen, sleeps one refresh interval, then switches
// if the switch interval has elapsed as of the start of the tick.
func (db *Dashboard) tick(ctx context.Context) error {
	now := db.clock.Now()

	s := db.screens[db.current]
	s.Update()
	if err := s.Show(); err != nil {
		db.log.Warn("failed to show %s: %v", s.Name(), err)
	}

	if err := db.clock.Sleep(ctx, db.refreshInterval); err != nil {
		return err
	}

	if now.Sub(db.lastSwitch) >= db.switchInterval {
		db.current = (db.current + 1) % len(db.screens)
		db.lastSwitch = now
		db.log.Debug("switched to %s", db.screens[db.current].Name())
	}
	return nil
}
