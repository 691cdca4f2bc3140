package liveness

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/logger"
)

// Defaults for the polling loop.
const (
	DefaultRoundInterval = 3 * time.Second
	DefaultStopTimeout   = 5 * time.Second
)

// Prober runs a single fail-closed liveness check.
type Prober interface {
	Probe(ctx context.Context, address string) bool
}

// Monitor polls every target from one background goroutine and keeps the Store current.
//
// Targets are probed sequentially in configured order, so a round takes at most
// len(targets) * probe timeout plus RoundInterval. Readers may see state that is
// up to one round old.
type Monitor struct {
	targets       []config.Target
	prober        Prober
	store         *Store
	roundInterval time.Duration
	stopTimeout   time.Duration
	now           func() time.Time
	log           logger.Logger

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithRoundInterval sets the sleep between rounds.
func WithRoundInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.roundInterval = d
		}
	}
}

// WithStopTimeout bounds how long Stop waits for the loop to exit.
func WithStopTimeout(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.stopTimeout = d
		}
	}
}

// WithLogger sets the logger used for up/down transitions.
func WithLogger(l logger.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the timestamp source for LastCheckedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMonitor creates a monitor for targets. The store is populated immediately
// with every target alive.
func NewMonitor(targets []config.Target, prober Prober, opts ...Option) *Monitor {
	m := &Monitor{
		targets:       append([]config.Target(nil), targets...),
		prober:        prober,
		store:         NewStore(targets),
		roundInterval: DefaultRoundInterval,
		stopTimeout:   DefaultStopTimeout,
		now:           time.Now,
		log:           logger.Noop(),
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the polling loop in a goroutine. It is not idempotent: each
// call starts another loop, so callers must call it once.
func (m *Monitor) Start() {
	m.wg.Add(1)
	go m.run()
}

// Stop asks the loop to exit and waits up to the stop timeout for it to do so.
// An in-flight probe is allowed to finish. Returns false if the wait timed out.
func (m *Monitor) Stop() bool {
	m.stopOnce.Do(func() { close(m.stopCh) })

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(m.stopTimeout):
		m.log.Warn("monitor did not stop within %s", m.stopTimeout)
		return false
	}
}

// Status returns the last known liveness of address, or false if it is not monitored.
func (m *Monitor) Status(address string) bool {
	return m.store.Alive(address)
}

// Store exposes the underlying store for read access.
func (m *Monitor) Store() *Store {
	return m.store
}

// Targets returns the monitored targets in probe order.
func (m *Monitor) Targets() []config.Target {
	out := make([]config.Target, len(m.targets))
	copy(out, m.targets)
	return out
}

// TargetState pairs a target with its current state.
type TargetState struct {
	config.Target
	State
}

// Snapshot returns every target's state in probe order. Each target is read
// under the lock, but different targets may come from different rounds.
func (m *Monitor) Snapshot() []TargetState {
	out := make([]TargetState, 0, len(m.targets))
	for _, t := range m.targets {
		st, _ := m.store.Get(t.Address)
		out = append(out, TargetState{Target: t, State: st})
	}
	return out
}

func (m *Monitor) run() {
	defer m.wg.Done()

	for {
		if !m.round() {
			return
		}

		select {
		case <-m.stopCh:
			return
		case <-time.After(m.roundInterval):
		}
	}
}

// round probes every target once. Returns false if a stop was requested
// before the round completed.
func (m *Monitor) round() bool {
	for _, t := range m.targets {
		if m.stopping() {
			return false
		}

		ok := m.prober.Probe(context.Background(), t.Address)

		switch m.store.Record(t.Address, ok, m.now()) {
		case WentDown:
			m.log.Info("%s (%s) is down", t.Label, t.Address)
		case CameUp:
			m.log.Info("%s (%s) is back up", t.Label, t.Address)
		}
	}
	return true
}

func (m *Monitor) stopping() bool {
	select {
	case <-m.stopCh:
		return true
	default:
		return false
	}
}
