package liveness

import (
	"sync"
	"time"

	"github.com/rileyhilliard/oledmon/internal/config"
)

// FailureThreshold is the number of consecutive failed probes before a target
// is reported down. Recovery needs only one success.
const FailureThreshold = 2

// State is the current liveness judgement for one target.
type State struct {
	Alive               bool
	ConsecutiveFailures int
	LastCheckedAt       time.Time
}

// Transition describes how a Record call changed a target's reported liveness.
type Transition int

const (
	Unchanged Transition = iota
	WentDown
	CameUp
)

// Store maps target address to State. A single mutex covers reads and writes,
// so Alive and ConsecutiveFailures are always observed together.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewStore creates a store with every target optimistically alive.
func NewStore(targets []config.Target) *Store {
	s := &Store{states: make(map[string]*State, len(targets))}
	for _, t := range targets {
		s.states[t.Address] = &State{Alive: true}
	}
	return s
}

// Record applies one probe result. Success resets the failure streak and marks
// the target alive immediately; failure extends the streak and marks it down
// once the streak reaches FailureThreshold. Unknown addresses are ignored.
func (s *Store) Record(address string, ok bool, at time.Time) Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, exists := s.states[address]
	if !exists {
		return Unchanged
	}

	wasAlive := st.Alive
	if ok {
		st.ConsecutiveFailures = 0
		st.Alive = true
	} else {
		st.ConsecutiveFailures++
		if st.ConsecutiveFailures >= FailureThreshold {
			st.Alive = false
		}
	}
	st.LastCheckedAt = at

	switch {
	case wasAlive && !st.Alive:
		return WentDown
	case !wasAlive && st.Alive:
		return CameUp
	default:
		return Unchanged
	}
}

// Alive returns the last reported liveness, or false for unknown addresses.
func (s *Store) Alive(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[address]
	if !ok {
		return false
	}
	return st.Alive
}

// Get returns a copy of the state for address.
func (s *Store) Get(address string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[address]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Len returns the number of tracked targets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
