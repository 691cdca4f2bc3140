// Package testing provides test doubles for the host package.
package testing

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoReply is returned by FakePinger for a scripted failure.
var ErrNoReply = errors.New("request timeout")

// FakePinger replays scripted probe results per address without touching the network.
// When an address runs out of scripted results its last result repeats; addresses
// that were never scripted always fail.
type FakePinger struct {
	mu      sync.Mutex
	scripts map[string][]bool
	last    map[string]bool

	// Delay simulates a slow transport.
	Delay time.Duration
	// IgnoreContext makes the delay uninterruptible, like a driver that ignores cancellation.
	IgnoreContext bool

	// Calls records every probed address in order.
	Calls []string
}

// NewFakePinger creates a FakePinger with no scripted results.
func NewFakePinger() *FakePinger {
	return &FakePinger{
		scripts: make(map[string][]bool),
		last:    make(map[string]bool),
	}
}

// Script appends results for address, consumed one per Ping.
func (f *FakePinger) Script(address string, results ...bool) *FakePinger {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[address] = append(f.scripts[address], results...)
	return f
}

// Ping implements host.Pinger.
func (f *FakePinger) Ping(ctx context.Context, address string) (time.Duration, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, address)
	ok := f.next(address)
	delay := f.Delay
	ignore := f.IgnoreContext
	f.mu.Unlock()

	if delay > 0 {
		if ignore {
			time.Sleep(delay)
		} else {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	if !ok {
		return 0, ErrNoReply
	}
	return time.Millisecond, nil
}

func (f *FakePinger) next(address string) bool {
	queue := f.scripts[address]
	if len(queue) == 0 {
		return f.last[address]
	}
	ok := queue[0]
	f.scripts[address] = queue[1:]
	f.last[address] = ok
	return ok
}

// CallCount returns how many times address was probed.
func (f *FakePinger) CallCount(address string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == address {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of probes issued to any address.
func (f *FakePinger) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
