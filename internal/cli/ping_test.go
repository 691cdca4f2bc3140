package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/oledmon/internal/errors"
)

// Pixel centres of the status indicators for the first two rows of a ping page.
var (
	row0Indicator = [2]int{3, 18}
	row1Indicator = [2]int{3, 31}
)

func TestPing_MalformedEntryExitsBeforeStarting(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing comma", []string{"badentry"}, "Invalid host entry 'badentry'"},
		{"empty label", []string{"10.0.0.1,"}, "Invalid host entry"},
		{"empty address", []string{" ,router"}, "Invalid host entry"},
		{"bad entry after good one", []string{"10.0.0.1,router", "oops"}, "Invalid host entry 'oops'"},
		{"no hosts at all", nil, "No hosts provided"},
		{"duplicate address", []string{"10.0.0.1,router", "10.0.0.1,gw"}, "listed twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(context.Background(), append([]string{"ping", "--display", "terminal"}, tt.args...)...)

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, 1, errors.ExitCode(err))

			assert.Zero(t, h.pingerMade, "no pinger should be created")
			assert.Zero(t, h.displayOpen, "display should not be opened")
			assert.Zero(t, h.pinger.TotalCalls(), "no probes should run")
		})
	}
}

func TestPing_InvalidFlagsAreConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero switch interval", []string{"--switch-interval", "0"}},
		{"zero refresh interval", []string{"--refresh-interval", "0"}},
		{"refresh interval rounds to zero", []string{"--refresh-interval", "1e-12"}},
		{"bad probe timeout", []string{"--probe-timeout", "soon"}},
		{"unknown probe", []string{"--probe", "udp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			args := append([]string{"ping", "--display", "terminal"}, tt.args...)
			err := h.run(context.Background(), append(args, "10.0.0.1,router")...)

			require.Error(t, err)
			assert.Equal(t, 1, errors.ExitCode(err))
			assert.Zero(t, h.displayOpen)
		})
	}
}

func TestPing_RunsUntilCancelled(t *testing.T) {
	h := newHarness(t)
	h.pinger.Script("10.0.0.1", true)
	h.pinger.Script("10.0.0.2", true, false)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	err := h.run(ctx,
		"ping", "--display", "terminal", "--quiet",
		"--refresh-interval", "0.05",
		"--round-interval", "10ms",
		"--warmup", "0s",
		"10.0.0.1,router", "10.0.0.2,ap",
	)
	require.NoError(t, err)
	assert.Equal(t, 0, errors.ExitCode(err))

	events := h.display.Events()
	require.GreaterOrEqual(t, len(events), 4)
	assert.Equal(t, "clear", events[0], "display is cleared before the first frame")
	assert.Equal(t, []string{"clear", "close"}, events[len(events)-2:], "display is cleared then released on exit")
	assert.Positive(t, h.display.ShowCount())

	assert.Positive(t, h.pinger.CallCount("10.0.0.1"))
	assert.GreaterOrEqual(t, h.pinger.CallCount("10.0.0.2"), 3)

	// After two failed rounds the ap renders hollow while the router stays filled.
	last := h.display.LastFrame()
	require.NotNil(t, last)
	assert.True(t, last.On(row0Indicator[0], row0Indicator[1]), "router should be up")
	assert.False(t, last.On(row1Indicator[0], row1Indicator[1]), "ap should be down")
}

func TestPing_HostsFromConfigFile(t *testing.T) {
	h := newHarness(t)
	h.pinger.Script("10.1.1.1", true)

	dir := t.TempDir()
	path := filepath.Join(dir, "oledmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
hosts:
  - "10.1.1.1,gateway"
display:
  driver: terminal
monitor:
  warmup: 0s
  round_interval: 10ms
dashboard:
  refresh_interval: 50ms
`), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, h.run(ctx, "--config", path, "--quiet", "ping"))
	assert.Positive(t, h.pinger.CallCount("10.1.1.1"))
	assert.Equal(t, 1, h.displayOpen)
}

func TestPing_InterruptedDuringWarmup(t *testing.T) {
	h := newHarness(t)
	h.pinger.Script("10.0.0.1", true)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, h.run(ctx, "ping", "--display", "terminal", "--quiet", "--warmup", "1h", "10.0.0.1,router"))
	assert.Zero(t, h.display.ShowCount())
	assert.Equal(t, []string{"clear", "clear", "close"}, h.display.Events())
}
