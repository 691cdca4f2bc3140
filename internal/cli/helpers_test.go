package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/dashboard"
	"github.com/rileyhilliard/oledmon/internal/display"
	displaytesting "github.com/rileyhilliard/oledmon/internal/display/testing"
	"github.com/rileyhilliard/oledmon/internal/host"
	hosttesting "github.com/rileyhilliard/oledmon/internal/host/testing"
	"github.com/rileyhilliard/oledmon/internal/logger"
	"github.com/rileyhilliard/oledmon/internal/metrics"
)

// staticProvider returns fixed metric samples.
type staticProvider struct{}

func (staticProvider) System() metrics.SystemStats {
	return metrics.SystemStats{CPUPercent: 10, MemPercent: 20, DiskPercent: 30}
}

func (staticProvider) Network() metrics.NetworkStats {
	return metrics.NetworkStats{IP: "192.168.1.20", BytesSent: 2048, BytesRecv: 4096, Established: 2}
}

// testHarness wires an app to in-memory collaborators and records what was created.
type testHarness struct {
	app         *app
	display     *displaytesting.FakeDisplay
	pinger      *hosttesting.FakePinger
	displayOpen int
	pingerMade  int
	stdout      bytes.Buffer
	stderr      bytes.Buffer
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	// Keep config discovery away from the developer's real files.
	t.Setenv("HOME", t.TempDir())
	t.Setenv(logger.DebugEnv, "")
	chdir(t, t.TempDir())

	h := &testHarness{
		display: displaytesting.NewFakeDisplay(128, 64),
		pinger:  hosttesting.NewFakePinger(),
	}
	h.app = &app{
		openDisplay: func(config.DisplayConfig, display.OpenOptions) (display.Display, error) {
			h.displayOpen++
			return h.display, nil
		},
		newPinger: func(config.ProbeConfig) (host.Pinger, error) {
			h.pingerMade++
			return h.pinger, nil
		},
		newProvider: func(logger.Logger) metrics.Provider { return staticProvider{} },
		clock:       dashboard.RealClock(),
		now:         func() time.Time { return time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local) },
		fs:          afero.NewMemMapFs(),
		uid:         1000,
		gid:         1000,
	}
	return h
}

func (h *testHarness) command() *cobra.Command {
	root := newRootCmd(h.app)
	root.SetOut(&h.stdout)
	root.SetErr(&h.stderr)
	return root
}

// run executes the CLI with args and returns the error from the command.
func (h *testHarness) run(ctx context.Context, args ...string) error {
	root := h.command()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
