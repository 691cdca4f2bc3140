package cli

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/oledmon/internal/doctor"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/metrics"
)

// healthyHost populates the harness filesystem like a working Raspberry Pi.
func healthyHost(t *testing.T, h *testHarness) {
	t.Helper()
	files := map[string]string{
		"/dev/i2c-1":          "",
		doctor.PingGroupRange: "0\t2147483647\n",
		metrics.ProcStat:      "cpu  1 2 3 4 5 6 7 8\n",
		metrics.ProcMeminfo:   "MemTotal: 100 kB\n",
		metrics.ProcNetDev:    "",
		metrics.ProcNetTCP:    "",
		metrics.ThermalZone:   "45000\n",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(h.app.fs, path, []byte(content), 0o660))
	}

	// Config discovery reads the real working directory set up by newHarness.
	require.NoError(t, os.WriteFile("oledmon.yaml", []byte("hosts:\n  - 10.0.0.1,router\n"), 0o644))
}

func TestDoctor_AllClear(t *testing.T) {
	h := newHarness(t)
	healthyHost(t, h)

	err := h.run(context.Background(), "doctor", "--no-color")
	require.NoError(t, err)

	out := h.stdout.String()
	assert.Contains(t, out, "oledmon Diagnostic Report")
	for _, cat := range doctor.CategoryOrder {
		assert.Contains(t, out, cat)
	}
	assert.Contains(t, out, "Everything looks good")
	assert.Zero(t, h.displayOpen, "doctor never opens the display")
}

func TestDoctor_FailureExitsOne(t *testing.T) {
	h := newHarness(t)

	// Empty filesystem: no I2C bus and no ping_group_range.
	err := h.run(context.Background(), "doctor", "--no-color")
	require.Error(t, err)
	assert.Equal(t, 1, errors.ExitCode(err))

	out := h.stdout.String()
	assert.Contains(t, out, "I2C bus 1 not found")
	assert.Contains(t, out, "issues found")
}

func TestDoctor_TerminalDisplaySkipsBus(t *testing.T) {
	h := newHarness(t)
	healthyHost(t, h)
	require.NoError(t, h.app.fs.Remove("/dev/i2c-1"))

	err := h.run(context.Background(), "doctor", "--display", "terminal", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), "Using terminal display")
}

func TestDoctor_JSON(t *testing.T) {
	h := newHarness(t)
	healthyHost(t, h)
	require.NoError(t, h.app.fs.Remove(metrics.ThermalZone))

	require.NoError(t, h.run(context.Background(), "doctor", "--json"))

	var out DoctorOutput
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))

	names := make([]string, len(out.Categories))
	for i, c := range out.Categories {
		names[i] = c.Name
	}
	assert.Equal(t, doctor.CategoryOrder, names)
	assert.Equal(t, 1, out.Summary.Warn, "missing thermal sensor is a warning")
	assert.Zero(t, out.Summary.Fail)
	assert.False(t, out.Summary.AllClear)

	assert.Contains(t, h.stdout.String(), `"status": "warn"`)
}
