package doctor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/oledmon/internal/config"
)

// PingGroupRange is the sysctl that allows unprivileged ICMP sockets for a gid range.
const PingGroupRange = "/proc/sys/net/ipv4/ping_group_range"

// ICMPPermissionCheck verifies the process can send ICMP echo requests with the configured mode.
type ICMPPermissionCheck struct {
	Fs    afero.Fs
	Probe config.ProbeConfig
	UID   int
	GID   int
}

func (c *ICMPPermissionCheck) Name() string     { return "icmp_permission" }
func (c *ICMPPermissionCheck) Category() string { return CategoryProbe }

func (c *ICMPPermissionCheck) Run() CheckResult {
	switch {
	case c.Probe.Method == config.ProbeTCP:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("TCP probes on port %d need no special permission", c.Probe.Port),
		}
	case c.Probe.Privileged:
		if c.UID == 0 {
			return CheckResult{Name: c.Name(), Status: StatusPass, Message: "Raw ICMP sockets available (root)"}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Privileged ICMP needs root or CAP_NET_RAW",
			Suggestion: "sudo setcap cap_net_raw+ep $(which oledmon), or set probe.privileged: false",
		}
	}

	raw, err := afero.ReadFile(c.Fs, PingGroupRange)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Cannot read " + PingGroupRange,
			Suggestion: "If probes always fail, try --probe tcp or --privileged as root",
		}
	}

	lo, hi, err := parseGroupRange(string(raw))
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Unexpected ping_group_range: %v", err),
		}
	}

	if c.GID < lo || c.GID > hi {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Group %d may not open ICMP sockets (allowed %d-%d)", c.GID, lo, hi),
			Suggestion: fmt.Sprintf("sudo sysctl -w net.ipv4.ping_group_range=\"0 %d\", or use --probe tcp", maxGroup),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Unprivileged ICMP allowed for your group",
	}
}

// maxGroup is the largest gid accepted by ping_group_range.
const maxGroup = 2147483647

func parseGroupRange(raw string) (lo, hi int, err error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected two numbers, got %q", strings.TrimSpace(raw))
	}
	if lo, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, err
	}
	if hi, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// NewProbeChecks creates all probe-related checks.
func NewProbeChecks(fs afero.Fs, cfg config.ProbeConfig, uid, gid int) []Check {
	return []Check{
		&ICMPPermissionCheck{Fs: fs, Probe: cfg, UID: uid, GID: gid},
	}
}
