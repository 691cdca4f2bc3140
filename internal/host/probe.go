package host

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/rileyhilliard/oledmon/internal/config"
	"github.com/rileyhilliard/oledmon/internal/errors"
	"github.com/rileyhilliard/oledmon/internal/logger"
)

// DefaultProbeTimeout is the hard upper bound on a single liveness check.
const DefaultProbeTimeout = 2 * time.Second

// Pinger issues one reachability probe against an address and returns the round-trip time.
type Pinger interface {
	Ping(ctx context.Context, address string) (time.Duration, error)
}

// ProbeError represents a failed probe with categorized failure reason.
type ProbeError struct {
	Address string
	Reason  ProbeFailReason
	Cause   error
}

// ProbeFailReason categorizes why a probe failed.
type ProbeFailReason int

const (
	ProbeFailUnknown ProbeFailReason = iota
	ProbeFailTimeout
	ProbeFailRefused
	ProbeFailUnreachable
	ProbeFailPermission
	ProbeFailResolve
)

// String returns a human-readable description of the failure reason.
func (r ProbeFailReason) String() string {
	switch r {
	case ProbeFailTimeout:
		return "no reply before timeout"
	case ProbeFailRefused:
		return "connection refused"
	case ProbeFailUnreachable:
		return "host unreachable"
	case ProbeFailPermission:
		return "socket permission denied"
	case ProbeFailResolve:
		return "cannot resolve address"
	default:
		return "unknown error"
	}
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("probe %s failed: %s (%v)", e.Address, e.Reason, e.Cause)
	}
	return fmt.Sprintf("probe %s failed: %s", e.Address, e.Reason)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// ICMPPinger sends a single ICMP echo request per probe.
type ICMPPinger struct {
	// Privileged uses raw sockets (root or CAP_NET_RAW). Otherwise unprivileged
	// datagram sockets are used, which on Linux needs net.ipv4.ping_group_range.
	Privileged bool

	// Timeout is passed to the transport; Checker enforces its own deadline on top.
	Timeout time.Duration
}

// Ping sends one echo request and waits for the reply.
func (p *ICMPPinger) Ping(ctx context.Context, address string) (time.Duration, error) {
	pinger, err := probing.NewPinger(address)
	if err != nil {
		return 0, categorizeProbeError(address, err)
	}

	pinger.Count = 1
	pinger.Timeout = p.Timeout
	if pinger.Timeout <= 0 {
		pinger.Timeout = DefaultProbeTimeout
	}
	pinger.SetPrivileged(p.Privileged)

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, categorizeProbeError(address, err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, &ProbeError{Address: address, Reason: ProbeFailTimeout}
	}
	return stats.AvgRtt, nil
}

// TCPPinger treats a completed TCP handshake as proof of life.
// Useful where ICMP is filtered or raw sockets are not permitted.
type TCPPinger struct {
	Port int
}

// Ping dials address:Port. Addresses that already carry a port are dialed as-is.
func (p *TCPPinger) Ping(ctx context.Context, address string) (time.Duration, error) {
	target := address
	if _, _, err := net.SplitHostPort(address); err != nil {
		target = net.JoinHostPort(address, strconv.Itoa(p.Port))
	}

	start := time.Now()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return 0, categorizeProbeError(address, err)
	}
	defer conn.Close()

	return time.Since(start), nil
}

// NewPinger builds the transport selected by the probe config.
func NewPinger(cfg config.ProbeConfig) (Pinger, error) {
	switch cfg.Method {
	case config.ProbeICMP:
		return &ICMPPinger{Privileged: cfg.Privileged, Timeout: cfg.Timeout}, nil
	case config.ProbeTCP:
		return &TCPPinger{Port: cfg.Port}, nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown probe method '%s'", cfg.Method),
			"Use --probe icmp or --probe tcp.")
	}
}

// Checker turns a Pinger into a fail-closed liveness check: every failure,
// including a transport that overruns the deadline or panics, is reported as false.
type Checker struct {
	pinger  Pinger
	timeout time.Duration
	log     logger.Logger
}

// NewChecker wraps p with a hard per-probe timeout.
func NewChecker(p Pinger, timeout time.Duration, log logger.Logger) *Checker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Checker{pinger: p, timeout: timeout, log: log}
}

// Probe reports whether address answered within the timeout. It never blocks
// longer than the timeout even if the transport ignores ctx; a late reply is
// discarded.
func (c *Checker) Probe(ctx context.Context, address string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("probe panicked: %v", r)
			}
		}()
		_, err := c.pinger.Ping(ctx, address)
		result <- err
	}()

	select {
	case err := <-result:
		if err != nil {
			c.log.Debug("probe %s: %v", address, err)
			return false
		}
		return true
	case <-ctx.Done():
		c.log.Debug("probe %s: %s", address, ProbeFailTimeout)
		return false
	}
}

// categorizeProbeError converts a generic error into a ProbeError with
// a categorized failure reason.
func categorizeProbeError(address string, err error) *ProbeError {
	if err == nil {
		return nil
	}

	probeErr := &ProbeError{
		Address: address,
		Reason:  ProbeFailUnknown,
		Cause:   err,
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		probeErr.Reason = ProbeFailTimeout
		return probeErr
	}

	if strings.Contains(errStr, "connection refused") {
		probeErr.Reason = ProbeFailRefused
		return probeErr
	}

	if strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "host is down") {
		probeErr.Reason = ProbeFailUnreachable
		return probeErr
	}

	if strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "operation not permitted") {
		probeErr.Reason = ProbeFailPermission
		return probeErr
	}

	if strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "server misbehaving") {
		probeErr.Reason = ProbeFailResolve
		return probeErr
	}

	return probeErr
}
