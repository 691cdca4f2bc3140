package metrics

import (
	"net"
	"sync"

	"github.com/spf13/afero"

	"github.com/rileyhilliard/oledmon/internal/logger"
)

// Source paths, relative to the collector filesystem root.
const (
	ProcStat    = "/proc/stat"
	ProcMeminfo = "/proc/meminfo"
	ProcNetDev  = "/proc/net/dev"
	ProcNetTCP  = "/proc/net/tcp"
	ProcNetTCP6 = "/proc/net/tcp6"
	ThermalZone = "/sys/class/thermal/thermal_zone0/temp"
)

// Collector reads metrics from the local machine. It is safe for concurrent use,
// though the dashboard only calls it from the render loop.
type Collector struct {
	fs       afero.Fs
	statfs   func(path string) (DiskUsage, error)
	addrs    func() ([]net.Addr, error)
	diskPath string
	log      logger.Logger

	mu      sync.Mutex
	prevCPU cpuTimes
}

// Option configures a Collector.
type Option func(*Collector)

// WithFs reads /proc and /sys from fs instead of the OS.
func WithFs(fs afero.Fs) Option {
	return func(c *Collector) { c.fs = fs }
}

// WithStatfs replaces the disk capacity lookup.
func WithStatfs(fn func(path string) (DiskUsage, error)) Option {
	return func(c *Collector) { c.statfs = fn }
}

// WithInterfaceAddrs replaces the local address lookup.
func WithInterfaceAddrs(fn func() ([]net.Addr, error)) Option {
	return func(c *Collector) { c.addrs = fn }
}

// WithDiskPath sets the mount point reported as disk usage.
func WithDiskPath(path string) Option {
	return func(c *Collector) { c.diskPath = path }
}

// WithLogger sets the logger for unreadable sources.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// NewCollector creates a collector over the real OS by default.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		fs:       afero.NewOsFs(),
		statfs:   Statfs,
		addrs:    net.InterfaceAddrs,
		diskPath: "/",
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// System implements Provider. CPU usage is measured since the previous call;
// the first call reports the average since boot.
func (c *Collector) System() SystemStats {
	var s SystemStats

	if raw, err := afero.ReadFile(c.fs, ProcStat); err != nil {
		c.log.Debug("cpu: %v", err)
	} else if cur, err := parseCPUTimes(string(raw)); err != nil {
		c.log.Debug("cpu: %v", err)
	} else {
		c.mu.Lock()
		s.CPUPercent = cpuPercent(c.prevCPU, cur)
		c.prevCPU = cur
		c.mu.Unlock()
	}

	if raw, err := afero.ReadFile(c.fs, ProcMeminfo); err != nil {
		c.log.Debug("memory: %v", err)
	} else if pct, err := parseMemPercent(string(raw)); err != nil {
		c.log.Debug("memory: %v", err)
	} else {
		s.MemPercent = pct
	}

	if du, err := c.statfs(c.diskPath); err != nil {
		c.log.Debug("disk %s: %v", c.diskPath, err)
	} else {
		s.DiskPercent = du.Percent()
	}

	s.Temperature = c.temperature()
	return s
}

func (c *Collector) temperature() *float64 {
	raw, err := afero.ReadFile(c.fs, ThermalZone)
	if err != nil {
		return nil
	}
	t, err := parseThermal(string(raw))
	if err != nil {
		c.log.Debug("temperature: %v", err)
		return nil
	}
	return &t
}

// Network implements Provider.
func (c *Collector) Network() NetworkStats {
	s := NetworkStats{IP: c.localIP()}

	if raw, err := afero.ReadFile(c.fs, ProcNetDev); err != nil {
		c.log.Debug("net counters: %v", err)
	} else if sent, recv, err := parseNetDev(string(raw)); err != nil {
		c.log.Debug("net counters: %v", err)
	} else {
		s.BytesSent, s.BytesRecv = sent, recv
	}

	for _, path := range []string{ProcNetTCP, ProcNetTCP6} {
		raw, err := afero.ReadFile(c.fs, path)
		if err != nil {
			continue
		}
		s.Established += countEstablished(string(raw))
	}

	return s
}

func (c *Collector) localIP() string {
	addrs, err := c.addrs()
	if err != nil {
		c.log.Debug("interface addresses: %v", err)
		return NoNetwork
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
	}
	return NoNetwork
}
