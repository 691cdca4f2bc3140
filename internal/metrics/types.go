// Package metrics reads local system counters for the stats screens.
//
// Everything comes from /proc and /sys through an afero filesystem so tests
// can supply fixture files. Missing sources degrade to zero values or
// placeholders; collection never fails outright.
package metrics

// SystemStats is one sample for the system screen.
type SystemStats struct {
	CPUPercent  float64
	MemPercent  float64
	DiskPercent float64
	// Temperature is the SoC temperature in degrees Celsius, nil when no sensor is readable.
	Temperature *float64
}

// NetworkStats is one sample for the network screen.
type NetworkStats struct {
	// IP is the first non-loopback IPv4 address, or NoNetwork.
	IP          string
	BytesSent   uint64
	BytesRecv   uint64
	Established int
}

// NoNetwork is shown in place of an address when no interface has one.
const NoNetwork = "No network"

// Provider supplies metric samples. Each call performs one collection.
type Provider interface {
	System() SystemStats
	Network() NetworkStats
}

// cpuTimes holds aggregate jiffy counters from the "cpu" line of /proc/stat.
type cpuTimes struct {
	Total int64
	Idle  int64
}

// DiskUsage is the capacity of one filesystem in bytes.
type DiskUsage struct {
	Total uint64
	Free  uint64
	Avail uint64
}

// Percent matches df: used / (used + available to unprivileged users).
func (d DiskUsage) Percent() float64 {
	used := d.Total - d.Free
	denom := used + d.Avail
	if denom == 0 {
		return 0
	}
	return float64(used) / float64(denom) * 100
}
