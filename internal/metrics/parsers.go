package metrics

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// parseCPUTimes reads the aggregate cpu line of /proc/stat.
// Idle time counts both idle and iowait.
func parseCPUTimes(procStat string) (cpuTimes, error) {
	scanner := bufio.NewScanner(strings.NewReader(procStat))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return cpuTimes{}, fmt.Errorf("invalid /proc/stat cpu line: %s", line)
		}

		// Fields: cpu user nice system idle iowait irq softirq steal guest guest_nice
		var t cpuTimes
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return cpuTimes{}, fmt.Errorf("failed to parse cpu field %d: %w", i, err)
			}
			// guest and guest_nice are already included in user and nice.
			if i <= 8 {
				t.Total += val
			}
			if i == 4 || i == 5 {
				t.Idle += val
			}
		}
		return t, nil
	}

	if err := scanner.Err(); err != nil {
		return cpuTimes{}, fmt.Errorf("error scanning /proc/stat: %w", err)
	}
	return cpuTimes{}, fmt.Errorf("no aggregate cpu line in /proc/stat")
}

// cpuPercent is busy time as a share of elapsed time between two samples.
func cpuPercent(prev, cur cpuTimes) float64 {
	total := cur.Total - prev.Total
	if total <= 0 {
		return 0
	}
	busy := total - (cur.Idle - prev.Idle)
	if busy < 0 {
		busy = 0
	}
	return float64(busy) / float64(total) * 100
}

// parseMemPercent computes used memory as (total - available) / total.
// Kernels without MemAvailable fall back to free + buffers + cached.
func parseMemPercent(procMeminfo string) (float64, error) {
	scanner := bufio.NewScanner(strings.NewReader(procMeminfo))

	var total, free, available, buffers, cached int64
	haveAvailable := false

	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}
		val, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}

		switch strings.TrimSuffix(parts[0], ":") {
		case "MemTotal":
			total = val
		case "MemFree":
			free = val
		case "MemAvailable":
			available = val
			haveAvailable = true
		case "Buffers":
			buffers = val
		case "Cached":
			cached = val
		}
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning /proc/meminfo: %w", err)
	}
	if total <= 0 {
		return 0, fmt.Errorf("MemTotal missing from /proc/meminfo")
	}

	if !haveAvailable {
		available = free + buffers + cached
	}
	return float64(total-available) / float64(total) * 100, nil
}

// parseNetDev sums received and transmitted bytes over every interface in /proc/net/dev.
func parseNetDev(procNetDev string) (sent, recv uint64, err error) {
	scanner := bufio.NewScanner(strings.NewReader(procNetDev))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		// Skip header lines (first two lines)
		if lineNum <= 2 {
			continue
		}

		name, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 16 {
			continue
		}

		in, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse bytes_in for %s: %w", strings.TrimSpace(name), err)
		}
		out, err := strconv.ParseUint(fields[8], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to parse bytes_out for %s: %w", strings.TrimSpace(name), err)
		}
		recv += in
		sent += out
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, fmt.Errorf("error scanning /proc/net/dev: %w", err)
	}
	return sent, recv, nil
}

// tcpEstablished is the hex state code for ESTABLISHED in /proc/net/tcp.
const tcpEstablished = "01"

// countEstablished counts ESTABLISHED sockets in a /proc/net/tcp or tcp6 table.
func countEstablished(procNetTCP string) int {
	scanner := bufio.NewScanner(strings.NewReader(procNetTCP))

	n := 0
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		// sl local_address rem_address st ...
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		if fields[3] == tcpEstablished {
			n++
		}
	}
	return n
}

// parseThermal converts a thermal zone reading in millidegrees to degrees Celsius.
func parseThermal(raw string) (float64, error) {
	milli, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid thermal reading %q: %w", strings.TrimSpace(raw), err)
	}
	return float64(milli) / 1000, nil
}
