//go:build !linux

package metrics

import "errors"

// Statfs is only implemented on Linux; disk usage reads as zero elsewhere.
func Statfs(path string) (DiskUsage, error) {
	return DiskUsage{}, errors.New("statfs not supported on this platform")
}
