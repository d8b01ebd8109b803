//go:build !windows
// +build !windows

package utils

import (
	"syscall"
)

// FreeDiskSpace returns the bytes available to the current user on the
// filesystem holding path.
func FreeDiskSpace(path string) (uint64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
