//go:build windows
// +build windows

package utils

import (
	"golang.org/x/sys/windows"
)

// FreeDiskSpace returns the bytes available to the current user on the
// volume holding path.
func FreeDiskSpace(path string) (uint64, error) {
	dir, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	var available, total, free uint64
	if err := windows.GetDiskFreeSpaceEx(dir, &available, &total, &free); err != nil {
		return 0, err
	}
	return available, nil
}
