package utils

import "fmt"

// MinDataDirSpace is the free space below which writes to the wallet
// database may start failing.
const MinDataDirSpace = 20 << 20

// CheckDiskSpace returns an ErrUnavailable error when the filesystem holding
// dir has less than MinDataDirSpace bytes free.
func CheckDiskSpace(dir string) error {
	free, err := FreeDiskSpace(dir)
	if err != nil {
		return err
	}
	if free < MinDataDirSpace {
		return NewError(ErrUnavailable, fmt.Errorf("%s has %d MB free, need %d MB",
			dir, free>>20, MinDataDirSpace>>20))
	}
	return nil
}
