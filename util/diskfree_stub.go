//go:build !unix

package util

import "errors"

// DiskFree is unsupported off unix; callers treat the error as "unknown"
// and skip the free-space report.
func DiskFree(path string) (uint64, error) {
	return 0, errors.New("free space reporting is not supported on this platform")
}
