//go:build !windows

package boardfinder

import "golang.org/x/sys/unix"

// canReadWrite reports whether the calling user may open path for reading
// and writing.
func canReadWrite(path string) bool {
	return unix.Access(path, unix.R_OK|unix.W_OK) == nil
}
