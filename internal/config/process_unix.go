//go:build !windows

package config

import (
	"errors"

	"golang.org/x/sys/unix"
)

// processRunning reports whether pid names a live process. EPERM means the
// process exists but belongs to another user.
func processRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
