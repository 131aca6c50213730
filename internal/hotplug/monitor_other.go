//go:build !linux

package hotplug

import (
	"context"
	"fmt"
	"runtime"

	"github.com/allbin/boardfinder"
	"github.com/rs/zerolog"
)

// CheckSupported returns ErrUnsupportedPlatform: hotplug events are only
// read from the Linux udev netlink socket.
func CheckSupported() error {
	return fmt.Errorf("%w: hotplug monitoring on %s", boardfinder.ErrUnsupportedPlatform, runtime.GOOS)
}

// Watch is only available on Linux.
func Watch(context.Context, zerolog.Logger, Handler) error {
	return CheckSupported()
}
