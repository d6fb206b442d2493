//go:build linux

package display

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

var consolePaths = []string{"/dev/tty", "/dev/tty0"}

func setGraphicsMode() error { return setConsoleMode(kdGraphics) }

func restoreTextMode() error { return setConsoleMode(kdText) }

// setConsoleMode applies mode to the first console that accepts it.
func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}
