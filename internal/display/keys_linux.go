//go:build linux

package display

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// linux/input-event-codes.h
const (
	evKey      = 0x01
	keyPressed = 1
)

var inputGlob = "/dev/input/event*"

// input_event is a timeval followed by u16 type, u16 code and s32 value.
var (
	timevalSize = binary.Size(unix.Timeval{})
	eventSize   = timevalSize + 2 + 2 + 4
)

// watchKeys calls onKey once when any key goes down on an evdev device.
// It reports false when no input device could be found.
func watchKeys(ctx context.Context, onKey func()) bool {
	paths, err := filepath.Glob(inputGlob)
	if err != nil || len(paths) == 0 {
		return false
	}
	var once sync.Once
	fire := func() { once.Do(onKey) }
	for _, p := range paths {
		go readKeys(ctx, p, fire)
	}
	return true
}

func readKeys(ctx context.Context, path string, fire func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*eventSize)
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if anyKeyDown(buf[:n]) {
			fire()
			return
		}
	}
}

// anyKeyDown scans a run of input_event records for a key press.
func anyKeyDown(buf []byte) bool {
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off+timevalSize : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[0:2])
		value := int32(binary.LittleEndian.Uint32(rec[4:8]))
		if typ == evKey && value == keyPressed {
			return true
		}
	}
	return false
}
