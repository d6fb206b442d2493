//go:build unix

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// redirectStdIO points fds 1 and 2 at path so runtime panics from any
// goroutine land in the file too.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_APPEND|unix.O_WRONLY|unix.O_CLOEXEC, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if err := unix.Dup2(fd, int(f.Fd())); err != nil {
			return fmt.Errorf("dup2 onto %s: %w", f.Name(), err)
		}
	}
	return nil
}
