//go:build !unix

package main

import (
	"fmt"
	"os"
)

// redirectStdIO swaps the os.Stdout and os.Stderr handles. Runtime panic
// output still goes to the original stderr on these platforms.
func redirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	os.Stdout, os.Stderr = f, f
	return nil
}
