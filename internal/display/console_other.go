//go:build !linux

package display

import "errors"

var errNoConsole = errors.New("console mode switching requires linux")

func setGraphicsMode() error { return errNoConsole }

func restoreTextMode() error { return nil }
