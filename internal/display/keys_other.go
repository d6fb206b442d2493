//go:build !linux

package display

import "context"

func watchKeys(ctx context.Context, onKey func()) bool { return false }
