// Package display previews a rendered code on the Linux framebuffer.
package display

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/charmbracelet/log"
	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/qrwatermark/internal/render/layout"
)

const DefaultDevice = "/dev/fb0"

// Blit letterboxes img onto dst: dst is cleared to background and img is
// nearest-neighbour scaled into the largest centred square. Nearest-neighbour
// keeps module edges hard.
func Blit(dst draw.Image, img image.Image, background color.Color) image.Rectangle {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, &image.Uniform{C: background}, image.Point{}, draw.Src)
	target := layout.FitSquare(bounds)
	xdraw.NearestNeighbor.Scale(dst, target, img, img.Bounds(), xdraw.Src, nil)
	return target
}

// Framebuffer shows images on a framebuffer device.
type Framebuffer struct {
	Device string
	Logger *log.Logger
}

// Show draws img on the device and keeps it there until hold elapses, a key
// is pressed or ctx is done. While shown, the console is switched to graphics mode so the text
// cursor does not blink over the image.
func (f Framebuffer) Show(ctx context.Context, img image.Image, background color.Color, hold time.Duration) error {
	path := f.Device
	if path == "" {
		path = DefaultDevice
	}
	dev, err := fb.Open(path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	defer dev.Close()

	if err := setGraphicsMode(); err != nil {
		f.logf("graphics mode unavailable: %v", err)
	} else {
		defer func() {
			if err := restoreTextMode(); err != nil {
				f.logf("restore text mode: %v", err)
			}
		}()
	}

	target := Blit(dev, img, background)
	if f.Logger != nil {
		f.Logger.Info("preview shown", "device", path, "bounds", dev.Bounds(), "target", target)
	}

	keyCtx, stopKeys := context.WithCancel(ctx)
	defer stopKeys()
	dismissed := make(chan struct{})
	if watchKeys(keyCtx, func() { close(dismissed) }) && f.Logger != nil {
		f.Logger.Info("press any key to dismiss the preview")
	}

	timer := time.NewTimer(hold)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-dismissed:
		return nil
	case <-timer.C:
		return nil
	}
}

func (f Framebuffer) logf(format string, args ...any) {
	if f.Logger != nil {
		f.Logger.Warnf(format, args...)
	}
}
