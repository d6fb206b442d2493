package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// ApplyBackground replaces every canvas pixel that is exactly the style's
// background colour with the pixel of bg at the same coordinate. Pixels are
// matched by colour alone, so a logo pixel equal to the background colour is
// replaced too.
//
// bg must be at least as large as canvas; a smaller bitmap is a GEOMETRY error
// and canvas is left untouched. A nil bg is a no-op.
func ApplyBackground(canvas *image.RGBA, bg image.Image, style Style) error {
	if bg == nil {
		return nil
	}
	cb, bb := canvas.Bounds(), bg.Bounds()
	if bb.Dx() < cb.Dx() || bb.Dy() < cb.Dy() {
		return qrerr.New(qrerr.ErrCodeGeometry,
			"background image is %dx%d, canvas needs at least %dx%d", bb.Dx(), bb.Dy(), cb.Dx(), cb.Dy())
	}

	src := imaging.Clone(bg)
	target := opaque(style.Background)
	for y := cb.Min.Y; y < cb.Max.Y; y++ {
		for x := cb.Min.X; x < cb.Max.X; x++ {
			if !sameRGB(canvas.RGBAAt(x, y), target) {
				continue
			}
			c := src.NRGBAAt(x-cb.Min.X, y-cb.Min.Y)
			canvas.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
	return nil
}
