package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/rook-computer/qrwatermark/internal/render/layout"
)

// Thumbnail scales src to fit inside maxWidth×maxHeight, keeping its aspect ratio.
func Thumbnail(src image.Image, maxWidth, maxHeight int) *image.NRGBA {
	b := src.Bounds()
	w, h := layout.FitInside(b.Dx(), b.Dy(), maxWidth, maxHeight)
	if w == 0 || h == 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if w == b.Dx() && h == b.Dy() {
		return imaging.Clone(src)
	}
	return imaging.Resize(src, w, h, imaging.Lanczos)
}

// ApplyLogo draws a thumbnail of logo centred on canvas.
// Logo pixels replace canvas pixels outright; the logo's alpha is ignored.
// A nil logo leaves canvas untouched.
func ApplyLogo(canvas *image.RGBA, logo image.Image, cfg LogoConfig) {
	if logo == nil {
		return
	}
	thumb := Thumbnail(logo, cfg.Width, cfg.Height)
	tb := thumb.Bounds()
	dst := layout.Center(canvas.Bounds(), tb.Dx(), tb.Dy())

	for y := 0; y < tb.Dy(); y++ {
		for x := 0; x < tb.Dx(); x++ {
			p := image.Pt(dst.Min.X+x, dst.Min.Y+y)
			if !p.In(canvas.Bounds()) {
				continue
			}
			c := thumb.NRGBAAt(tb.Min.X+x, tb.Min.Y+y)
			canvas.SetRGBA(p.X, p.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
		}
	}
}
