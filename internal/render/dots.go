package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// DotRadius is the radius, in pixels, of every dot drawn for a set module.
const DotRadius = 5

// CircleDrawer fills circles of one radius and colour onto dst.
type CircleDrawer interface {
	FillCircles(dst *image.RGBA, centers []image.Point, radius float64, c color.RGBA)
}

// GGCircleDrawer fills hard-edged circles: gg rasterises the discs into a
// coverage mask and a pixel takes c only when at least half of it is covered.
// dst never receives a blended colour.
type GGCircleDrawer struct{}

// coverageThreshold is the mask alpha at which a pixel counts as inside.
const coverageThreshold = 0x80

func (GGCircleDrawer) FillCircles(dst *image.RGBA, centers []image.Point, radius float64, c color.RGBA) {
	if len(centers) == 0 {
		return
	}
	b := dst.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(color.Black)
	for _, p := range centers {
		dc.DrawCircle(float64(p.X-b.Min.X), float64(p.Y-b.Min.Y), radius)
	}
	dc.Fill()

	mask := dc.AsMask()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.AlphaAt(x, y).A >= coverageThreshold {
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
			}
		}
	}
}

// ApplyDots redraws canvas as dots: each module cell is sampled at its top-left
// pixel and, when that pixel is exactly the foreground colour, a dot of
// DotRadius is drawn centred there on a fresh background-filled canvas.
// Nothing else from canvas survives.
func ApplyDots(canvas *image.RGBA, style Style, drawer CircleDrawer) *image.RGBA {
	if drawer == nil {
		drawer = GGCircleDrawer{}
	}
	b := canvas.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, &image.Uniform{C: opaque(style.Background)}, image.Point{}, draw.Src)

	fg := opaque(style.Foreground)
	var centers []image.Point
	for y := b.Min.Y; y < b.Max.Y; y += style.PixelSize {
		for x := b.Min.X; x < b.Max.X; x += style.PixelSize {
			if sameRGB(canvas.RGBAAt(x, y), fg) {
				centers = append(centers, image.Pt(x, y))
			}
		}
	}
	drawer.FillCircles(out, centers, DotRadius, fg)
	return out
}
