package render

import (
	"image"
	"image/color"

	"github.com/rook-computer/qrwatermark/internal/grid"
)

// Rasterize draws g onto a fresh square canvas of side style.CanvasSize(g.Size()).
// Pixels in the margin, or whose module is unset, take the background colour.
// A canvas larger than MaxCanvasSide is a CONFIG error.
func Rasterize(g grid.Grid, style Style) (*image.RGBA, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	n := g.Size()
	if err := style.CheckCanvas(n); err != nil {
		return nil, err
	}
	side := style.CanvasSize(n)
	canvas := image.NewRGBA(image.Rect(0, 0, side, side))

	offset := style.MarginSize * style.PixelSize
	bg := opaque(style.Background)
	rowColors := style.RowColors(n)

	for y := 0; y < side; y++ {
		my, inY := moduleIndex(y-offset, style.PixelSize, n)
		var fg color.RGBA
		if inY {
			fg = rowColors[my]
		}
		for x := 0; x < side; x++ {
			mx, inX := moduleIndex(x-offset, style.PixelSize, n)
			c := bg
			if inX && inY && g.Get(mx, my) {
				c = fg
			}
			canvas.SetRGBA(x, y, c)
		}
	}
	return canvas, nil
}

// moduleIndex maps a margin-relative pixel coordinate to a module index.
// ok is false for coordinates in the margin on either side of the grid.
// rel == 0 is the first pixel of module 0, not margin: treating it as margin
// would leave row and column 0 one pixel short and shift every dot sample.
func moduleIndex(rel, pixelSize, n int) (int, bool) {
	if rel < 0 {
		return 0, false
	}
	m := rel / pixelSize
	return m, m < n
}
