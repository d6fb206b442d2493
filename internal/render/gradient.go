package render

import (
	"image/color"
	"math"
)

// AutoStep is the per-channel shift applied for every module row in auto gradient mode.
var AutoStep = [3]int{1, 2, 3}

// At returns the gradient colour for canvas row y of a canvas height pixels tall.
// Row 0 is Start and row height-1 is End.
func (g Gradient) At(y, height int) color.RGBA {
	t := 0.0
	if height > 1 {
		t = float64(y) / float64(height-1)
	}
	return Lerp(g.Start, g.End, t)
}

// Lerp interpolates each channel between a and b and rounds to the nearest integer.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	ch := func(x, y uint8) uint8 {
		v := math.Round(float64(x)*(1-t) + float64(y)*t)
		return uint8(math.Max(0, math.Min(255, v)))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: 0xFF}
}

// AutoColor returns the colour of module row `row` in auto gradient mode:
// base shifted row times by AutoStep, wrapping each channel modulo 256.
func AutoColor(base color.RGBA, row int) color.RGBA {
	shift := func(v uint8, step int) uint8 {
		return uint8((int(v) + row*step) & 0xFF)
	}
	return color.RGBA{
		R: shift(base.R, AutoStep[0]),
		G: shift(base.G, AutoStep[1]),
		B: shift(base.B, AutoStep[2]),
		A: 0xFF,
	}
}

// RowColors returns the foreground colour for each of the n module rows.
// An explicit gradient is sampled at the canvas row where the module row begins.
func (s Style) RowColors(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	height := s.CanvasSize(n)
	offset := s.MarginSize * s.PixelSize
	for row := range out {
		switch {
		case s.Gradient != nil:
			out[row] = s.Gradient.At(offset+row*s.PixelSize, height)
		case s.AutoGradient:
			out[row] = AutoColor(s.Foreground, row)
		default:
			out[row] = opaque(s.Foreground)
		}
	}
	return out
}
