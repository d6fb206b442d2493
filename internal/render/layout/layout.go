package layout

import (
	"image"
	"math"
)

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Center returns a widthPx×heightPx rectangle centred in rect.
// The offset uses truncating division, so odd leftovers go to the right and bottom.
// The result may extend past rect when it is larger.
func Center(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitInside scales (width, height) by the largest factor that keeps both
// sides within (maxWidth, maxHeight), preserving aspect ratio.
// Images smaller than the box are scaled up. Each side is at least 1.
func FitInside(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	ratio := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	w := int(math.Round(float64(width) * ratio))
	h := int(math.Round(float64(height) * ratio))
	return max(w, 1), max(h, 1)
}

// FitSquare returns the largest square that fits into rect, centred.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return Center(rect, size, size)
}
