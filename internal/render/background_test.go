package render

import (
	"image"
	"image/color"
	"testing"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// gradientBitmap returns a w×h image whose pixel colour encodes its coordinate.
func gradientBitmap(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 77, A: 0xFF})
		}
	}
	return img
}

func TestApplyBackgroundSubstitution(t *testing.T) {
	style := DefaultStyle()
	canvas, err := Rasterize(checker(11), style)
	if err != nil {
		t.Fatal(err)
	}
	ApplyLogo(canvas, solid(20, 20, red), LogoConfig{Width: 20, Height: 20})
	before := image.NewRGBA(canvas.Bounds())
	copy(before.Pix, canvas.Pix)

	bg := gradientBitmap(140, 140)
	if err := ApplyBackground(canvas, bg, style); err != nil {
		t.Fatalf("ApplyBackground() error = %v", err)
	}

	b := canvas.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			prev := before.RGBAAt(x, y)
			got := canvas.RGBAAt(x, y)
			want := prev
			if prev == white {
				c := bg.NRGBAAt(x, y)
				want = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
			}
			if got != want {
				t.Fatalf("(%d, %d) = %v, want %v (was %v)", x, y, got, want, prev)
			}
		}
	}
}

func TestApplyBackgroundReplacesLogoPixelsOfBackgroundColour(t *testing.T) {
	style := DefaultStyle()
	canvas, err := Rasterize(checker(5), style)
	if err != nil {
		t.Fatal(err)
	}
	ApplyLogo(canvas, solid(10, 10, white), LogoConfig{Width: 10, Height: 10})
	if err := ApplyBackground(canvas, solid(70, 70, blue), style); err != nil {
		t.Fatal(err)
	}
	if got := canvas.RGBAAt(35, 35); got != blue {
		t.Errorf("white logo pixel = %v, want replaced by background image", got)
	}
}

func TestApplyBackgroundTooSmall(t *testing.T) {
	style := DefaultStyle()
	canvas, err := Rasterize(checker(5), style)
	if err != nil {
		t.Fatal(err)
	}
	before := image.NewRGBA(canvas.Bounds())
	copy(before.Pix, canvas.Pix)

	for _, size := range []image.Point{{69, 70}, {70, 69}, {1, 1}} {
		err := ApplyBackground(canvas, solid(size.X, size.Y, blue), style)
		if !qrerr.Is(err, qrerr.ErrCodeGeometry) {
			t.Errorf("%v: error = %v, want GEOMETRY", size, err)
		}
	}
	if !equalCanvas(canvas, before) {
		t.Error("canvas modified by a failed background pass")
	}
}

func TestApplyBackgroundOffsetBounds(t *testing.T) {
	style := DefaultStyle()
	canvas, err := Rasterize(checker(3), style)
	if err != nil {
		t.Fatal(err)
	}
	// a sub-image keeps its parent's coordinates; sampling is relative to its origin
	full := gradientBitmap(100, 100)
	sub := full.SubImage(image.Rect(20, 30, 70, 80))
	if err := ApplyBackground(canvas, sub, style); err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 20, G: 30, B: 77, A: 0xFF}
	if got := canvas.RGBAAt(0, 0); got != want {
		t.Errorf("(0, 0) = %v, want %v", got, want)
	}
}

func TestApplyBackgroundNil(t *testing.T) {
	canvas, err := Rasterize(checker(3), DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if err := ApplyBackground(canvas, nil, DefaultStyle()); err != nil {
		t.Errorf("ApplyBackground(nil) error = %v", err)
	}
	if got := canvas.RGBAAt(0, 0); got != white {
		t.Errorf("(0, 0) = %v, want untouched white", got)
	}
}
