package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/rook-computer/qrwatermark/internal/grid"
)

func TestApplyLogoCentre(t *testing.T) {
	for _, n := range []int{21, 25, 33} {
		canvas, err := Rasterize(checker(n), DefaultStyle())
		if err != nil {
			t.Fatal(err)
		}
		ApplyLogo(canvas, solid(64, 64, red), DefaultLogoConfig())
		side := canvas.Bounds().Dx()
		if got := canvas.RGBAAt(side/2, side/2); got != red {
			t.Errorf("n=%d: centre = %v, want logo colour", n, got)
		}
	}
}

func TestApplyLogoPlacement(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 101, 101))
	// 200x100 logo in a 50x50 box becomes 50x25, placed at ((101-50)/2, (101-25)/2)
	ApplyLogo(canvas, solid(200, 100, blue), LogoConfig{Width: 50, Height: 50})

	inside := image.Rect(25, 38, 75, 63)
	for y := 0; y < 101; y++ {
		for x := 0; x < 101; x++ {
			got := canvas.RGBAAt(x, y)
			if image.Pt(x, y).In(inside) {
				if got != blue {
					t.Fatalf("(%d, %d) = %v, want logo blue", x, y, got)
				}
			} else if got != (color.RGBA{}) {
				t.Fatalf("(%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestApplyLogoDropsAlpha(t *testing.T) {
	canvas, err := Rasterize(grid.Filled(5), DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	translucent := solid(10, 10, color.NRGBA{R: 10, G: 200, B: 30, A: 0x40})
	ApplyLogo(canvas, translucent, LogoConfig{Width: 10, Height: 10})

	want := color.RGBA{R: 10, G: 200, B: 30, A: 0xFF}
	if got := canvas.RGBAAt(35, 35); got != want {
		t.Errorf("centre = %v, want opaque %v", got, want)
	}
}

func TestApplyLogoNil(t *testing.T) {
	canvas, err := Rasterize(checker(5), DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	before := image.NewRGBA(canvas.Bounds())
	copy(before.Pix, canvas.Pix)
	ApplyLogo(canvas, nil, DefaultLogoConfig())
	if !equalCanvas(canvas, before) {
		t.Error("ApplyLogo(nil) modified the canvas")
	}
}

func TestApplyLogoLargerThanCanvasIsClipped(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 20, 20))
	ApplyLogo(canvas, solid(40, 40, red), LogoConfig{Width: 40, Height: 40})
	for _, p := range []image.Point{{0, 0}, {19, 19}, {10, 10}} {
		if got := canvas.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("%v = %v, want red", p, got)
		}
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		box   LogoConfig
		wantW int
		wantH int
	}{
		{"downscale square", 200, 200, LogoConfig{50, 50}, 50, 50},
		{"downscale wide", 300, 150, LogoConfig{70, 70}, 70, 35},
		{"upscale", 10, 20, LogoConfig{50, 50}, 25, 50},
		{"same size", 50, 50, LogoConfig{50, 50}, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Thumbnail(solid(tt.w, tt.h, red), tt.box.Width, tt.box.Height)
			if th.Bounds().Dx() != tt.wantW || th.Bounds().Dy() != tt.wantH {
				t.Errorf("Thumbnail() = %v, want %dx%d", th.Bounds(), tt.wantW, tt.wantH)
			}
		})
	}
}
