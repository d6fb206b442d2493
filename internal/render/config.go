package render

import (
	"image/color"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

// Default style values.
var (
	DefaultForeground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF} // #000000
	DefaultBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #ffffff
)

const (
	DefaultPixelSize  = 10
	DefaultMarginSize = 1
	DefaultLogoWidth  = 50
	DefaultLogoHeight = 50

	// MaxCanvasSide bounds the side length of any canvas, in pixels.
	MaxCanvasSide = 1 << 15
)

// Shape selects how a set module is drawn.
type Shape int

const (
	ShapeSquare Shape = iota
	ShapeDot
)

func (s Shape) String() string {
	switch s {
	case ShapeSquare:
		return "square"
	case ShapeDot:
		return "dot"
	}
	return "unknown"
}

// Gradient is an explicit two-stop vertical gradient.
type Gradient struct {
	Start color.RGBA
	End   color.RGBA
}

// Style controls module geometry and colouring.
type Style struct {
	PixelSize  int // pixels per module, >= 1
	MarginSize int // modules of border, >= 0
	Foreground color.RGBA
	Background color.RGBA
	// Gradient, when set, takes precedence over AutoGradient.
	Gradient     *Gradient
	AutoGradient bool
	Shape        Shape
}

// LogoConfig is the bounding box the logo thumbnail must fit in.
type LogoConfig struct {
	Width  int
	Height int
}

func DefaultStyle() Style {
	return Style{
		PixelSize:  DefaultPixelSize,
		MarginSize: DefaultMarginSize,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		Shape:      ShapeSquare,
	}
}

func DefaultLogoConfig() LogoConfig {
	return LogoConfig{Width: DefaultLogoWidth, Height: DefaultLogoHeight}
}

// CanvasSize returns the side length in pixels for an n×n grid.
// The result is only meaningful for a style that passed Validate.
func (s Style) CanvasSize(n int) int {
	return (n + 2*s.MarginSize) * s.PixelSize
}

// CheckCanvas reports a CONFIG error when an n×n grid would not fit in
// MaxCanvasSide. It never overflows, whatever the field values.
func (s Style) CheckCanvas(n int) error {
	if n < 0 || n > MaxCanvasSide {
		return qrerr.New(qrerr.ErrCodeConfig, "grid of %d modules exceeds %d", n, MaxCanvasSide)
	}
	if s.PixelSize > MaxCanvasSide || s.MarginSize > MaxCanvasSide {
		return qrerr.New(qrerr.ErrCodeConfig, "pixel size %d and margin %d exceed canvas limit %dpx",
			s.PixelSize, s.MarginSize, MaxCanvasSide)
	}
	if side := int64(n+2*s.MarginSize) * int64(s.PixelSize); side > MaxCanvasSide {
		return qrerr.New(qrerr.ErrCodeConfig, "canvas would be %dpx, limit is %dpx", side, MaxCanvasSide)
	}
	return nil
}

// Validate reports impossible geometry and style combinations as CONFIG errors.
func (s Style) Validate() error {
	if s.PixelSize < 1 {
		return qrerr.New(qrerr.ErrCodeConfig, "pixel size must be >= 1, got %d", s.PixelSize)
	}
	if s.MarginSize < 0 {
		return qrerr.New(qrerr.ErrCodeConfig, "margin size must be >= 0, got %d", s.MarginSize)
	}
	if err := s.CheckCanvas(0); err != nil {
		return err
	}
	switch s.Shape {
	case ShapeSquare:
	case ShapeDot:
		// Dots only survive where a sampled pixel is exactly the foreground colour.
		if s.Gradient != nil || s.AutoGradient {
			return qrerr.New(qrerr.ErrCodeConfig, "dot shape cannot be combined with a gradient")
		}
		if s.PixelSize <= DotRadius {
			return qrerr.New(qrerr.ErrCodeConfig, "dot shape needs pixel size > %d, got %d", DotRadius, s.PixelSize)
		}
	default:
		return qrerr.New(qrerr.ErrCodeConfig, "unknown pixel shape %d", int(s.Shape))
	}
	return nil
}

func (c LogoConfig) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return qrerr.New(qrerr.ErrCodeConfig, "logo box must be at least 1x1, got %dx%d", c.Width, c.Height)
	}
	return nil
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xFF
	return c
}

func sameRGB(a, b color.RGBA) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}
