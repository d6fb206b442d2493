package render

import (
	"context"
	"image"
	"io"

	"github.com/charmbracelet/log"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
	"github.com/rook-computer/qrwatermark/internal/grid"
)

// BitmapDecoder loads a bitmap from a path.
// Failures, including a missing file, are reported as DECODE errors.
type BitmapDecoder interface {
	Decode(path string) (image.Image, error)
}

// Options is everything a single render needs besides the grid.
type Options struct {
	Style Style
	Logo  LogoConfig
	// LogoPath and BackgroundPath are optional; empty disables the pass.
	LogoPath       string
	BackgroundPath string
}

func DefaultOptions() Options {
	return Options{Style: DefaultStyle(), Logo: DefaultLogoConfig()}
}

func (o Options) Validate() error {
	if err := o.Style.Validate(); err != nil {
		return err
	}
	if o.LogoPath != "" {
		return o.Logo.Validate()
	}
	return nil
}

// Renderer runs the compositing passes in a fixed order:
// rasterize, dots (dot shape only), logo, background image.
type Renderer struct {
	Decoder BitmapDecoder
	Circles CircleDrawer
	Logger  *log.Logger
}

func NewRenderer(decoder BitmapDecoder, logger *log.Logger) *Renderer {
	return &Renderer{Decoder: decoder, Circles: GGCircleDrawer{}, Logger: logger}
}

// Render validates opts, decodes the optional bitmaps and composites the canvas.
// The first failing stage aborts the render; no partial canvas is returned.
func (r *Renderer) Render(ctx context.Context, g grid.Grid, opts Options) (*image.RGBA, error) {
	logger := r.logger()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logo, err := r.decode(opts.LogoPath, "logo")
	if err != nil {
		return nil, err
	}
	bg, err := r.decode(opts.BackgroundPath, "background")
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Compose(g, opts.Style, Layers{Logo: logo, LogoConfig: opts.Logo, Background: bg, Circles: r.Circles, Logger: logger})
}

// Layers carries the already-decoded inputs for Compose.
type Layers struct {
	Logo       image.Image
	LogoConfig LogoConfig
	Background image.Image
	Circles    CircleDrawer
	Logger     *log.Logger
}

// Compose runs every pass on already-decoded inputs. It performs no I/O.
func Compose(g grid.Grid, style Style, layers Layers) (*image.RGBA, error) {
	logger := layers.Logger
	if logger == nil {
		logger = discardLogger()
	}

	canvas, err := Rasterize(g, style)
	if err != nil {
		return nil, err
	}
	logger.Debug("rasterized", "grid", grid.Describe(g), "side", canvas.Bounds().Dx())

	if style.Shape == ShapeDot {
		canvas = ApplyDots(canvas, style, layers.Circles)
		logger.Debug("dots applied", "radius", DotRadius)
	}

	if layers.Logo != nil {
		cfg := layers.LogoConfig
		if cfg == (LogoConfig{}) {
			cfg = DefaultLogoConfig()
		}
		ApplyLogo(canvas, layers.Logo, cfg)
		logger.Debug("logo applied", "box", cfg)
	}

	if err := ApplyBackground(canvas, layers.Background, style); err != nil {
		return nil, err
	}
	if layers.Background != nil {
		logger.Debug("background image applied")
	}
	return canvas, nil
}

func (r *Renderer) decode(path, stage string) (image.Image, error) {
	if path == "" {
		return nil, nil
	}
	if r.Decoder == nil {
		return nil, qrerr.New(qrerr.ErrCodeDecode, "%s %s: no decoder configured", stage, path)
	}
	img, err := r.Decoder.Decode(path)
	if err != nil {
		return nil, qrerr.Wrap(qrerr.ErrCodeDecode, err, "%s %s", stage, path)
	}
	r.logger().Debug("decoded", "stage", stage, "path", path, "size", img.Bounds().Size())
	return img, nil
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return discardLogger()
	}
	return r.Logger
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
