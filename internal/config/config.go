// Package config holds user-facing render settings: defaults, functional
// option setters, TOML file loading and conversion to render options.
package config

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
	"github.com/rook-computer/qrwatermark/internal/grid"
	"github.com/rook-computer/qrwatermark/internal/render"
)

// Color is an RGB triple written as "#rrggbb" in config files and flags.
type Color struct {
	R, G, B uint8
}

func (c Color) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF} }

func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) == 3 {
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	}
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != 3 {
		return Color{}, qrerr.New(qrerr.ErrCodeConfig, "invalid colour %q (want #rrggbb)", s)
	}
	return Color{R: b[0], G: b[1], B: b[2]}, nil
}

// ParseGradient parses the "#start,#end" form used by flags and queries.
func ParseGradient(s string) (Gradient, error) {
	start, end, ok := strings.Cut(s, ",")
	if !ok {
		return Gradient{}, qrerr.New(qrerr.ErrCodeConfig, "invalid gradient %q (want #start,#end)", s)
	}
	var g Gradient
	var err error
	if g.Start, err = ParseColor(start); err != nil {
		return Gradient{}, err
	}
	if g.End, err = ParseColor(end); err != nil {
		return Gradient{}, err
	}
	return g, nil
}

// Gradient is an explicit two-stop gradient.
type Gradient struct {
	Start Color `toml:"start"`
	End   Color `toml:"end"`
}

// Logo configures the optional centred logo.
type Logo struct {
	Path   string `toml:"path"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Config is the complete set of render settings.
type Config struct {
	Level           string    `toml:"level"`
	PixelSize       int       `toml:"pixel_size"`
	MarginSize      int       `toml:"margin_size"`
	Shape           string    `toml:"shape"`
	Foreground      Color     `toml:"foreground"`
	Background      Color     `toml:"background"`
	Gradient        *Gradient `toml:"gradient"`
	AutoGradient    bool      `toml:"auto_gradient"`
	BackgroundImage string    `toml:"background_image"`
	Logo            Logo      `toml:"logo"`
}

// Default returns the built-in settings: 10px modules, a one-module margin,
// black on white squares, no gradient and a 50x50 logo box.
func Default() Config {
	return Config{
		Level:      grid.LevelMedium,
		PixelSize:  render.DefaultPixelSize,
		MarginSize: render.DefaultMarginSize,
		Shape:      render.ShapeSquare.String(),
		Foreground: Color{0x00, 0x00, 0x00},
		Background: Color{0xFF, 0xFF, 0xFF},
		Logo:       Logo{Width: render.DefaultLogoWidth, Height: render.DefaultLogoHeight},
	}
}

// Option mutates a Config.
type Option func(*Config)

// New returns Default with opts applied in order.
func New(opts ...Option) Config {
	c := Default()
	c.Apply(opts...)
	return c
}

func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func WithLevel(level string) Option { return func(c *Config) { c.Level = level } }

func WithPixelSize(n int) Option { return func(c *Config) { c.PixelSize = n } }

func WithMarginSize(n int) Option { return func(c *Config) { c.MarginSize = n } }

func WithShape(shape string) Option { return func(c *Config) { c.Shape = shape } }

func WithForeground(fg Color) Option { return func(c *Config) { c.Foreground = fg } }

func WithBackground(bg Color) Option { return func(c *Config) { c.Background = bg } }

func WithGradient(start, end Color) Option {
	return func(c *Config) { c.Gradient = &Gradient{Start: start, End: end} }
}

func WithAutoGradient() Option { return func(c *Config) { c.AutoGradient = true } }

func WithBackgroundImage(path string) Option { return func(c *Config) { c.BackgroundImage = path } }

func WithLogo(path string) Option { return func(c *Config) { c.Logo.Path = path } }

func WithLogoSize(width, height int) Option {
	return func(c *Config) {
		c.Logo.Width = width
		c.Logo.Height = height
	}
}

// Load reads a TOML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, qrerr.New(qrerr.ErrCodeConfig, "load %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return c, nil
}

// ParseShape maps a shape name to render.Shape.
func ParseShape(name string) (render.Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "square":
		return render.ShapeSquare, nil
	case "dot", "dots":
		return render.ShapeDot, nil
	}
	return 0, qrerr.New(qrerr.ErrCodeConfig, "unknown pixel shape %q (want square or dot)", name)
}

// Options converts c to validated render options.
func (c Config) Options() (render.Options, error) {
	if _, err := grid.ParseLevel(c.Level); err != nil {
		return render.Options{}, err
	}
	shape, err := ParseShape(c.Shape)
	if err != nil {
		return render.Options{}, err
	}
	style := render.Style{
		PixelSize:    c.PixelSize,
		MarginSize:   c.MarginSize,
		Foreground:   c.Foreground.RGBA(),
		Background:   c.Background.RGBA(),
		AutoGradient: c.AutoGradient,
		Shape:        shape,
	}
	if c.Gradient != nil {
		style.Gradient = &render.Gradient{Start: c.Gradient.Start.RGBA(), End: c.Gradient.End.RGBA()}
	}
	opts := render.Options{
		Style:          style,
		Logo:           render.LogoConfig{Width: c.Logo.Width, Height: c.Logo.Height},
		LogoPath:       c.Logo.Path,
		BackgroundPath: c.BackgroundImage,
	}
	if err := opts.Validate(); err != nil {
		return render.Options{}, err
	}
	return opts, nil
}

// Validate reports the first invalid setting as a CONFIG error.
func (c Config) Validate() error {
	_, err := c.Options()
	return err
}
