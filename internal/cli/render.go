package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/qrwatermark/internal/config"
	"github.com/rook-computer/qrwatermark/internal/display"
	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
	"github.com/rook-computer/qrwatermark/internal/grid"
	"github.com/rook-computer/qrwatermark/internal/imageio"
	"github.com/rook-computer/qrwatermark/internal/render"
)

// renderOpts holds the command-line flags for the render command.
// Style flags override the config file only when set explicitly.
type renderOpts struct {
	output          string // output image path; the extension picks the format
	configPath      string // optional TOML style file
	level           string // error correction: low, medium, high, highest
	pixelSize       int
	marginSize      int
	shape           string // square or dot
	foreground      string
	background      string
	gradient        string // "#start,#end"
	autoGradient    bool
	logo            string
	logoWidth       int
	logoHeight      int
	backgroundImage string
	preview         bool // show the result on the framebuffer
	previewHold     time.Duration
	previewDevice   string
}

func (c *CLI) renderCommand() *cobra.Command {
	defaults := config.Default()
	opts := renderOpts{
		level:         defaults.Level,
		pixelSize:     defaults.PixelSize,
		marginSize:    defaults.MarginSize,
		shape:         defaults.Shape,
		foreground:    defaults.Foreground.String(),
		background:    defaults.Background.String(),
		logoWidth:     defaults.Logo.Width,
		logoHeight:    defaults.Logo.Height,
		previewHold:   10 * time.Second,
		previewDevice: display.DefaultDevice,
	}

	cmd := &cobra.Command{
		Use:   "render TEXT",
		Short: "Encode TEXT and write a styled QR code image",
		Example: `  qrwatermark render "https://example.com" -o qr.png
  qrwatermark render "hello" -o qr.png --shape dot --fg "#705118" --logo logo.png
  qrwatermark render "hello" -o qr.jpg --config style.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output image path (.png, .jpg, .gif, .bmp, .tif)")
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML style file")
	f.StringVarP(&opts.level, "level", "l", opts.level, "error correction level: low, medium, high, highest")
	f.IntVarP(&opts.pixelSize, "pixel-size", "p", opts.pixelSize, "side of one module in pixels")
	f.IntVarP(&opts.marginSize, "margin", "m", opts.marginSize, "quiet zone width in modules")
	f.StringVar(&opts.shape, "shape", opts.shape, "module shape: square or dot")
	f.StringVar(&opts.foreground, "fg", opts.foreground, "foreground colour")
	f.StringVar(&opts.background, "bg", opts.background, "background colour")
	f.StringVar(&opts.gradient, "gradient", "", `vertical gradient as "#start,#end"`)
	f.BoolVar(&opts.autoGradient, "auto-gradient", false, "derive a per-row gradient from the foreground colour")
	f.StringVar(&opts.logo, "logo", "", "logo image centred on the code")
	f.IntVar(&opts.logoWidth, "logo-width", opts.logoWidth, "logo bounding box width")
	f.IntVar(&opts.logoHeight, "logo-height", opts.logoHeight, "logo bounding box height")
	f.StringVar(&opts.backgroundImage, "background-image", "", "image shown through background pixels")
	f.BoolVar(&opts.preview, "preview", false, "show the result on the framebuffer")
	f.DurationVar(&opts.previewHold, "preview-hold", opts.previewHold, "how long the preview stays on screen")
	f.StringVar(&opts.previewDevice, "preview-device", opts.previewDevice, "framebuffer device")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

// config resolves the effective settings: defaults, then the config file,
// then explicitly set flags.
func (o renderOpts) config(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	var opts []config.Option
	if changed("level") {
		opts = append(opts, config.WithLevel(o.level))
	}
	if changed("pixel-size") {
		opts = append(opts, config.WithPixelSize(o.pixelSize))
	}
	if changed("margin") {
		opts = append(opts, config.WithMarginSize(o.marginSize))
	}
	if changed("shape") {
		opts = append(opts, config.WithShape(o.shape))
	}
	for _, c := range []struct {
		flag  string
		value string
		set   func(config.Color) config.Option
	}{
		{"fg", o.foreground, config.WithForeground},
		{"bg", o.background, config.WithBackground},
	} {
		if !changed(c.flag) {
			continue
		}
		col, err := config.ParseColor(c.value)
		if err != nil {
			return config.Config{}, qrerr.Wrap(qrerr.ErrCodeConfig, err, "--%s", c.flag)
		}
		opts = append(opts, c.set(col))
	}
	if changed("gradient") {
		g, err := config.ParseGradient(o.gradient)
		if err != nil {
			return config.Config{}, err
		}
		opts = append(opts, config.WithGradient(g.Start, g.End))
	}
	if changed("auto-gradient") && o.autoGradient {
		opts = append(opts, config.WithAutoGradient())
	}
	if changed("logo") {
		opts = append(opts, config.WithLogo(o.logo))
	}
	if changed("logo-width") || changed("logo-height") {
		w, h := cfg.Logo.Width, cfg.Logo.Height
		if changed("logo-width") {
			w = o.logoWidth
		}
		if changed("logo-height") {
			h = o.logoHeight
		}
		opts = append(opts, config.WithLogoSize(w, h))
	}
	if changed("background-image") {
		opts = append(opts, config.WithBackgroundImage(o.backgroundImage))
	}
	cfg.Apply(opts...)
	return cfg, cfg.Validate()
}

func (c *CLI) runRender(ctx context.Context, text string, cfg config.Config, opts renderOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	prog := newProgress(c.Logger)

	// Fail on an unsupported extension before doing any work.
	if _, err := imageio.FormatFromPath(opts.output); err != nil {
		return err
	}
	renderOptions, err := cfg.Options()
	if err != nil {
		return err
	}
	g, err := grid.EncodeLevel(text, cfg.Level)
	if err != nil {
		return err
	}
	c.Logger.Debug("encoded", "grid", grid.Describe(g), "level", cfg.Level)

	renderer := render.NewRenderer(imageio.Decoder{Logger: c.Logger.WithPrefix("imageio")}, c.Logger.WithPrefix("render"))
	canvas, err := renderer.Render(ctx, g, renderOptions)
	if err != nil {
		return err
	}
	if err := imageio.Save(canvas, opts.output); err != nil {
		return err
	}
	prog.done("Wrote " + opts.output)

	if !opts.preview {
		return nil
	}
	fb := display.Framebuffer{Device: opts.previewDevice, Logger: c.Logger.WithPrefix("display")}
	if err := fb.Show(ctx, canvas, renderOptions.Style.Background, opts.previewHold); err != nil && ctx.Err() == nil {
		return qrerr.Wrap(qrerr.ErrCodeIO, err, "preview")
	}
	return nil
}
