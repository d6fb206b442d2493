package cli

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/rook-computer/qrwatermark/internal/config"
	"github.com/rook-computer/qrwatermark/internal/imageio"
	"github.com/rook-computer/qrwatermark/internal/render"
	"github.com/rook-computer/qrwatermark/internal/web"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen     string
		configPath string
		dev        bool
		maxText    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR codes over HTTP at /api/v1/qr",
		Long: `Serve QR codes over HTTP.

Settings come from flags, then $` + web.EnvListenAddr + `, $` + web.EnvDevMode + ` and
$` + web.EnvMaxTextBytes + `, then built-in defaults.
Logo and background images come from the --config file only; requests
cannot name files on the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverCfg, err := web.DefaultServerConfig().ApplyEnv(os.LookupEnv)
			if err != nil {
				return err
			}
			changed := cmd.Flags().Changed
			if changed("listen") {
				serverCfg.ListenAddr = listen
			}
			if changed("dev") {
				serverCfg.DevMode = dev
			}
			if changed("max-text") {
				serverCfg.MaxTextBytes = maxText
			}
			if err := serverCfg.Validate(); err != nil {
				return err
			}

			base := config.Default()
			if configPath != "" {
				if base, err = config.Load(configPath); err != nil {
					return err
				}
			}
			if err := base.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			api := &web.API{
				Renderer:     render.NewRenderer(imageio.Decoder{Logger: c.Logger.WithPrefix("imageio")}, c.Logger.WithPrefix("render")),
				Base:         base,
				Logger:       c.Logger.WithPrefix("web"),
				MaxTextBytes: serverCfg.MaxTextBytes,
			}
			return c.runServer(ctx, serverCfg, web.NewRouter(api, serverCfg.DevMode))
		},
	}
	cmd.Flags().StringVar(&listen, "listen", web.DefaultListenAddr, "listen address")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML base style for every request")
	cmd.Flags().BoolVar(&dev, "dev", false, "allow cross-origin requests")
	cmd.Flags().IntVar(&maxText, "max-text", web.DefaultMaxTextBytes, "largest accepted text in bytes")
	return cmd
}

// runServer blocks until ctx is done.
func (c *CLI) runServer(ctx context.Context, cfg web.ServerConfig, handler http.Handler) error {
	srv := web.NewHTTPServer(cfg, handler)
	srv.Logger = c.Logger.WithPrefix("web")
	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	c.Logger.Info("shutting down")
	return srv.Stop()
}
