package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rook-computer/qrwatermark/internal/cli"
	qrerr "github.com/rook-computer/qrwatermark/internal/errors"
)

const envStdioLog = "QRWATERMARK_STDIO_LOG"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(qrerr.ExitCode(err))
	}
}

func run(ctx context.Context) error {
	var stdioLog string

	c := cli.New(os.Stdout, os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().StringVar(&stdioLog, "stdio-log", "",
		"redirect stdout+stderr (including panics) to this file; also $"+envStdioLog)

	// A framebuffer preview leaves the console in graphics mode, so crashes
	// are only diagnosable from a file.
	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path := stdioLog
		if path == "" {
			path = os.Getenv(envStdioLog)
		}
		if err := redirectStdIO(path); err != nil {
			c.Logger.Warn("stdio log redirect failed", "path", path, "err", err)
		}
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
