package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/siegeai/siegeschema/config"
	"github.com/siegeai/siegeschema/logging"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root command has loaded
// config and logging.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	cleanup func() error

	stdout io.Writer
	tty    bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{stdout: stdout, tty: isTerminal(stdout)}
	var level string

	root := &cobra.Command{
		Use:   "siegeschema",
		Short: "Infer canonical schemas from JSON documents",
		Long: `siegeschema derives an engine-neutral schema (structs, arrays and
primitives) from sample JSON documents, and can convert it into native
schemas for Spark, Arrow, OpenAPI and JSON Schema.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.Load()
			if level != "" {
				a.cfg.LogLevel = level
			}
			logger, cleanup, err := logging.Setup(logging.Config{
				Level:      a.cfg.LogLevel,
				FilePath:   a.cfg.LogFile,
				MaxSizeMB:  a.cfg.LogMaxSizeMB,
				MaxBackups: a.cfg.LogMaxBackups,
				MaxAgeDays: a.cfg.LogMaxAgeDays,
				Compress:   a.cfg.LogCompress,
				Writer:     cmd.ErrOrStderr(),
			})
			if err != nil && logger == nil {
				return fmt.Errorf("could not init logging: %w", err)
			}
			if err != nil {
				logger.Warn("could not parse log level", "level", a.cfg.LogLevel, "err", err)
			}
			a.logger, a.cleanup = logger, cleanup
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.cleanup != nil {
				return a.cleanup()
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "", "log level: debug, info, warn, error (overrides SIEGE_LOG)")

	root.AddCommand(newInferCmd(a), newServeCmd(a), newAdaptersCmd(a))
	return root
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
