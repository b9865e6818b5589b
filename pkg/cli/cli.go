package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/bmsedge/queuepulse/pkg/cli/config"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run runs the queuepulse command line. Every subcommand shares the logger
// flags; the logger is validated and installed before any of them runs.
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		logCloser io.Closer
	)

	app := &cli.Command{
		Name:    "queuepulse",
		Usage:   "Counter queue telemetry and congestion reporting service",
		Version: "0.1.0",
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := loggerCfg.Configure()
			if err != nil {
				return ctx, goerr.Wrap(err, "invalid logging configuration")
			}
			logCloser = closer

			slog.SetDefault(logger)
			logger.Debug("Logger configured", slog.Any("logger", loggerCfg))
			return ctxlog.With(ctx, logger), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdReport(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		slog.Error("queuepulse failed", "error", err)
		return goerr.Wrap(err, "CLI execution failed")
	}

	return nil
}

// joinFlags concatenates the flag groups of one command
func joinFlags(groups ...[]cli.Flag) []cli.Flag {
	return slices.Concat(groups...)
}
