package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bmsedge/queuepulse/pkg/cli/config"
	controller "github.com/bmsedge/queuepulse/pkg/controller/http"
	"github.com/bmsedge/queuepulse/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		storageCfg   config.Storage
		shiftsCfg    config.Shifts
		websocketCfg config.WebSocket
		mqttCfg      config.MQTT
	)

	flags := joinFlags(
		serverCfg.Flags(),
		storageCfg.Flags(),
		shiftsCfg.Flags(),
		websocketCfg.Flags(),
		mqttCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting queuepulse server",
				slog.Any("server", serverCfg),
				slog.Any("storage", storageCfg),
				slog.Any("shifts", shiftsCfg),
				slog.Any("websocket", websocketCfg),
				slog.Any("mqtt", mqttCfg),
			)

			shifts, err := shiftsCfg.Configure()
			if err != nil {
				return err
			}

			// Create repository using config
			repo, err := storageCfg.Configure(ctx, shifts)
			if err != nil {
				return err
			}
			defer repo.Close()

			hubCtx, stopHub := context.WithCancel(ctx)
			defer stopHub()

			ingestOpts := []usecase.IngestOption{}
			var live http.Handler
			if hub := websocketCfg.Configure(); hub != nil {
				go hub.Run(hubCtx)
				ingestOpts = append(ingestOpts, usecase.WithBroadcaster(hub))
				live = hub
			}

			// Create use cases
			loc := shifts.Location()
			ingestUC := usecase.NewIngest(repo, usecase.NewIngestConfig(ingestOpts...))
			congestionUC := usecase.NewCongestion(repo, repo, loc)

			subscriber, err := mqttCfg.Configure(ingestUC)
			if err != nil {
				return err
			}
			if subscriber != nil {
				if err := subscriber.Start(ctx); err != nil {
					return err
				}
				defer subscriber.Stop()
			}

			// Create HTTP server
			server, err := controller.NewServer(
				ctx,
				controller.NewConfig(serverCfg.Addr, loc),
				controller.NewUseCases(congestionUC, ingestUC),
				live,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					serverErr <- err
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			case err := <-serverErr:
				return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
			}

			// Stop taking new telemetry before the hub and the HTTP server go away
			if subscriber != nil {
				subscriber.Stop()
			}

			// Websocket connections are hijacked, so Shutdown does not wait for them
			stopHub()

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
