package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resumediff/resumediff/pkg/cli/config"
	controller "github.com/resumediff/resumediff/pkg/controller/http"
	"github.com/resumediff/resumediff/pkg/extract"
	"github.com/resumediff/resumediff/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		openaiCfg config.OpenAI
		uploadCfg config.Upload
		sentryCfg config.Sentry
	)

	flags := append(serverCfg.Flags(), openaiCfg.Flags()...)
	flags = append(flags, uploadCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting resumediff server",
				slog.String("addr", serverCfg.Addr),
				slog.String("model", openaiCfg.Model),
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			// Create LLM client and use case
			llmClient, err := openaiCfg.Configure(ctx)
			if err != nil {
				return err
			}

			compareUC, err := usecase.NewCompare(llmClient,
				usecase.WithTimeout(openaiCfg.Timeout),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create compare use case")
			}

			extractor := extract.New(uploadCfg.MaxFileSize, int(uploadCfg.MaxTextLength))

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				compareUC,
				extractor,
				controller.WithAddr(serverCfg.Addr),
				controller.WithAllowedOrigins(serverCfg.AllowedOrigins),
				controller.WithMaxUploadSize(uploadCfg.MaxFileSize),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
