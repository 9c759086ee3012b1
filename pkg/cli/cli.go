package cli

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/ctxlog"
	"github.com/resumediff/resumediff/pkg/cli/config"
	"github.com/resumediff/resumediff/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	// Optional .env in the working directory, flags and env vars win
	_ = godotenv.Load()

	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Resume vs job description comparison API",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
