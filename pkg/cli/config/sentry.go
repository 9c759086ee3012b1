package config

import (
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/resumediff/resumediff/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Sentry holds error reporting configuration
type Sentry struct {
	DSN         string
	Environment string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error reporting disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("RESUMEDIFF_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "production",
			Destination: &c.Environment,
			Sources:     cli.EnvVars("RESUMEDIFF_SENTRY_ENV"),
		},
	}
}

// Configure initializes the Sentry SDK. A no-op when no DSN is set.
func (c *Sentry) Configure() error {
	if c.DSN == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         c.DSN,
		Environment: c.Environment,
		Release:     types.AppName + "@" + types.Version,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize Sentry")
	}

	return nil
}
