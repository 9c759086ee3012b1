package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/urfave/cli/v3"
)

// OpenAI holds OpenAI LLM configuration
type OpenAI struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Flags returns CLI flags for OpenAI configuration
func (c *OpenAI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Required:    true,
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("RESUMEDIFF_OPENAI_API_KEY", "OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "openai-model",
			Usage:       "OpenAI model to use",
			Value:       "gpt-4o-mini",
			Destination: &c.Model,
			Sources:     cli.EnvVars("RESUMEDIFF_OPENAI_MODEL"),
		},
		&cli.DurationFlag{
			Name:        "openai-timeout",
			Usage:       "Timeout for a single OpenAI request",
			Value:       60 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("RESUMEDIFF_OPENAI_TIMEOUT"),
		},
	}
}

// Configure creates a gollem LLM client for the configured model
func (c *OpenAI) Configure(ctx context.Context) (gollem.LLMClient, error) {
	client, err := openai.New(ctx, c.APIKey, openai.WithModel(c.Model))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create OpenAI client")
	}
	return client, nil
}
