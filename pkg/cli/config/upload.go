package config

import "github.com/urfave/cli/v3"

// Upload holds file upload limits
type Upload struct {
	MaxFileSize   int64
	MaxTextLength int64
}

// Flags returns CLI flags for upload limits
func (c *Upload) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "max-upload-size",
			Usage:       "Maximum upload size per file in bytes",
			Value:       10 * 1024 * 1024,
			Destination: &c.MaxFileSize,
			Sources:     cli.EnvVars("RESUMEDIFF_MAX_UPLOAD_SIZE"),
		},
		&cli.Int64Flag{
			Name:        "max-text-length",
			Usage:       "Maximum extracted text length in characters",
			Value:       100000,
			Destination: &c.MaxTextLength,
			Sources:     cli.EnvVars("RESUMEDIFF_MAX_TEXT_LENGTH"),
		},
	}
}
