package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr           string
	AllowedOrigins []string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "0.0.0.0:8000",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RESUMEDIFF_ADDR"),
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origins",
			Usage:       "CORS allowed origins",
			Value:       []string{"http://localhost:5173", "http://localhost:3000"},
			Destination: &c.AllowedOrigins,
			Sources:     cli.EnvVars("RESUMEDIFF_ALLOWED_ORIGINS"),
		},
	}
}
