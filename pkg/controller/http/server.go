package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/resumediff/resumediff/pkg/domain/interfaces"
	"github.com/resumediff/resumediff/pkg/extract"
)

// config holds internal HTTP server configuration
type config struct {
	addr           string
	allowedOrigins []string
	maxUploadSize  int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithAllowedOrigins sets the CORS allowed origins
func WithAllowedOrigins(origins []string) Option {
	return func(c *config) {
		c.allowedOrigins = origins
	}
}

// WithMaxUploadSize sets the maximum accepted upload size in bytes
func WithMaxUploadSize(size int64) Option {
	return func(c *config) {
		c.maxUploadSize = size
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	compareUC interfaces.CompareUseCase,
	extractor *extract.Extractor,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:           "0.0.0.0:8000",
		allowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		maxUploadSize:  10 * 1024 * 1024,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Liveness
	router.Get("/", handleRoot)
	router.Get("/health", handleHealth)

	// Comparison endpoint
	compareHandler := NewCompareHandler(compareUC, extractor, cfg.maxUploadSize)
	router.Post("/api/compare", compareHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
