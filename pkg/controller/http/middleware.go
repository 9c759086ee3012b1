package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
)

// LoggingMiddleware returns a middleware that logs HTTP requests
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// writeError writes an error response. Server-side failures are reported to
// Sentry when a DSN is configured.
func writeError(ctx context.Context, w http.ResponseWriter, err error, status int) {
	if status >= http.StatusInternalServerError {
		if hub := sentry.CurrentHub(); hub.Client() != nil {
			hub.CaptureException(err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); encErr != nil {
		ctxlog.From(ctx).Error("Failed to encode error response", "error", encErr)
	}
}
