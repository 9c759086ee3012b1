package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "ok",
		Service: types.AppName,
		Version: types.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// handleRoot handles liveness and discovery requests
func handleRoot(w http.ResponseWriter, r *http.Request) {
	info := &model.ServiceInfo{
		Message: "Welcome to Resume Diff AI API",
		Service: types.AppName,
		Version: types.Version,
		Endpoints: map[string]string{
			"health":  "/health",
			"compare": "/api/compare",
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode root response", "error", err)
	}
}
