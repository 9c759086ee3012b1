package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/mock"
	controller "github.com/resumediff/resumediff/pkg/controller/http"
	"github.com/resumediff/resumediff/pkg/domain/model"
	"github.com/resumediff/resumediff/pkg/extract"
	"github.com/resumediff/resumediff/pkg/usecase"
)

// newTestServer builds a server whose LLM always replies with the given text
func newTestServer(t *testing.T, llmReply string) *controller.Server {
	t.Helper()

	client := &mock.LLMClientMock{
		NewSessionFunc: func(ctx context.Context, opts ...gollem.SessionOption) (gollem.Session, error) {
			return &mock.SessionMock{
				GenerateFunc: func(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{llmReply}}, nil
				},
			}, nil
		},
	}

	uc, err := usecase.NewCompare(client)
	if err != nil {
		t.Fatalf("Failed to create use case: %v", err)
	}

	server, err := controller.NewServer(
		context.Background(),
		uc,
		extract.New(10*1024*1024, 100000),
		controller.WithAddr("localhost:0"),
	)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, "{}")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if status.Status != "ok" {
		t.Errorf("Status = %v, want ok", status.Status)
	}

	if status.Service != "resumediff" {
		t.Errorf("Service = %v, want resumediff", status.Service)
	}

	if status.Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestRootEndpoint(t *testing.T) {
	server := newTestServer(t, "{}")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var info model.ServiceInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if info.Message == "" {
		t.Error("Message should not be empty")
	}

	if info.Endpoints["health"] != "/health" {
		t.Errorf("Endpoints[health] = %v, want /health", info.Endpoints["health"])
	}

	if info.Endpoints["compare"] != "/api/compare" {
		t.Errorf("Endpoints[compare] = %v, want /api/compare", info.Endpoints["compare"])
	}
}

func TestUnknownRoute(t *testing.T) {
	server := newTestServer(t, "{}")

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusNotFound)
	}
}
