package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/adapters/handler"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) handler.HealthResponse {
	t.Helper()
	var response handler.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return response
}

func TestHealthHandler_Health_ProcessCheck(t *testing.T) {
	h := handler.NewHealthHandler()

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	response := decodeHealth(t, rec)
	if response.Status != "UP" {
		t.Errorf("expected status 'UP', got %q", response.Status)
	}
	if _, ok := response.Checks["process"]; !ok {
		t.Error("expected 'process' check in response")
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("unreachable") }

	tests := []struct {
		name       string
		backend    handler.CheckFunc
		redis      handler.CheckFunc
		wantCode   int
		wantStatus string
	}{
		{"all up", ok, ok, http.StatusOK, "UP"},
		{"backend down is degraded", fail, ok, http.StatusOK, "DEGRADED"},
		{"redis down", ok, fail, http.StatusServiceUnavailable, "DOWN"},
		{"both down", fail, fail, http.StatusServiceUnavailable, "DOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler()
			h.AddCheck("backend", false, tt.backend)
			h.AddCheck("redis", true, tt.redis)

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			response := decodeHealth(t, rec)
			if response.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, response.Status)
			}
			if len(response.Checks) != 2 {
				t.Errorf("expected 2 checks, got %d", len(response.Checks))
			}
		})
	}
}

func TestHealthHandler_Ready_CheckMessage(t *testing.T) {
	h := handler.NewHealthHandler()
	h.AddCheck("backend", false, func(context.Context) error { return errors.New("dial tcp: refused") })

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	check := decodeHealth(t, rec).Checks["backend"]
	if check.Status != "DOWN" || check.Message != "dial tcp: refused" {
		t.Errorf("unexpected check %+v", check)
	}
}
