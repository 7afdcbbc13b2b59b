package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

type namedCheck struct {
	name     string
	fn       CheckFunc
	critical bool
}

type HealthHandler struct {
	checks    []namedCheck
	startTime time.Time
	version   string
}

func NewHealthHandler() *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		startTime: time.Now(),
		version:   version,
	}
}

// AddCheck registers a readiness check. A failing critical check marks the
// service DOWN; a failing non-critical one marks it DEGRADED.
func (h *HealthHandler) AddCheck(name string, critical bool, fn CheckFunc) {
	h.checks = append(h.checks, namedCheck{name: name, fn: fn, critical: critical})
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the Go process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.response("UP", map[string]Check{"process": {Status: "UP"}}))
}

// Ready checks if the service is ready to accept traffic (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check, len(h.checks))
	status := "UP"
	httpStatus := http.StatusOK

	for _, c := range h.checks {
		check := h.run(r.Context(), c)
		checks[c.name] = check
		if check.Status == "UP" {
			continue
		}
		if c.critical {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		} else if status == "UP" {
			status = "DEGRADED"
		}
	}

	writeJSON(w, httpStatus, h.response(status, checks))
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) run(ctx context.Context, c namedCheck) Check {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.fn(ctx); err != nil {
		log.Warn().Err(err).Str("check", c.name).Msg("Readiness check failed")
		return Check{Status: "DOWN", Message: err.Error()}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) response(status string, checks map[string]Check) HealthResponse {
	return HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
}
