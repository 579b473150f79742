// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"gracewell/internal/core/version"
	"gracewell/internal/modkit/httpkit"
	"gracewell/internal/modkit/repokit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	DisplayName string
	StartedAt   time.Time
	Pingers     map[string]repokit.Pinger
	Now         func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.GetJSON(r, "/health", h.health)
	httpkit.GetJSON(r, "/ready", h.ready)
	httpkit.GetJSON(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	Status    string `json:"status"    example:"healthy"`
	Service   string `json:"service"   example:"Holistic Wellness API"`
	Version   string `json:"version"   example:"v0.3.0"`
	Started   string `json:"started"   example:"2026-10-17T13:00:00Z"`
	Timestamp string `json:"timestamp" example:"2026-10-17T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-17T13:05:00Z"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		Status:    "healthy",
		Service:   h.deps.DisplayName,
		Version:   version.Info(h.deps.ServiceName).Version,
		Started:   h.deps.StartedAt.UTC().Format(time.RFC3339),
		Timestamp: h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Description With no backends configured the api runs stateless and reports ok.
// @Description A single failing backend reports degraded, all failing reports fail.
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps.Pingers))
	for name := range h.deps.Pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make([]ReadyCheck, 0, len(names))
	failed := 0
	for _, name := range names {
		c := ReadyCheck{Name: name, Status: "ok"}
		if err := repokit.PingAll(ctx, 0, map[string]repokit.Pinger{name: h.deps.Pingers[name]}); err != nil {
			c.Status, c.Error = "fail", err.Error()
			failed++
		}
		checks = append(checks, c)
	}

	overall := "ok"
	switch {
	case failed > 0 && failed == len(checks):
		overall = "fail"
	case failed > 0:
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: checks,
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
