// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers that sit outside the JSON API:
// health probes, published pages, robots.txt and the sitemap.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/olegiv/pagesmith/internal/middleware"
	"github.com/olegiv/pagesmith/internal/scheduler"
	"github.com/olegiv/pagesmith/internal/version"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// Pinger is implemented by stores that can verify their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionCounter reports the number of open editor sessions.
type SessionCounter interface {
	Len() int
}

// JobLister lists scheduled jobs.
type JobLister interface {
	List() []scheduler.JobInfo
}

// HealthConfig wires the dependencies of a HealthHandler. Every field is
// optional.
type HealthConfig struct {
	Store    Pinger
	DataDir  string
	Sessions SessionCounter
	Jobs     JobLister
	Version  version.Info
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     Pinger
	dataDir   string
	sessions  SessionCounter
	jobs      JobLister
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	return &HealthHandler{
		store:     cfg.Store,
		dataDir:   cfg.DataDir,
		sessions:  cfg.Sessions,
		jobs:      cfg.Jobs,
		version:   cfg.Version,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed health response for signed-in callers.
type HealthStatus struct {
	Status         string              `json:"status"`
	Timestamp      time.Time           `json:"timestamp"`
	Uptime         string              `json:"uptime"`
	Version        string              `json:"version"`
	Checks         map[string]Check    `json:"checks"`
	EditorSessions int                 `json:"editor_sessions"`
	Jobs           []scheduler.JobInfo `json:"jobs,omitempty"`
	System         *SystemInfo         `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health.
// Anonymous callers get the overall status only.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r.Context())
	diskCheck := h.checkDiskSpace()

	overallStatus := statusHealthy
	if storeCheck.Status != statusHealthy || diskCheck.Status != statusHealthy {
		overallStatus = statusDegraded
	}

	w.Header().Set(HeaderContentType, contentTypeJSON)
	if overallStatus != statusHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if !isAuthenticated(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: overallStatus})
		return
	}

	status := HealthStatus{
		Status:    overallStatus,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.versionString(),
		Checks: map[string]Check{
			"store": storeCheck,
			"disk":  diskCheck,
		},
	}
	if h.sessions != nil {
		status.EditorSessions = h.sessions.Len()
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.List()
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r.Context())

	w.Header().Set(HeaderContentType, contentTypeJSON)

	if storeCheck.Status == statusHealthy {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
		})
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	resp := map[string]string{
		"status": "not_ready",
	}
	// Error details only for signed-in callers
	if isAuthenticated(r) {
		resp["message"] = storeCheck.Message
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func isAuthenticated(r *http.Request) bool {
	_, ok := middleware.CurrentUserID(r.Context())
	return ok
}

func (h *HealthHandler) versionString() string {
	if h.version.Version == "" {
		return "dev"
	}
	return h.version.Version
}

// checkStore verifies the page store is reachable. Stores without a
// connection (the in-memory one) are always healthy.
func (h *HealthHandler) checkStore(ctx context.Context) Check {
	if h.store == nil {
		return Check{Status: statusHealthy, Message: "In-memory"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  statusUnhealthy,
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	return Check{
		Status:  statusHealthy,
		Message: "Connected",
		Latency: latency.String(),
	}
}

// checkDiskSpace checks available disk space in the data directory.
func (h *HealthHandler) checkDiskSpace() Check {
	if h.dataDir == "" {
		return Check{Status: statusHealthy, Message: "No data directory"}
	}
	if _, err := os.Stat(h.dataDir); os.IsNotExist(err) {
		return Check{
			Status:  statusHealthy,
			Message: "Data directory does not exist yet",
		}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(h.dataDir, &stat); err != nil {
		return Check{
			Status:  statusUnhealthy,
			Message: "Failed to check disk space: " + err.Error(),
		}
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize) //nolint:gosec // block size is positive
	available := formatBytes(availableBytes)

	const minSpace = 100 * 1024 * 1024 // 100MB
	if availableBytes < minSpace {
		return Check{
			Status:  statusDegraded,
			Message: "Low disk space: " + available + " available",
		}
	}

	return Check{
		Status:  statusHealthy,
		Message: available + " available",
	}
}

func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
