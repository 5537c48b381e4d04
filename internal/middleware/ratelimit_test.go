// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"x-real-ip wins", "10.0.0.1", "10.0.0.2", "192.0.2.1:1234", "10.0.0.1"},
		{"first forwarded address", "", "10.0.0.2, 10.0.0.3", "192.0.2.1:1234", "10.0.0.2"},
		{"remote addr without port", "", "", "192.0.2.1:1234", "192.0.2.1"},
		{"remote addr without port fallback", "", "", "192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGlobalRateLimiterMiddleware(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 2)
	handler := rl.Middleware()(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want %d", codes[2], http.StatusTooManyRequests)
	}

	// A different client has its own budget.
	req := httptest.NewRequest(http.MethodGet, "/api/pages", nil)
	req.RemoteAddr = "192.0.2.11:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other client status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGlobalRateLimiterHTMLMiddleware(t *testing.T) {
	rl := NewGlobalRateLimiter(0.001, 1)
	handler := rl.HTMLMiddleware()(okHandler())

	var last *httptest.ResponseRecorder
	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/p/home", nil)
		req.RemoteAddr = "192.0.2.20:1"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, req)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", last.Code, http.StatusTooManyRequests)
	}
	if ct := last.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q, want plain text", ct)
	}
}

func TestLimiterCacheResetsWhenFull(t *testing.T) {
	lc := newLimiterCache[int](1, 1)
	for i := range maxTrackedClients {
		lc.get(i)
	}
	if lc.len() != maxTrackedClients {
		t.Fatalf("len = %d, want %d", lc.len(), maxTrackedClients)
	}

	lc.get(-1)
	if lc.len() != 1 {
		t.Errorf("len after overflow = %d, want 1", lc.len())
	}
	if lc.get(-1) != lc.get(-1) {
		t.Error("get should return the cached limiter")
	}
}
