// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDefaultCSRFConfig_Development(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, true)

	if len(cfg.AuthKey) != 32 {
		t.Errorf("expected 32-byte AuthKey, got %d bytes", len(cfg.AuthKey))
	}
	if len(cfg.TrustedOrigins) != 2 {
		t.Fatalf("expected 2 TrustedOrigins in dev mode, got %d", len(cfg.TrustedOrigins))
	}

	// The csrf library expects host:port values, not URLs.
	for _, origin := range cfg.TrustedOrigins {
		if strings.HasPrefix(origin, "http") {
			t.Errorf("TrustedOrigin should be host:port, not full URL: %s", origin)
		}
		if !strings.Contains(origin, ":") {
			t.Errorf("TrustedOrigin %q should include a port", origin)
		}
	}
}

func TestDefaultCSRFConfig_Production(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false)

	if len(cfg.TrustedOrigins) != 0 {
		t.Errorf("expected no TrustedOrigins in production, got %d", len(cfg.TrustedOrigins))
	}
}

func TestCSRF_RejectsCrossSiteRequest(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/pages", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
	var body APIError
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "csrf_failed" {
		t.Errorf("code = %q, want csrf_failed", body.Error.Code)
	}
}

func TestCSRF_AllowsSameOriginRequest(t *testing.T) {
	handler := CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/pages", nil)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCSRF_WithCustomErrorHandler(t *testing.T) {
	cfg := DefaultCSRFConfig(testAuthKey, false)
	customCalled := false
	cfg.ErrorHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customCalled = true
		http.Error(w, "Custom CSRF Error", http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/pages/1", nil)
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	w := httptest.NewRecorder()
	CSRF(cfg)(okHandler()).ServeHTTP(w, req)

	if !customCalled {
		t.Error("custom error handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestSkipCSRF_SkipsPrefixes(t *testing.T) {
	handler := SkipCSRF("/health")(CSRF(DefaultCSRFConfig(testAuthKey, false))(okHandler()))

	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/health/ready", http.StatusOK},
		{"/api/pages", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set("Sec-Fetch-Site", "cross-site")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestSkipCSRF_EmptyPaths(t *testing.T) {
	handler := SkipCSRF()(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/any/path", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestCSRFHeaderName(t *testing.T) {
	if CSRFHeaderName != "X-CSRF-Token" {
		t.Errorf("expected CSRFHeaderName='X-CSRF-Token', got '%s'", CSRFHeaderName)
	}
}
