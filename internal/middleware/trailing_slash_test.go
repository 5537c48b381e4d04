// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripTrailingSlash(t *testing.T) {
	var seenPath string
	handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantLocation string
		wantPath     string
	}{
		{"root untouched", http.MethodGet, "/", http.StatusOK, "", "/"},
		{"no slash untouched", http.MethodGet, "/p/home", http.StatusOK, "", "/p/home"},
		{"get redirects", http.MethodGet, "/p/home/", http.StatusMovedPermanently, "/p/home", ""},
		{"query kept", http.MethodGet, "/api/pages/?x=1", http.StatusMovedPermanently, "/api/pages?x=1", ""},
		{"no open redirect", http.MethodGet, "//evil.example/", http.StatusMovedPermanently, "/evil.example", ""},
		{"post rewritten", http.MethodPost, "/api/pages/", http.StatusOK, "", "/api/pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenPath = ""
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if seenPath != tt.wantPath {
				t.Errorf("handler saw %q, want %q", seenPath, tt.wantPath)
			}
		})
	}
}
