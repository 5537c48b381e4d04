// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/middleware"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/render"
	"github.com/olegiv/pagesmith/internal/seo"
	"github.com/olegiv/pagesmith/internal/service"
	"github.com/olegiv/pagesmith/internal/testutil"
	"github.com/olegiv/pagesmith/internal/workspace"
)

// testUserHeader lets tests act as a user without a session cookie.
const testUserHeader = "X-Test-User"

type testAPI struct {
	router     http.Handler
	pages      *service.Pages
	workspaces *workspace.Manager
	sessions   *scs.SessionManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	pages, factory := testutil.TestPages(t)
	ws := workspace.NewManager(pages, workspace.Config{Factory: factory})
	renderer, err := render.New(render.Config{Site: seo.SiteConfig{SiteName: "Test Site"}})
	require.NoError(t, err)

	sm := scs.New()
	sm.Store = memstore.New()

	h := NewHandler(Config{
		Pages:      pages,
		Workspaces: ws,
		Renderer:   renderer,
		Sessions:   sm,
	})

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.LoadUser(sm))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get(testUserHeader); id != "" {
				r = r.WithContext(middleware.WithUserID(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Route("/api", h.Routes)

	return &testAPI{router: r, pages: pages, workspaces: ws, sessions: sm}
}

// do sends a request as user (anonymous when empty) with an optional JSON body.
func (a *testAPI) do(t *testing.T, user, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success response.
func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T     `json:"data"`
		Meta *Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

// assertErrorResponse unmarshals and validates an error response.
func assertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, code, resp.Error.Code)
	return resp
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())
}

func TestWriteSuccessAndCreated(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"name": "test"}, &Meta{Total: 3})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"name":"test"},"meta":{"total":3}}`, w.Body.String())

	w = httptest.NewRecorder()
	WriteCreated(w, map[string]string{"id": "123"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestWriteErrors(t *testing.T) {
	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "Bad input", nil) }, http.StatusBadRequest, "bad_request"},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "Missing") }, http.StatusNotFound, "not_found"},
		{"unauthorized", func(w http.ResponseWriter) { WriteUnauthorized(w, "No") }, http.StatusUnauthorized, "unauthorized"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "Boom") }, http.StatusInternalServerError, "internal_error"},
		{"validation", func(w http.ResponseWriter) {
			WriteValidationError(w, map[string]string{"slug": "taken"})
		}, http.StatusBadRequest, "validation_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)
			assertErrorResponse(t, w, tt.status, tt.code)
		})
	}
}

func TestWriteDomainError(t *testing.T) {
	h := NewHandler(Config{})
	req := httptest.NewRequest(http.MethodGet, "/api/pages/x", nil)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &model.ValidationError{Field: "slug", Message: "taken"}, http.StatusBadRequest, "validation_error"},
		{"wrapped validation", fmt.Errorf("saving: %w", &model.ValidationError{Message: "bad"}), http.StatusBadRequest, "validation_error"},
		{"not found", &model.NotFoundError{Entity: "section", ID: "s1"}, http.StatusNotFound, "not_found"},
		{"persistence", &model.PersistenceError{Op: "save page", Err: io.ErrUnexpectedEOF}, http.StatusInternalServerError, "internal_error"},
		{"other", io.EOF, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.writeDomainError(w, req, tt.err)
			resp := assertErrorResponse(t, w, tt.status, tt.code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, resp.Error.Message, "EOF", "internal details must not leak")
			}
		})
	}

	w := httptest.NewRecorder()
	h.writeDomainError(w, req, &model.NotFoundError{Entity: "section", ID: "s1"})
	resp := assertErrorResponse(t, w, http.StatusNotFound, "not_found")
	assert.Equal(t, "Section not found", resp.Error.Message)
}

func TestStatusAndCatalog(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, "", http.MethodGet, "/api/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeData[StatusResponse](t, w).Status)

	w = api.do(t, "", http.MethodGet, "/api/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decodeData[[]struct {
		Type     model.SectionType `json:"type"`
		Variants []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"variants"`
	}](t, w)
	require.Len(t, entries, len(catalog.Types()))
	assert.Equal(t, catalog.Types()[0], entries[0].Type)
	for _, e := range entries {
		assert.NotEmpty(t, e.Variants, "type %s has no variants", e.Type)
		assert.Equal(t, catalog.DefaultVariant(e.Type), e.Variants[0].ID)
	}
}

func TestProtectedRoutesRequireUser(t *testing.T) {
	api := newTestAPI(t)

	for _, target := range []string{"/api/pages", "/api/auth/me", "/api/editor/x"} {
		w := api.do(t, "", http.MethodGet, target, nil)
		assertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
	}
}
