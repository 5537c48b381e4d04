// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API used by the page builder: demo
// authentication, the page dashboard, editing sessions, previews, exports
// and the section catalog.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pagesmith/internal/middleware"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/render"
	"github.com/olegiv/pagesmith/internal/service"
	"github.com/olegiv/pagesmith/internal/workspace"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// maxImportBytes bounds uploaded export documents.
const maxImportBytes = 5 << 20

// Config holds the dependencies of the API handlers.
type Config struct {
	Pages      *service.Pages
	Workspaces *workspace.Manager
	Renderer   *render.Renderer
	Sessions   *scs.SessionManager
	Events     *service.EventService
	Logger     *slog.Logger
	// TransferLimit, when set, wraps the import and export routes.
	TransferLimit func(http.Handler) http.Handler
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	pages         *service.Pages
	workspaces    *workspace.Manager
	renderer      *render.Renderer
	sessions      *scs.SessionManager
	events        *service.EventService
	logger        *slog.Logger
	transferLimit func(http.Handler) http.Handler
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := cfg.TransferLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	return &Handler{
		pages:         cfg.Pages,
		workspaces:    cfg.Workspaces,
		renderer:      cfg.Renderer,
		sessions:      cfg.Sessions,
		events:        cfg.Events,
		logger:        logger,
		transferLimit: limit,
	}
}

// Routes registers the API on r. It is meant to be mounted under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.Status)
	r.Get("/catalog", h.Catalog)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/demo", h.DemoLogin)
		r.Post("/logout", h.Logout)
		r.With(middleware.RequireUser).Get("/me", h.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)

		r.Route("/pages", func(r chi.Router) {
			r.Get("/", h.ListPages)
			r.Post("/", h.CreatePage)
			r.With(h.transferLimit).Post("/import", h.ImportPage)
			r.With(h.transferLimit).Post("/import/validate", h.ValidateImport)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetPage)
				r.Delete("/", h.DeletePage)
				r.Post("/duplicate", h.DuplicatePage)
				r.With(h.transferLimit).Get("/export", h.ExportPage)
				r.With(h.transferLimit).Get("/static", h.StaticExport)
			})
		})

		r.Route("/editor/{id}", func(r chi.Router) {
			r.Post("/open", h.OpenEditor)
			r.Get("/", h.EditorState)
			r.Delete("/", h.CloseEditor)

			r.Post("/sections", h.AddSection)
			r.Patch("/sections/{sid}", h.UpdateSection)
			r.Delete("/sections/{sid}", h.DeleteSection)
			r.Post("/sections/{sid}/duplicate", h.DuplicateSection)
			r.Post("/sections/{sid}/move", h.MoveSection)
			r.Post("/sections/{sid}/select", h.SelectSection)
			r.Delete("/selection", h.ClearSelection)

			r.Put("/title", h.UpdateTitle)
			r.Put("/slug", h.UpdateSlug)
			r.Put("/settings", h.UpdateSettings)
			r.Put("/publish", h.SetPublished)

			r.Post("/undo", h.Undo)
			r.Post("/redo", h.Redo)
			r.Post("/save", h.Save)
			r.Get("/preview", h.Preview)
		})
	})
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains listing metadata.
type Meta struct {
	Total int64 `json:"total"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 400 response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusBadRequest, "validation_error", "Validation failed", fieldErrors)
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}

// writeDomainError maps the typed errors of the model package to HTTP
// responses. Anything else is logged and reported as a 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *model.ValidationError
	var nf *model.NotFoundError
	switch {
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "document"
		}
		WriteValidationError(w, map[string]string{field: ve.Message})
	case errors.As(err, &nf):
		WriteNotFound(w, capitalizeFirst(nf.Entity)+" not found")
	default:
		h.logger.Error("api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		WriteInternalError(w, "Something went wrong. Please try again.")
	}
}

// decodeJSON decodes a bounded JSON body into v. It writes a 400 and returns
// false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

// currentUser returns the signed-in user's id. Routes behind RequireUser
// always have one.
func currentUser(r *http.Request) string {
	id, _ := middleware.CurrentUserID(r.Context())
	return id
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
