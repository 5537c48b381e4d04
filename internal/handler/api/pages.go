// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pagesmith/internal/editor"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/render"
)

// CreatePageRequest represents the request body for creating a page.
type CreatePageRequest struct {
	Title string `json:"title"`
}

// ListPages lists the signed-in user's pages, most recently updated first.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	list, err := h.pages.List(r.Context(), currentUser(r))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if list == nil {
		list = []model.PageSummary{}
	}
	WriteSuccess(w, list, &Meta{Total: int64(len(list))})
}

// CreatePage creates an empty page for the signed-in user.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req CreatePageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := h.pages.Create(r.Context(), currentUser(r), req.Title)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteCreated(w, page)
}

// GetPage returns a stored page.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requireOwnedPage(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, page, nil)
}

// DeletePage removes a page and closes every editing session on it.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requireOwnedPage(w, r)
	if !ok {
		return
	}
	if err := h.pages.Delete(r.Context(), page.ID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.workspaces.CloseAll(page.ID)
	w.WriteHeader(http.StatusNoContent)
}

// DuplicatePage saves a copy of a page.
func (h *Handler) DuplicatePage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requireOwnedPage(w, r)
	if !ok {
		return
	}
	dup, err := h.pages.Duplicate(r.Context(), page.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteCreated(w, dup)
}

// ExportPage downloads the export document of a stored page.
func (h *Handler) ExportPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.requireOwnedPage(w, r)
	if !ok {
		return
	}
	text, err := h.pages.ExportAsText(r.Context(), page.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(downloadBase(page)+".json"))
	_, _ = io.WriteString(w, text)
}

// ImportPage creates a page from an uploaded export document.
func (h *Handler) ImportPage(w http.ResponseWriter, r *http.Request) {
	text, ok := readImportBody(w, r)
	if !ok {
		return
	}
	userID := currentUser(r)
	page, err := h.pages.ImportFromText(r.Context(), text, userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteCreated(w, page)
}

// ValidateImport reports whether an export document would import cleanly.
func (h *Handler) ValidateImport(w http.ResponseWriter, r *http.Request) {
	text, ok := readImportBody(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, h.pages.ValidateImport(text), nil)
}

// StaticExport downloads the page as a standalone HTML file or zip archive.
// Open editing sessions are exported as currently edited.
func (h *Handler) StaticExport(w http.ResponseWriter, r *http.Request) {
	opts, err := parseExportOptions(r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	page, ok := h.requireOwnedPage(w, r)
	if !ok {
		return
	}
	if live := h.sessionPage(currentUser(r), page.ID); live != nil {
		page = live
	}

	artifact, err := h.renderer.Package(page, opts)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	_ = h.events.LogExportEvent(r.Context(), model.EventLevelInfo, "Static export", currentUser(r), map[string]any{
		"page_id":  page.ID,
		"filename": artifact.Filename,
	})

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", attachment(artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	_, _ = w.Write(artifact.Data)
}

// requireOwnedPage loads the page named by the {id} URL parameter. Pages of
// other users are reported as not found.
func (h *Handler) requireOwnedPage(w http.ResponseWriter, r *http.Request) (*model.Page, bool) {
	id := chi.URLParam(r, "id")
	page, err := h.pages.Load(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return nil, false
	}
	if page.OwnerID != currentUser(r) {
		WriteNotFound(w, "Page not found")
		return nil, false
	}
	return page, true
}

// sessionPage returns the page of the user's open session, or nil.
func (h *Handler) sessionPage(userID, pageID string) *model.Page {
	var page *model.Page
	_ = h.workspaces.With(userID, pageID, func(e *editor.Engine) error {
		page = e.Page()
		return nil
	})
	return page
}

func readImportBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "Import document is too large", nil)
			return "", false
		}
		WriteBadRequest(w, "Failed to read request body", nil)
		return "", false
	}
	return string(data), true
}

// parseExportOptions reads export options from the query string. Missing
// parameters keep their defaults.
func parseExportOptions(r *http.Request) (render.ExportOptions, error) {
	opts := render.DefaultExportOptions()
	q := r.URL.Query()
	fields := []struct {
		name string
		dst  *bool
	}{
		{"images", &opts.IncludeImages},
		{"css", &opts.IncludeCustomCSS},
		{"js", &opts.IncludeCustomJS},
		{"analytics", &opts.IncludeAnalytics},
		{"seo", &opts.OptimizeForSEO},
		{"minify", &opts.Minify},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, &model.ValidationError{Field: f.name, Message: "must be true or false"}
		}
		*f.dst = v
	}
	return opts, nil
}

func downloadBase(page *model.Page) string {
	if page.Slug == "" {
		return "website"
	}
	return page.Slug
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
