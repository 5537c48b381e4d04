// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/editor"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/render"
	"github.com/olegiv/pagesmith/internal/workspace"
)

// AddSectionRequest represents the request body for adding a section.
// An empty variant selects the first variant of the type.
type AddSectionRequest struct {
	Type    model.SectionType `json:"type"`
	Variant string            `json:"variant"`
}

// UpdateSectionRequest represents a partial section update.
type UpdateSectionRequest struct {
	Content map[string]any    `json:"content"`
	Styles  *model.StylePatch `json:"styles"`
}

// MoveSectionRequest represents the request body for moving a section.
type MoveSectionRequest struct {
	Direction string `json:"direction"`
}

// TitleRequest represents the request body for renaming a page.
type TitleRequest struct {
	Title string `json:"title"`
}

// SlugRequest represents the request body for pinning a slug.
type SlugRequest struct {
	Slug string `json:"slug"`
}

// PublishRequest represents the request body for toggling publication.
type PublishRequest struct {
	Published bool `json:"published"`
}

// SectionResponse is returned by operations that create a section.
type SectionResponse struct {
	Section *model.Section  `json:"section"`
	State   workspace.State `json:"state"`
}

// HistoryResponse is returned by undo and redo.
type HistoryResponse struct {
	Changed bool            `json:"changed"`
	State   workspace.State `json:"state"`
}

// OpenEditor starts or resumes the user's editing session on a page.
func (h *Handler) OpenEditor(w http.ResponseWriter, r *http.Request) {
	st, err := h.workspaces.Open(r.Context(), currentUser(r), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteSuccess(w, st, nil)
}

// EditorState returns the state of an open session.
func (h *Handler) EditorState(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(*editor.Engine) error { return nil })
}

// CloseEditor drops the session and its unsaved changes.
func (h *Handler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	if !h.workspaces.Close(currentUser(r), chi.URLParam(r, "id")) {
		WriteNotFound(w, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSection appends a section built from catalog defaults.
func (h *Handler) AddSection(w http.ResponseWriter, r *http.Request) {
	var req AddSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	variant := strings.TrimSpace(req.Variant)
	if variant == "" {
		variant = catalog.DefaultVariant(req.Type)
	}

	var resp SectionResponse
	err := h.workspaces.With(currentUser(r), chi.URLParam(r, "id"), func(e *editor.Engine) error {
		s, err := e.AddSection(req.Type, variant)
		if err != nil {
			return err
		}
		resp = SectionResponse{Section: s, State: workspace.Snapshot(e)}
		return nil
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteCreated(w, resp)
}

// UpdateSection merges content and style patches into a section.
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	var req UpdateSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	sid := chi.URLParam(r, "sid")
	h.edit(w, r, func(e *editor.Engine) error {
		return e.UpdateSection(sid, req.Content, req.Styles)
	})
}

// DeleteSection removes a section.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	h.edit(w, r, func(e *editor.Engine) error {
		return e.DeleteSection(sid)
	})
}

// DuplicateSection inserts a copy of a section after it.
func (h *Handler) DuplicateSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	var resp SectionResponse
	err := h.workspaces.With(currentUser(r), chi.URLParam(r, "id"), func(e *editor.Engine) error {
		s, err := e.DuplicateSection(sid)
		if err != nil {
			return err
		}
		resp = SectionResponse{Section: s, State: workspace.Snapshot(e)}
		return nil
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteCreated(w, resp)
}

// MoveSection swaps a section with its neighbour.
func (h *Handler) MoveSection(w http.ResponseWriter, r *http.Request) {
	var req MoveSectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	dir, err := editor.ParseDirection(req.Direction)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	sid := chi.URLParam(r, "sid")
	h.edit(w, r, func(e *editor.Engine) error {
		return e.MoveSection(sid, dir)
	})
}

// SelectSection marks a section as active.
func (h *Handler) SelectSection(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	h.edit(w, r, func(e *editor.Engine) error {
		return e.Select(sid)
	})
}

// ClearSelection clears the active section.
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.edit(w, r, func(e *editor.Engine) error {
		return e.Select("")
	})
}

// UpdateTitle renames the page.
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.edit(w, r, func(e *editor.Engine) error {
		e.UpdateTitle(req.Title)
		return nil
	})
}

// UpdateSlug pins the slug, or returns to deriving it when empty.
func (h *Handler) UpdateSlug(w http.ResponseWriter, r *http.Request) {
	var req SlugRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.edit(w, r, func(e *editor.Engine) error {
		return e.UpdateSlug(strings.TrimSpace(req.Slug))
	})
}

// UpdateSettings applies SEO and custom code settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req editor.SettingsPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	h.edit(w, r, func(e *editor.Engine) error {
		e.UpdateSettings(req)
		return nil
	})
}

// SetPublished toggles publication. The change is stored on the next save.
func (h *Handler) SetPublished(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.edit(w, r, func(e *editor.Engine) error {
		e.SetPublished(req.Published)
		return nil
	})
}

// Undo restores the previous snapshot.
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, (*editor.Engine).Undo)
}

// Redo reapplies the next snapshot.
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, (*editor.Engine).Redo)
}

// Save persists the session's page.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := currentUser(r)
	pageID := chi.URLParam(r, "id")
	saved, err := h.workspaces.Save(r.Context(), userID, pageID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteSuccess(w, saved, nil)
}

// Preview renders the session's page as an interactive preview document.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	viewport, err := render.ParseViewport(r.URL.Query().Get("viewport"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var html string
	err = h.workspaces.With(currentUser(r), chi.URLParam(r, "id"), func(e *editor.Engine) error {
		selected := r.URL.Query().Get("selected")
		if selected == "" {
			selected = e.ActiveSectionID()
		}
		var err error
		html, err = h.renderer.RenderPreview(e.Live(), render.PreviewOptions{
			SelectedID: selected,
			Viewport:   viewport,
		})
		return err
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, html)
}

// edit runs fn on the session engine and responds with the resulting state.
func (h *Handler) edit(w http.ResponseWriter, r *http.Request, fn func(*editor.Engine) error) {
	var st workspace.State
	err := h.workspaces.With(currentUser(r), chi.URLParam(r, "id"), func(e *editor.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		st = workspace.Snapshot(e)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteSuccess(w, st, nil)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request, step func(*editor.Engine) bool) {
	var resp HistoryResponse
	err := h.workspaces.With(currentUser(r), chi.URLParam(r, "id"), func(e *editor.Engine) error {
		resp.Changed = step(e)
		resp.State = workspace.Snapshot(e)
		return nil
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	WriteSuccess(w, resp, nil)
}
