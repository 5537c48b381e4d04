// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/render"
	"github.com/olegiv/pagesmith/internal/seo"
	"github.com/olegiv/pagesmith/internal/service"
)

// PublicConfig wires a PublicHandler.
type PublicConfig struct {
	Pages    *service.Pages
	Renderer *render.Renderer
	Site     seo.SiteConfig
	// DisallowCrawlers makes robots.txt block every path.
	DisallowCrawlers bool
	Logger           *slog.Logger
}

// PublicHandler serves published pages and the crawler files.
type PublicHandler struct {
	pages       *service.Pages
	renderer    *render.Renderer
	site        seo.SiteConfig
	disallowAll bool
	options     render.ExportOptions
	logger      *slog.Logger
}

// NewPublicHandler creates a handler for published pages. Pages are rendered
// with the default export options.
func NewPublicHandler(cfg PublicConfig) *PublicHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicHandler{
		pages:       cfg.Pages,
		renderer:    cfg.Renderer,
		site:        cfg.Site,
		disallowAll: cfg.DisallowCrawlers,
		options:     render.DefaultExportOptions(),
		logger:      logger,
	}
}

// Page handles GET /p/{slug}. Drafts and unknown slugs are 404.
func (h *PublicHandler) Page(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.pages.LoadPublished(r.Context(), slug)
	if err != nil {
		var nf *model.NotFoundError
		if errors.As(err, &nf) {
			h.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load published page", "slug", slug, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	html, err := h.renderer.RenderStaticSite(page, h.options)
	if err != nil {
		h.logger.Error("failed to render published page", "page_id", page.ID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, contentTypeHTML)
	w.Header().Set("Content-Length", strconv.Itoa(len(html)))
	w.Header().Set("Cache-Control", "public, max-age=60")
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(html))
}

// NotFound writes a small HTML 404 page.
func (h *PublicHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(HeaderContentType, contentTypeHTML)
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundPage))
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Page not found</title></head>
<body><h1>Page not found</h1><p>The page you are looking for does not exist or is not published.</p></body>
</html>
`

// Robots handles GET /robots.txt.
func (h *PublicHandler) Robots(w http.ResponseWriter, r *http.Request) {
	content := seo.NewRobotsBuilder(seo.RobotsConfig{
		SiteURL:     h.siteURL(r),
		DisallowAll: h.disallowAll,
	}).Build()

	w.Header().Set(HeaderContentType, contentTypeText)
	_, _ = w.Write([]byte(content))
}

// Sitemap handles GET /sitemap.xml. It lists every published page.
func (h *PublicHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.List(r.Context(), "")
	if err != nil {
		h.logger.Error("failed to list pages for sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data, err := seo.GenerateSitemap(h.siteURL(r), pages)
	if err != nil {
		h.logger.Error("failed to build sitemap", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, contentTypeXML)
	_, _ = w.Write(data)
}

// siteURL returns the configured site URL, or one derived from the request.
func (h *PublicHandler) siteURL(r *http.Request) string {
	if h.site.SiteURL != "" {
		return strings.TrimSuffix(h.site.SiteURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
