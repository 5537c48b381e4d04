// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render turns pages into HTML: the standalone document produced by
// static export and the interactive document shown in the editor preview.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/tdewolff/minify/v2"

	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/seo"
)

//go:embed templates
var templatesFS embed.FS

// GeneratorComment is appended to every exported document.
const GeneratorComment = "<!-- Generated with Pagesmith -->"

// Renderer renders pages using the embedded section templates.
// It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	sections  map[model.SectionType]sectionFunc
	rich      *richText
	minifier  *minify.M
	site      seo.SiteConfig
	logger    *slog.Logger
	baseCSS   string
	uiCSS     string
}

// Config holds renderer configuration.
type Config struct {
	Site   seo.SiteConfig
	Logger *slog.Logger
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS,
		"templates/layouts/*.html",
		"templates/sections/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	base, err := templatesFS.ReadFile("templates/base.css")
	if err != nil {
		return nil, fmt.Errorf("reading base stylesheet: %w", err)
	}
	ui, err := templatesFS.ReadFile("templates/preview.css")
	if err != nil {
		return nil, fmt.Errorf("reading preview stylesheet: %w", err)
	}

	r := &Renderer{
		templates: tmpl,
		sections:  make(map[model.SectionType]sectionFunc, len(sectionFuncs)),
		rich:      newRichText(),
		minifier:  newMinifier(),
		site:      cfg.Site,
		logger:    logger,
		baseCSS:   string(base),
		uiCSS:     string(ui),
	}
	for t, fn := range sectionFuncs {
		if r.templates.Lookup(sectionTemplate(t)) == nil {
			return nil, fmt.Errorf("missing template for section type %q", t)
		}
		r.sections[t] = fn
	}
	return r, nil
}

// templateFuncs returns the template function map.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
	}
}

func sectionTemplate(t model.SectionType) string {
	return "section/" + string(t)
}

// sectionData is passed to every section template.
type sectionData struct {
	ID      string
	Type    model.SectionType
	Variant string
	C       any
}

type errorData struct {
	ID      string
	Type    model.SectionType
	Message string
}

// errUnknownType is returned for sections whose type has no renderer.
var errUnknownType = errors.New("unknown section type")

// RenderSection renders a single section to HTML. A section that cannot be
// rendered yields an error block in its place and the cause is logged.
func (r *Renderer) RenderSection(s *model.Section) template.HTML {
	out, err := r.renderSection(s)
	if err == nil {
		return out
	}
	r.logger.Warn("section render failed",
		"section_id", s.ID, "type", s.Type, "error", err)

	msg := "This section could not be rendered."
	if errors.Is(err, errUnknownType) {
		msg = "Unknown section type: " + string(s.Type)
	}
	return r.errorBlock(s, msg)
}

func (r *Renderer) renderSection(s *model.Section) (template.HTML, error) {
	fn, ok := r.sections[s.Type]
	if !ok {
		return "", fmt.Errorf("%w %q", errUnknownType, s.Type)
	}
	view, err := fn(r, s)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	data := sectionData{ID: s.ID, Type: s.Type, Variant: cssIdent(s.Variant), C: view}
	if err := r.templates.ExecuteTemplate(&buf, sectionTemplate(s.Type), data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", s.Type, err)
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}

func (r *Renderer) errorBlock(s *model.Section, msg string) template.HTML {
	var buf bytes.Buffer
	err := r.templates.ExecuteTemplate(&buf, "section/error", errorData{ID: s.ID, Type: s.Type, Message: msg})
	if err != nil {
		r.logger.Error("error block render failed", "error", err)
		return template.HTML(`<section class="section-error"></section>`)
	}
	return template.HTML(buf.String()) //nolint:gosec // produced by html/template
}

// renderSections renders sections in display order together with their
// scoped styles.
func (r *Renderer) renderSections(sections []model.Section) ([]template.HTML, string) {
	ordered := model.SortedByOrder(sections)
	out := make([]template.HTML, len(ordered))
	var css strings.Builder
	for i := range ordered {
		out[i] = r.RenderSection(&ordered[i])
		css.WriteString(sectionCSS(&ordered[i]))
	}
	return out, css.String()
}

func pageTitle(page *model.Page) string {
	if t := strings.TrimSpace(page.SEOTitle); t != "" {
		return t
	}
	if t := strings.TrimSpace(page.Title); t != "" {
		return t
	}
	return "Untitled"
}
