// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"errors"
	"html/template"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"

	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/seo"
)

// ExportOptions controls what a static export contains.
type ExportOptions struct {
	IncludeImages    bool `json:"includeImages"`
	IncludeCustomCSS bool `json:"includeCustomCss"`
	IncludeCustomJS  bool `json:"includeCustomJs"`
	IncludeAnalytics bool `json:"includeAnalytics"`
	OptimizeForSEO   bool `json:"optimizeForSeo"`
	Minify           bool `json:"minify"`
}

// DefaultExportOptions returns the options used when none are given.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		IncludeImages:    true,
		IncludeCustomCSS: true,
		IncludeCustomJS:  true,
		IncludeAnalytics: false,
		OptimizeForSEO:   true,
		Minify:           false,
	}
}

// ErrNilPage is returned when asked to render a nil page.
var ErrNilPage = errors.New("render: nil page")

type documentData struct {
	Title     string
	Meta      *seo.Meta
	Schema    template.JS
	Analytics bool
	CSS       template.CSS
	Sections  []template.HTML
	CustomJS  template.JS
	Generator template.HTML
}

// RenderStaticSite renders page as a self-contained HTML document. The
// output depends only on the page and the options.
func (r *Renderer) RenderStaticSite(page *model.Page, opts ExportOptions) (string, error) {
	if page == nil {
		return "", ErrNilPage
	}

	sections, sectionStyles := r.renderSections(page.Sections)

	var styles strings.Builder
	styles.WriteString(r.baseCSS)
	styles.WriteString(sectionStyles)
	if opts.IncludeCustomCSS && strings.TrimSpace(page.CustomCSS) != "" {
		styles.WriteString(styleText(page.CustomCSS))
		styles.WriteString("\n")
	}

	data := documentData{
		Title:     pageTitle(page),
		Analytics: opts.IncludeAnalytics,
		CSS:       template.CSS(styles.String()), //nolint:gosec // generated and neutralized above
		Sections:  sections,
		Generator: template.HTML(GeneratorComment),
	}
	if opts.OptimizeForSEO {
		data.Meta = seo.BuildMeta(page, &r.site)
		data.Schema = seo.BuildWebPageSchema(page, &r.site)
	}
	if opts.IncludeCustomJS && strings.TrimSpace(page.CustomJS) != "" {
		data.CustomJS = template.JS(scriptText(page.CustomJS)) //nolint:gosec // author supplied script
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "document", data); err != nil {
		return "", err
	}
	out := buf.String()

	if opts.Minify {
		minified, err := r.minifier.String("text/html", out)
		if err != nil {
			r.logger.Warn("minify failed, exporting unminified", "page_id", page.ID, "error", err)
		} else {
			out = minified
		}
	}
	return out, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepComments:     true,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}
