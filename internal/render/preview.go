// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
)

// Viewport is the device width the preview simulates.
type Viewport string

// Supported viewports.
const (
	ViewportDesktop Viewport = "desktop"
	ViewportTablet  Viewport = "tablet"
	ViewportMobile  Viewport = "mobile"
)

// ParseViewport parses a viewport name. Empty input selects desktop.
func ParseViewport(s string) (Viewport, error) {
	switch v := Viewport(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewportDesktop, nil
	case ViewportDesktop, ViewportTablet, ViewportMobile:
		return v, nil
	default:
		return "", &model.ValidationError{Field: "viewport", Message: fmt.Sprintf("unknown viewport %q", s)}
	}
}

// Width returns the CSS max-width of the viewport.
func (v Viewport) Width() string {
	switch v {
	case ViewportTablet:
		return "768px"
	case ViewportMobile:
		return "375px"
	default:
		return "100%"
	}
}

// PreviewOptions configures a preview render.
type PreviewOptions struct {
	SelectedID string
	Viewport   Viewport
}

type previewFrame struct {
	ID       string
	Type     model.SectionType
	Label    string
	Selected bool
	First    bool
	Last     bool
	HTML     template.HTML
}

type previewData struct {
	Title    string
	CSS      template.CSS
	Viewport Viewport
	Width    string
	Frames   []previewFrame
}

var acronyms = map[model.SectionType]string{
	model.SectionCTA: "CTA",
	model.SectionFAQ: "FAQ",
}

// RenderPreview renders page as the editor preview: every section wrapped
// in a selectable frame with reorder, duplicate and delete controls.
func (r *Renderer) RenderPreview(page *model.Page, opts PreviewOptions) (string, error) {
	if page == nil {
		return "", ErrNilPage
	}
	vp := opts.Viewport
	if vp == "" {
		vp = ViewportDesktop
	}

	ordered := model.SortedByOrder(page.Sections)
	var styles strings.Builder
	styles.WriteString(r.baseCSS)
	styles.WriteString(r.uiCSS)

	frames := make([]previewFrame, len(ordered))
	for i := range ordered {
		s := &ordered[i]
		frames[i] = previewFrame{
			ID:       s.ID,
			Type:     s.Type,
			Label:    sectionLabel(s),
			Selected: opts.SelectedID != "" && s.ID == opts.SelectedID,
			First:    i == 0,
			Last:     i == len(ordered)-1,
			HTML:     r.RenderSection(s),
		}
		styles.WriteString(sectionCSS(s))
	}
	if strings.TrimSpace(page.CustomCSS) != "" {
		styles.WriteString(styleText(page.CustomCSS))
		styles.WriteString("\n")
	}

	data := previewData{
		Title:    pageTitle(page),
		CSS:      template.CSS(styles.String()), //nolint:gosec // generated and neutralized above
		Viewport: vp,
		Width:    vp.Width(),
		Frames:   frames,
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "preview", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// sectionLabel names a section for the preview toolbar.
func sectionLabel(s *model.Section) string {
	label, ok := acronyms[s.Type]
	if !ok {
		// Casers are stateful and cannot be shared between goroutines.
		label = cases.Title(language.English).String(string(s.Type))
	}
	if v, ok := catalog.Variant(s.Type, s.Variant); ok {
		label += " · " + v.Name
	}
	return label
}
