// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// Content types of export artifacts.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeZip  = "application/zip"
)

// Artifact is a downloadable export.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// zipEpoch is used as the file time of pages that were never saved.
var zipEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Package renders page and wraps it for download. With IncludeImages the
// result is a zip archive holding index.html and a README, otherwise a
// single HTML file.
func (r *Renderer) Package(page *model.Page, opts ExportOptions) (*Artifact, error) {
	doc, err := r.RenderStaticSite(page, opts)
	if err != nil {
		return nil, err
	}

	base := page.Slug
	if base == "" {
		base = "website"
	}

	if !opts.IncludeImages {
		return &Artifact{
			Filename:    base + ".html",
			ContentType: ContentTypeHTML,
			Data:        []byte(doc),
		}, nil
	}

	modified := zipEpoch
	if !page.UpdatedAt.IsZero() {
		modified = page.UpdatedAt.UTC()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := []struct {
		name string
		data string
	}{
		{"index.html", doc},
		{"README.md", readme(page)},
	}
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", f.name, err)
		}
		if _, err := w.Write([]byte(f.data)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return &Artifact{
		Filename:    base + ".zip",
		ContentType: ContentTypeZip,
		Data:        buf.Bytes(),
	}, nil
}

func readme(page *model.Page) string {
	return "# " + pageTitle(page) + "\n\n" +
		"Exported from Pagesmith\n\n" +
		"To use:\n" +
		"1. Open index.html in a web browser\n" +
		"2. Upload to your web server\n" +
		"3. Customize as needed\n"
}
