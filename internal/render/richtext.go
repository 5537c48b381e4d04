// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// richText converts the markdown subset used by rich text fields to HTML.
// Raw HTML in the source is dropped and the result is sanitized.
type richText struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newRichText() *richText {
	return &richText{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render returns sanitized HTML for src. Blank input yields "".
func (rt *richText) Render(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := rt.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting rich text: %w", err)
	}
	return template.HTML(rt.policy.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized by bluemonday
}
