// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo provides SEO utilities for building meta tags, structured data,
// robots.txt and sitemaps for published pages.
package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// DefaultSiteName is used when no site name is configured.
const DefaultSiteName = "Pagesmith"

// PublicPathPrefix is the path under which published pages are served.
const PublicPathPrefix = "/p/"

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // Page title (for <title> tag)
	Description   string // Meta description
	Keywords      string // Meta keywords
	Author        string // Meta author
	Canonical     string // Canonical URL
	OGTitle       string // Open Graph title
	OGDescription string // Open Graph description
	OGType        string // Open Graph type
	OGSiteName    string // Open Graph site name
	OGURL         string // Open Graph URL
	Robots        string // Robots directive (index,follow / noindex,nofollow)
	TwitterCard   string // Twitter card type
	TwitterTitle  string // Twitter title
	TwitterDesc   string // Twitter description
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName string
	SiteURL  string
}

func (s *SiteConfig) name() string {
	if s == nil || s.SiteName == "" {
		return DefaultSiteName
	}
	return s.SiteName
}

func (s *SiteConfig) url() string {
	if s == nil {
		return ""
	}
	return strings.TrimSuffix(s.SiteURL, "/")
}

// BuildMeta creates a Meta struct from page and site data with proper fallbacks.
// Title: seoTitle, then title. Description: seoDescription, then a sentence
// built from the title.
func BuildMeta(page *model.Page, site *SiteConfig) *Meta {
	siteName := site.name()
	meta := &Meta{
		OGType:      "website",
		TwitterCard: "summary_large_image",
		OGSiteName:  siteName,
		Author:      siteName,
		Robots:      "index,follow",
	}
	if page == nil {
		meta.Title = siteName
		meta.OGTitle = siteName
		meta.TwitterTitle = siteName
		meta.Canonical = site.url()
		meta.OGURL = meta.Canonical
		return meta
	}

	title := firstNonEmpty(page.SEOTitle, page.Title, siteName)
	meta.Title = title
	meta.OGTitle = title
	meta.TwitterTitle = title

	desc := page.SEODescription
	if desc == "" {
		desc = firstNonEmpty(page.Title, siteName) + " - Created with " + siteName
	}
	meta.Description = truncateText(stripHTML(desc), 300)
	meta.OGDescription = meta.Description
	meta.TwitterDesc = meta.Description

	meta.Keywords = "marketing, website"
	if page.Title != "" {
		meta.Keywords += ", " + strings.ToLower(page.Title)
	}

	if base := site.url(); base != "" && page.Slug != "" {
		meta.Canonical = base + PublicPathPrefix + page.Slug
		meta.OGURL = meta.Canonical
	}
	return meta
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// WebPageSchema represents JSON-LD WebPage structured data.
type WebPageSchema struct {
	Context      string     `json:"@context"`
	Type         string     `json:"@type"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	URL          string     `json:"url,omitempty"`
	DateModified string     `json:"dateModified,omitempty"`
	Publisher    *OrgSchema `json:"publisher,omitempty"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildWebPageSchema creates JSON-LD WebPage structured data for a page.
// The modification date comes from the page so output stays stable for an
// unchanged page.
func BuildWebPageSchema(page *model.Page, site *SiteConfig) template.JS {
	if page == nil {
		return ""
	}
	meta := BuildMeta(page, site)

	schema := WebPageSchema{
		Context:     "https://schema.org",
		Type:        "WebPage",
		Name:        meta.Title,
		Description: meta.Description,
		URL:         meta.Canonical,
		Publisher: &OrgSchema{
			Type: "Organization",
			Name: site.name(),
		},
	}
	if !page.UpdatedAt.IsZero() {
		schema.DateModified = page.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return marshalJSONLD(schema)
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// Helper functions

// stripHTML removes HTML tags from a string.
func stripHTML(html string) string {
	var result strings.Builder
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ') // Replace tags with space
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	// Collapse whitespace
	return strings.Join(strings.Fields(result.String()), " ")
}

// truncateText truncates text to maxLen bytes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}
