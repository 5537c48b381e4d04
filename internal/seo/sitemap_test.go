// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

func TestNewSitemapBuilder(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com/")
	if builder == nil {
		t.Fatal("NewSitemapBuilder() returned nil")
	}
	if builder.siteURL != "https://example.com" {
		t.Errorf("siteURL = %q, want %q", builder.siteURL, "https://example.com")
	}
	if builder.Len() != 0 {
		t.Errorf("urls length = %d, want 0", builder.Len())
	}
}

func TestSitemapBuilderAddPage(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	updatedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	builder.AddPage(model.PageSummary{
		Slug:        "about-us",
		IsPublished: true,
		UpdatedAt:   updatedAt,
	})

	if builder.Len() != 1 {
		t.Fatalf("urls length = %d, want 1", builder.Len())
	}

	url := builder.urls[0]
	if url.Loc != "https://example.com/p/about-us" {
		t.Errorf("Loc = %q, want %q", url.Loc, "https://example.com/p/about-us")
	}
	if url.Priority != "0.8" {
		t.Errorf("Priority = %q, want %q", url.Priority, "0.8")
	}
	if url.ChangeFreq != ChangeFreqWeekly {
		t.Errorf("ChangeFreq = %q, want %q", url.ChangeFreq, ChangeFreqWeekly)
	}
	if url.LastMod != "2025-01-15T10:00:00Z" {
		t.Errorf("LastMod = %q", url.LastMod)
	}
}

func TestSitemapBuilderSkipsDrafts(t *testing.T) {
	builder := NewSitemapBuilder("https://example.com")
	builder.AddPages([]model.PageSummary{
		{Slug: "live", IsPublished: true},
		{Slug: "draft", IsPublished: false},
		{Slug: "", IsPublished: true},
	})

	if builder.Len() != 1 {
		t.Fatalf("urls length = %d, want 1", builder.Len())
	}
	if builder.urls[0].LastMod != "" {
		t.Errorf("zero UpdatedAt should omit lastmod, got %q", builder.urls[0].LastMod)
	}
}

func TestGenerateSitemap(t *testing.T) {
	data, err := GenerateSitemap("https://example.com", []model.PageSummary{
		{Slug: "one", IsPublished: true},
		{Slug: "two", IsPublished: true},
	})
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}

	content := string(data)
	if !strings.HasPrefix(content, "<?xml") {
		t.Error("sitemap should start with the XML header")
	}
	if !strings.Contains(content, `xmlns="`+XMLNamespace+`"`) {
		t.Error("sitemap should declare the namespace")
	}

	var parsed Sitemap
	if err := xml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(parsed.URLs) != 2 {
		t.Errorf("parsed %d urls, want 2", len(parsed.URLs))
	}
}
