// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"

	"github.com/olegiv/pagesmith/internal/util"
)

// Page is a landing page document made of ordered sections.
type Page struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	SlugIsManual   bool      `json:"slugIsManual,omitempty"`
	Sections       []Section `json:"sections"`
	IsPublished    bool      `json:"isPublished"`
	SEOTitle       string    `json:"seoTitle,omitempty"`
	SEODescription string    `json:"seoDescription,omitempty"`
	CustomCSS      string    `json:"customCss,omitempty"`
	CustomJS       string    `json:"customJs,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultPageTitle is the title given to blank pages.
const DefaultPageTitle = "New Page"

// NewPage returns a blank page owned by ownerID.
func NewPage(id, ownerID, title string, now time.Time) *Page {
	if title == "" {
		title = DefaultPageTitle
	}
	return &Page{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Slug:      util.GenerateSlug(title),
		Sections:  []Section{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		out.Sections[i] = s.Clone()
	}
	return &out
}

// SectionIndex returns the position of the section with the given id, or -1.
func (p *Page) SectionIndex(id string) int {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Section returns the section with the given id.
func (p *Page) Section(id string) (*Section, bool) {
	idx := p.SectionIndex(id)
	if idx < 0 {
		return nil, false
	}
	return &p.Sections[idx], true
}

// Summary returns the listing view of the page.
func (p *Page) Summary() PageSummary {
	return PageSummary{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Slug:         p.Slug,
		IsPublished:  p.IsPublished,
		SectionCount: len(p.Sections),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// PageSummary is the lightweight view of a page used in listings.
type PageSummary struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	IsPublished  bool      `json:"isPublished"`
	SectionCount int       `json:"sectionCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
