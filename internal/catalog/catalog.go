// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog holds the static registry of section types and their
// variants, and the factory that builds new sections from it.
package catalog

import "github.com/olegiv/pagesmith/internal/model"

type variantDef struct {
	id          string
	name        string
	description string
}

// registry lists the variants of every type. The first variant of a type is
// its default.
var registry = map[model.SectionType][]variantDef{
	model.SectionHeader: {
		{"simple-nav", "Simple Navigation", "Logo on left, navigation in center, CTA on right"},
		{"centered-logo", "Centered Logo", "Logo centered at top, navigation below"},
	},
	model.SectionHero: {
		{"centered", "Centered", "Centered text with optional media below"},
		{"split", "Split Layout", "Text on left, media on right"},
	},
	model.SectionFeatures: {
		{"grid", "Grid Layout", "Simple grid with icons and text"},
		{"cards", "Card Layout", "Features displayed in cards with shadows"},
	},
	model.SectionPricing: {
		{"simple", "Simple", "Side-by-side pricing plans"},
		{"tiered", "Tiered", "Tiered pricing with popular plan highlighted"},
	},
	model.SectionTestimonials: {
		{"grid", "Grid", "Quotes in a grid"},
		{"carousel", "Carousel", "One quote at a time"},
	},
	model.SectionCTA: {
		{"simple", "Simple", "Headline and button on a colored band"},
		{"boxed", "Boxed", "Call to action inside a card"},
	},
	model.SectionAbout: {
		{"text-image", "Text + Image", "Text with an image beside it"},
		{"centered", "Centered", "Centered text"},
	},
	model.SectionTeam: {
		{"grid", "Grid", "Members in a grid"},
		{"cards", "Cards", "Members in cards with bios"},
	},
	model.SectionFAQ: {
		{"accordion", "Accordion", "Collapsible questions"},
		{"grid", "Grid", "Questions in two columns"},
	},
	model.SectionContact: {
		{"form", "Form", "Contact form"},
		{"info", "Info", "Contact information"},
	},
	model.SectionNewsletter: {
		{"simple", "Simple", "Inline signup"},
		{"boxed", "Boxed", "Signup inside a card"},
	},
	model.SectionBlog: {
		{"grid", "Grid", "Posts in a grid"},
		{"list", "List", "Posts in a list"},
	},
	model.SectionGallery: {
		{"grid", "Grid", "Images in a regular grid"},
		{"masonry", "Masonry", "Images in staggered columns"},
	},
	model.SectionStats: {
		{"horizontal", "Horizontal", "Figures in a row"},
		{"grid", "Grid", "Figures in a grid"},
	},
	model.SectionFooter: {
		{"minimal", "Minimal", "Copyright and links"},
		{"detailed", "Detailed", "Logo, links and social profiles"},
	},
}

// Types returns every section type in catalog order.
func Types() []model.SectionType {
	out := make([]model.SectionType, len(model.AllSectionTypes))
	copy(out, model.AllSectionTypes)
	return out
}

// Variants returns the variants of t in catalog order. Unknown types yield an
// empty list. The returned values are copies.
func Variants(t model.SectionType) []model.SectionVariant {
	defs := registry[t]
	out := make([]model.SectionVariant, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.build(t))
	}
	return out
}

// Variant looks up a single variant.
func Variant(t model.SectionType, id string) (model.SectionVariant, bool) {
	for _, d := range registry[t] {
		if d.id == id {
			return d.build(t), true
		}
	}
	return model.SectionVariant{}, false
}

// Exists reports whether t has a variant with the given id.
func Exists(t model.SectionType, id string) bool {
	for _, d := range registry[t] {
		if d.id == id {
			return true
		}
	}
	return false
}

// DefaultVariant returns the id of the first variant of t, or "" for unknown
// types.
func DefaultVariant(t model.SectionType) string {
	if defs := registry[t]; len(defs) > 0 {
		return defs[0].id
	}
	return ""
}

func (d variantDef) build(t model.SectionType) model.SectionVariant {
	return model.SectionVariant{
		ID:             d.id,
		Name:           d.name,
		Description:    d.description,
		DefaultContent: defaultContent(t),
		DefaultStyles:  defaultStyles(t),
	}
}
