// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SectionType identifies the kind of a page section.
type SectionType string

// Section types
const (
	SectionHeader       SectionType = "header"
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionPricing      SectionType = "pricing"
	SectionTestimonials SectionType = "testimonials"
	SectionCTA          SectionType = "cta"
	SectionAbout        SectionType = "about"
	SectionTeam         SectionType = "team"
	SectionFAQ          SectionType = "faq"
	SectionContact      SectionType = "contact"
	SectionNewsletter   SectionType = "newsletter"
	SectionBlog         SectionType = "blog"
	SectionGallery      SectionType = "gallery"
	SectionStats        SectionType = "stats"
	SectionFooter       SectionType = "footer"
)

// AllSectionTypes lists every section type in catalog order.
var AllSectionTypes = []SectionType{
	SectionHeader,
	SectionHero,
	SectionFeatures,
	SectionPricing,
	SectionTestimonials,
	SectionCTA,
	SectionAbout,
	SectionTeam,
	SectionFAQ,
	SectionContact,
	SectionNewsletter,
	SectionBlog,
	SectionGallery,
	SectionStats,
	SectionFooter,
}

// Valid reports whether t is one of the known section types.
func (t SectionType) Valid() bool {
	for _, known := range AllSectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t SectionType) String() string {
	return string(t)
}

// Spacing holds a box of pixel values.
type Spacing struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Styles is the visual configuration of a section.
type Styles struct {
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	TextColor       string   `json:"textColor,omitempty"`
	Padding         *Spacing `json:"padding,omitempty"`
	Margin          *Spacing `json:"margin,omitempty"`
	CustomCSS       string   `json:"customCss,omitempty"`
}

// Clone returns a copy of s that shares no pointers with it.
func (s Styles) Clone() Styles {
	out := s
	if s.Padding != nil {
		p := *s.Padding
		out.Padding = &p
	}
	if s.Margin != nil {
		m := *s.Margin
		out.Margin = &m
	}
	return out
}

// StylePatch is a partial Styles update. Nil fields are left untouched.
type StylePatch struct {
	BackgroundColor *string  `json:"backgroundColor,omitempty"`
	TextColor       *string  `json:"textColor,omitempty"`
	Padding         *Spacing `json:"padding,omitempty"`
	Margin          *Spacing `json:"margin,omitempty"`
	CustomCSS       *string  `json:"customCss,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p *StylePatch) Empty() bool {
	return p == nil || (p.BackgroundColor == nil && p.TextColor == nil &&
		p.Padding == nil && p.Margin == nil && p.CustomCSS == nil)
}

// Apply shallow-merges the patch into s and returns the result.
func (p *StylePatch) Apply(s Styles) Styles {
	out := s.Clone()
	if p == nil {
		return out
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = *p.BackgroundColor
	}
	if p.TextColor != nil {
		out.TextColor = *p.TextColor
	}
	if p.Padding != nil {
		v := *p.Padding
		out.Padding = &v
	}
	if p.Margin != nil {
		v := *p.Margin
		out.Margin = &v
	}
	if p.CustomCSS != nil {
		out.CustomCSS = *p.CustomCSS
	}
	return out
}

// Section is one block of a page.
type Section struct {
	ID      string
	Type    SectionType
	Variant string
	Content Content
	Styles  Styles
	Order   int
}

type sectionJSON struct {
	ID      string          `json:"id"`
	Type    SectionType     `json:"type"`
	Variant string          `json:"variant"`
	Content json.RawMessage `json:"content"`
	Styles  Styles          `json:"styles"`
	Order   int             `json:"order"`
}

// MarshalJSON encodes the section with its content as a nested object.
func (s Section) MarshalJSON() ([]byte, error) {
	content := s.Content
	if content == nil {
		content = NewContent(s.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encoding %s content: %w", s.Type, err)
	}
	return json.Marshal(sectionJSON{
		ID:      s.ID,
		Type:    s.Type,
		Variant: s.Variant,
		Content: raw,
		Styles:  s.Styles,
		Order:   s.Order,
	})
}

// UnmarshalJSON decodes the content into the struct registered for the
// section type. Unknown types keep their content as RawContent.
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	content, err := DecodeContent(aux.Type, aux.Content, false)
	if err != nil {
		return err
	}
	*s = Section{
		ID:      aux.ID,
		Type:    aux.Type,
		Variant: aux.Variant,
		Content: content,
		Styles:  aux.Styles,
		Order:   aux.Order,
	}
	return nil
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Content = CloneContent(s.Type, s.Content)
	out.Styles = s.Styles.Clone()
	return out
}

// SectionVariant is a catalog entry describing one visual layout of a type.
type SectionVariant struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DefaultContent Content `json:"defaultContent"`
	DefaultStyles  Styles  `json:"defaultStyles"`
}

// NormalizeOrder returns the sections stably sorted by Order and renumbered
// so that the i-th section has Order i. The input slice is not modified.
func NormalizeOrder(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	for i := range out {
		out[i].Order = i
	}
	return out
}

// SortedByOrder returns the sections stably sorted by Order without
// renumbering them.
func SortedByOrder(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
