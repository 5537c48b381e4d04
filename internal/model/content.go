// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content is the type-specific payload of a section. Every section type has
// its own struct; RawContent carries content of types this build does not
// know about.
type Content interface {
	SectionType() SectionType
}

// Button is a labelled call-to-action link.
type Button struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Link is a navigation entry.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Logo is a brand mark made of text, an image, or both.
type Logo struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// HeaderContent is the content of a header section.
type HeaderContent struct {
	Logo       Logo    `json:"logo"`
	Navigation []Link  `json:"navigation,omitempty"`
	CTA        *Button `json:"cta,omitempty"`
}

// HeroCTA holds the two hero buttons.
type HeroCTA struct {
	Primary   *Button `json:"primary,omitempty"`
	Secondary *Button `json:"secondary,omitempty"`
}

// HeroContent is the content of a hero section.
type HeroContent struct {
	Headline    string  `json:"headline,omitempty"`
	Subheadline string  `json:"subheadline,omitempty"`
	CTA         HeroCTA `json:"cta"`
	Image       string  `json:"image,omitempty"`
	VideoURL    string  `json:"videoUrl,omitempty"`
}

// Feature is one entry of a features section.
type Feature struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// FeaturesContent is the content of a features section.
type FeaturesContent struct {
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Features []Feature `json:"features,omitempty"`
}

// Plan is one pricing tier.
type Plan struct {
	Name     string   `json:"name,omitempty"`
	Price    string   `json:"price,omitempty"`
	Period   string   `json:"period,omitempty"`
	Features []string `json:"features,omitempty"`
	Popular  bool     `json:"popular,omitempty"`
	CTA      *Button  `json:"cta,omitempty"`
}

// PricingContent is the content of a pricing section.
type PricingContent struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Plans    []Plan `json:"plans,omitempty"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Text   string `json:"text,omitempty"`
	Author string `json:"author,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// TestimonialsContent is the content of a testimonials section.
type TestimonialsContent struct {
	Title        string        `json:"title,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
}

// CTAContent is the content of a call-to-action section.
type CTAContent struct {
	Title    string  `json:"title,omitempty"`
	Subtitle string  `json:"subtitle,omitempty"`
	CTA      *Button `json:"cta,omitempty"`
}

// AboutContent is the content of an about section. Content is rich text.
type AboutContent struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Member is a person in a team section.
type Member struct {
	Name   string            `json:"name,omitempty"`
	Role   string            `json:"role,omitempty"`
	Bio    string            `json:"bio,omitempty"`
	Avatar string            `json:"avatar,omitempty"`
	Social map[string]string `json:"social,omitempty"`
}

// TeamContent is the content of a team section.
type TeamContent struct {
	Title   string   `json:"title,omitempty"`
	Members []Member `json:"members,omitempty"`
}

// Question is one FAQ entry. Answer is rich text.
type Question struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

// FAQContent is the content of a FAQ section.
type FAQContent struct {
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions,omitempty"`
}

// ContactContent is the content of a contact section.
type ContactContent struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// NewsletterContent is the content of a newsletter signup section.
type NewsletterContent struct {
	Title       string  `json:"title,omitempty"`
	Subtitle    string  `json:"subtitle,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
	CTA         *Button `json:"cta,omitempty"`
}

// Post is a blog teaser.
type Post struct {
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Date    string `json:"date,omitempty"`
	Image   string `json:"image,omitempty"`
	Href    string `json:"href,omitempty"`
}

// BlogContent is the content of a blog section.
type BlogContent struct {
	Title string `json:"title,omitempty"`
	Posts []Post `json:"posts,omitempty"`
}

// Image is a gallery picture.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// GalleryContent is the content of a gallery section.
type GalleryContent struct {
	Title  string  `json:"title,omitempty"`
	Images []Image `json:"images,omitempty"`
}

// Stat is a single figure with its label.
type Stat struct {
	Number string `json:"number,omitempty"`
	Label  string `json:"label,omitempty"`
}

// StatsContent is the content of a stats section.
type StatsContent struct {
	Title string `json:"title,omitempty"`
	Stats []Stat `json:"stats,omitempty"`
}

// SocialLink points to a profile on a social platform.
type SocialLink struct {
	Platform string `json:"platform"`
	Href     string `json:"href"`
}

// FooterContent is the content of a footer section.
type FooterContent struct {
	Logo      Logo         `json:"logo"`
	Links     []Link       `json:"links,omitempty"`
	Social    []SocialLink `json:"social,omitempty"`
	Copyright string       `json:"copyright,omitempty"`
}

// RawContent holds content of an unrecognized section type as decoded JSON.
type RawContent map[string]any

func (HeaderContent) SectionType() SectionType       { return SectionHeader }
func (HeroContent) SectionType() SectionType         { return SectionHero }
func (FeaturesContent) SectionType() SectionType     { return SectionFeatures }
func (PricingContent) SectionType() SectionType      { return SectionPricing }
func (TestimonialsContent) SectionType() SectionType { return SectionTestimonials }
func (CTAContent) SectionType() SectionType          { return SectionCTA }
func (AboutContent) SectionType() SectionType        { return SectionAbout }
func (TeamContent) SectionType() SectionType         { return SectionTeam }
func (FAQContent) SectionType() SectionType          { return SectionFAQ }
func (ContactContent) SectionType() SectionType      { return SectionContact }
func (NewsletterContent) SectionType() SectionType   { return SectionNewsletter }
func (BlogContent) SectionType() SectionType         { return SectionBlog }
func (GalleryContent) SectionType() SectionType      { return SectionGallery }
func (StatsContent) SectionType() SectionType        { return SectionStats }
func (FooterContent) SectionType() SectionType       { return SectionFooter }
func (RawContent) SectionType() SectionType          { return "" }

// NewContent returns an empty content value for the section type.
func NewContent(t SectionType) Content {
	switch t {
	case SectionHeader:
		return &HeaderContent{}
	case SectionHero:
		return &HeroContent{}
	case SectionFeatures:
		return &FeaturesContent{}
	case SectionPricing:
		return &PricingContent{}
	case SectionTestimonials:
		return &TestimonialsContent{}
	case SectionCTA:
		return &CTAContent{}
	case SectionAbout:
		return &AboutContent{}
	case SectionTeam:
		return &TeamContent{}
	case SectionFAQ:
		return &FAQContent{}
	case SectionContact:
		return &ContactContent{}
	case SectionNewsletter:
		return &NewsletterContent{}
	case SectionBlog:
		return &BlogContent{}
	case SectionGallery:
		return &GalleryContent{}
	case SectionStats:
		return &StatsContent{}
	case SectionFooter:
		return &FooterContent{}
	default:
		return RawContent{}
	}
}

// DecodeContent decodes raw JSON into the content struct of type t. With
// strict set, unknown fields are rejected.
func DecodeContent(t SectionType, raw []byte, strict bool) (Content, error) {
	content := NewContent(t)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return content, nil
	}

	if rc, ok := content.(RawContent); ok {
		if err := json.Unmarshal(raw, &rc); err != nil {
			return nil, &ValidationError{Field: "content", Message: fmt.Sprintf("invalid %s content: %v", t, err)}
		}
		return rc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(content); err != nil {
		return nil, &ValidationError{Field: "content", Message: fmt.Sprintf("invalid %s content: %v", t, err)}
	}
	return content, nil
}

// CloneContent returns a deep copy of c.
func CloneContent(t SectionType, c Content) Content {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return NewContent(t)
	}
	out, err := DecodeContent(t, raw, false)
	if err != nil {
		return NewContent(t)
	}
	return out
}

// MergeContent overlays patch onto the top-level fields of c. Keys absent
// from the patch keep their value and a nil value clears the field. The
// result is decoded strictly into the type's struct, so unknown keys and
// mistyped values fail with a ValidationError and c is left untouched.
func MergeContent(t SectionType, c Content, patch map[string]any) (Content, error) {
	if c == nil {
		c = NewContent(t)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding content: %w", err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	for key, value := range patch {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, &ValidationError{Field: key, Message: err.Error()}
		}
		fields[key] = encoded
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding merged content: %w", err)
	}
	return DecodeContent(t, merged, true)
}
