// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"html/template"

	"github.com/olegiv/pagesmith/internal/model"
)

// sectionFunc builds the template view of a section.
type sectionFunc func(r *Renderer, s *model.Section) (any, error)

// sectionFuncs maps every known section type to its view builder.
var sectionFuncs = map[model.SectionType]sectionFunc{
	model.SectionHeader:       plain[model.HeaderContent, *model.HeaderContent],
	model.SectionHero:         plain[model.HeroContent, *model.HeroContent],
	model.SectionFeatures:     plain[model.FeaturesContent, *model.FeaturesContent],
	model.SectionPricing:      plain[model.PricingContent, *model.PricingContent],
	model.SectionTestimonials: testimonialsView,
	model.SectionCTA:          plain[model.CTAContent, *model.CTAContent],
	model.SectionAbout:        aboutView,
	model.SectionTeam:         plain[model.TeamContent, *model.TeamContent],
	model.SectionFAQ:          faqView,
	model.SectionContact:      plain[model.ContactContent, *model.ContactContent],
	model.SectionNewsletter:   plain[model.NewsletterContent, *model.NewsletterContent],
	model.SectionBlog:         blogView,
	model.SectionGallery:      plain[model.GalleryContent, *model.GalleryContent],
	model.SectionStats:        plain[model.StatsContent, *model.StatsContent],
	model.SectionFooter:       plain[model.FooterContent, *model.FooterContent],
}

// contentPtr is satisfied by pointers to section content structs.
type contentPtr[T any] interface {
	*T
	model.Content
}

// contentAs returns the section content as *T. Missing content renders as
// an empty section.
func contentAs[T any, PT contentPtr[T]](s *model.Section) (*T, error) {
	if s.Content == nil {
		return new(T), nil
	}
	c, ok := s.Content.(PT)
	if !ok {
		return nil, fmt.Errorf("%s section has %T content", s.Type, s.Content)
	}
	return (*T)(c), nil
}

func plain[T any, PT contentPtr[T]](_ *Renderer, s *model.Section) (any, error) {
	return contentAs[T, PT](s)
}

type testimonialView struct {
	model.Testimonial
	HTML template.HTML
}

func testimonialsView(r *Renderer, s *model.Section) (any, error) {
	c, err := contentAs[model.TestimonialsContent, *model.TestimonialsContent](s)
	if err != nil {
		return nil, err
	}
	view := struct {
		Title        string
		Testimonials []testimonialView
	}{Title: c.Title}
	for _, t := range c.Testimonials {
		html, err := r.rich.Render(t.Text)
		if err != nil {
			return nil, err
		}
		view.Testimonials = append(view.Testimonials, testimonialView{Testimonial: t, HTML: html})
	}
	return view, nil
}

func aboutView(r *Renderer, s *model.Section) (any, error) {
	c, err := contentAs[model.AboutContent, *model.AboutContent](s)
	if err != nil {
		return nil, err
	}
	html, err := r.rich.Render(c.Content)
	if err != nil {
		return nil, err
	}
	return struct {
		Title string
		Image string
		HTML  template.HTML
	}{c.Title, c.Image, html}, nil
}

type questionView struct {
	Question string
	HTML     template.HTML
}

func faqView(r *Renderer, s *model.Section) (any, error) {
	c, err := contentAs[model.FAQContent, *model.FAQContent](s)
	if err != nil {
		return nil, err
	}
	view := struct {
		Title     string
		Questions []questionView
	}{Title: c.Title}
	for _, q := range c.Questions {
		html, err := r.rich.Render(q.Answer)
		if err != nil {
			return nil, err
		}
		view.Questions = append(view.Questions, questionView{Question: q.Question, HTML: html})
	}
	return view, nil
}

type postView struct {
	model.Post
	HTML template.HTML
}

func blogView(r *Renderer, s *model.Section) (any, error) {
	c, err := contentAs[model.BlogContent, *model.BlogContent](s)
	if err != nil {
		return nil, err
	}
	view := struct {
		Title string
		Posts []postView
	}{Title: c.Title}
	for _, p := range c.Posts {
		html, err := r.rich.Render(p.Excerpt)
		if err != nil {
			return nil, err
		}
		view.Posts = append(view.Posts, postView{Post: p, HTML: html})
	}
	return view, nil
}
