// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import "github.com/olegiv/pagesmith/internal/model"

// defaultContent builds a fresh content value for a type. Each call returns
// new values so callers may mutate the result.
func defaultContent(t model.SectionType) model.Content {
	switch t {
	case model.SectionHeader:
		return &model.HeaderContent{
			Logo: model.Logo{Text: "Your Logo"},
			Navigation: []model.Link{
				{Label: "Home", Href: "#"},
				{Label: "Features", Href: "#features"},
				{Label: "Pricing", Href: "#pricing"},
				{Label: "Contact", Href: "#contact"},
			},
			CTA: &model.Button{Text: "Get Started", Href: "#"},
		}
	case model.SectionHero:
		return &model.HeroContent{
			Headline:    "Welcome to Your Amazing Product",
			Subheadline: "Build something incredible with our powerful tools",
			CTA: model.HeroCTA{
				Primary:   &model.Button{Text: "Get Started", Href: "#"},
				Secondary: &model.Button{Text: "Learn More", Href: "#"},
			},
		}
	case model.SectionFeatures:
		return &model.FeaturesContent{
			Title:    "Amazing Features",
			Subtitle: "Everything you need to succeed",
			Features: []model.Feature{
				{Title: "Feature One", Description: "Description of your first amazing feature", Icon: "🚀"},
				{Title: "Feature Two", Description: "Description of your second amazing feature", Icon: "⚡"},
				{Title: "Feature Three", Description: "Description of your third amazing feature", Icon: "🎯"},
			},
		}
	case model.SectionPricing:
		return &model.PricingContent{
			Title:    "Simple Pricing",
			Subtitle: "Choose the perfect plan for your needs",
			Plans: []model.Plan{
				{
					Name:     "Basic",
					Price:    "$9",
					Period:   "/month",
					Features: []string{"Feature 1", "Feature 2", "Feature 3"},
					CTA:      &model.Button{Text: "Get Started", Href: "#"},
				},
				{
					Name:     "Pro",
					Price:    "$29",
					Period:   "/month",
					Features: []string{"Everything in Basic", "Feature 4", "Feature 5"},
					Popular:  true,
					CTA:      &model.Button{Text: "Get Started", Href: "#"},
				},
			},
		}
	case model.SectionTestimonials:
		return &model.TestimonialsContent{
			Title: "What Our Customers Say",
			Testimonials: []model.Testimonial{{
				Text:   "This product has completely transformed how we work. Highly recommended!",
				Author: "John Doe",
				Role:   "CEO, Company Inc.",
			}},
		}
	case model.SectionCTA:
		return &model.CTAContent{
			Title:    "Ready to Get Started?",
			Subtitle: "Join thousands of satisfied customers today",
			CTA:      &model.Button{Text: "Get Started Now", Href: "#"},
		}
	case model.SectionAbout:
		return &model.AboutContent{
			Title:   "About Us",
			Content: "We are passionate about creating amazing products that help people achieve their goals.",
		}
	case model.SectionTeam:
		return &model.TeamContent{
			Title: "Meet Our Team",
			Members: []model.Member{{
				Name:   "Jane Smith",
				Role:   "CEO & Founder",
				Bio:    "Passionate about building great products",
				Social: map[string]string{"linkedin": "#", "twitter": "#"},
			}},
		}
	case model.SectionFAQ:
		return &model.FAQContent{
			Title: "Frequently Asked Questions",
			Questions: []model.Question{{
				Question: "How does this work?",
				Answer:   "It works by doing amazing things that help you achieve your goals.",
			}},
		}
	case model.SectionContact:
		return &model.ContactContent{
			Title:    "Get In Touch",
			Subtitle: "We would love to hear from you",
			Email:    "hello@example.com",
			Phone:    "+1 (555) 123-4567",
			Address:  "123 Main St, City, State 12345",
		}
	case model.SectionNewsletter:
		return &model.NewsletterContent{
			Title:       "Stay Updated",
			Subtitle:    "Get the latest news and updates delivered to your inbox",
			Placeholder: "Enter your email address",
			CTA:         &model.Button{Text: "Subscribe", Href: "#"},
		}
	case model.SectionBlog:
		return &model.BlogContent{
			Title: "Latest News",
			Posts: []model.Post{{
				Title:   "Blog Post Title",
				Excerpt: "A brief description of this blog post...",
				Href:    "#",
			}},
		}
	case model.SectionGallery:
		return &model.GalleryContent{
			Title:  "Gallery",
			Images: []model.Image{},
		}
	case model.SectionStats:
		return &model.StatsContent{
			Title: "By the Numbers",
			Stats: []model.Stat{
				{Number: "1000+", Label: "Happy Customers"},
				{Number: "99%", Label: "Satisfaction Rate"},
				{Number: "24/7", Label: "Support Available"},
			},
		}
	case model.SectionFooter:
		return &model.FooterContent{
			Logo: model.Logo{Text: "Your Logo"},
			Links: []model.Link{
				{Label: "Privacy Policy", Href: "#"},
				{Label: "Terms of Service", Href: "#"},
			},
			Social: []model.SocialLink{
				{Platform: "twitter", Href: "#"},
				{Platform: "facebook", Href: "#"},
				{Platform: "linkedin", Href: "#"},
			},
			Copyright: "© 2026 Your Company. All rights reserved.",
		}
	}
	return model.NewContent(t)
}

func padding(vertical int) *model.Spacing {
	return &model.Spacing{Top: vertical, Right: 24, Bottom: vertical, Left: 24}
}

// defaultStyles returns the base styles of a type.
func defaultStyles(t model.SectionType) model.Styles {
	switch t {
	case model.SectionHeader:
		return model.Styles{BackgroundColor: "#ffffff", TextColor: "#000000", Padding: padding(16)}
	case model.SectionHero:
		return model.Styles{BackgroundColor: "#f8fafc", TextColor: "#1e293b", Padding: padding(80)}
	case model.SectionFeatures, model.SectionTestimonials, model.SectionAbout,
		model.SectionFAQ, model.SectionBlog:
		return model.Styles{BackgroundColor: "#ffffff", TextColor: "#374151", Padding: padding(80)}
	case model.SectionPricing, model.SectionTeam, model.SectionContact, model.SectionGallery:
		return model.Styles{BackgroundColor: "#f8fafc", TextColor: "#374151", Padding: padding(80)}
	case model.SectionCTA, model.SectionStats:
		return model.Styles{BackgroundColor: "#3b82f6", TextColor: "#ffffff", Padding: padding(80)}
	case model.SectionNewsletter, model.SectionFooter:
		return model.Styles{BackgroundColor: "#1e293b", TextColor: "#ffffff", Padding: padding(60)}
	}
	return model.Styles{BackgroundColor: "#ffffff", TextColor: "#000000", Padding: padding(40)}
}
