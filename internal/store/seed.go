// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
)

// Demo page defaults
const (
	DemoPageTitle = "My Landing Page"
	DemoPageSlug  = "my-landing-page"
)

// Seed creates the demo user's landing page when the store has no pages yet.
func Seed(ctx context.Context, s PageStore, factory *catalog.Factory, now time.Time) error {
	existing, err := s.List(ctx, "")
	if err != nil {
		return fmt.Errorf("checking for pages: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("pages already exist, skipping seed", "count", len(existing))
		return nil
	}

	page := model.NewPage(uuid.NewString(), model.DemoUserID, DemoPageTitle, now)
	page.SEODescription = "A sample landing page built with Pagesmith"

	layout := []struct {
		t       model.SectionType
		variant string
	}{
		{model.SectionHeader, "simple-nav"},
		{model.SectionHero, "centered"},
		{model.SectionFeatures, "grid"},
		{model.SectionPricing, "tiered"},
		{model.SectionFooter, "minimal"},
	}
	for i, l := range layout {
		s, err := factory.NewSection(l.t, l.variant, i)
		if err != nil {
			return fmt.Errorf("building %s section: %w", l.t, err)
		}
		page.Sections = append(page.Sections, *s)
	}

	if err := s.Save(ctx, page); err != nil {
		return fmt.Errorf("saving demo page: %w", err)
	}

	slog.Info("created demo page", "id", page.ID, "slug", page.Slug, "owner", page.OwnerID)
	return nil
}
