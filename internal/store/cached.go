// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/pagesmith/internal/cache"
	"github.com/olegiv/pagesmith/internal/model"
)

// CachedStore fronts a PageStore with a cache for page lookups by id and
// slug. Writes go to the backend first and then invalidate the cache.
type CachedStore struct {
	PageStore
	pages  *cache.TypedCache[model.Page]
	slugs  *cache.TypedCache[string]
	logger *slog.Logger
}

// NewCachedStore wraps backend with c.
func NewCachedStore(backend PageStore, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{
		PageStore: backend,
		pages:     cache.NewTypedCache[model.Page](c, "page:", ttl),
		slugs:     cache.NewTypedCache[string](c, "slug:", ttl),
		logger:    logger,
	}
}

// Save implements PageStore.
func (s *CachedStore) Save(ctx context.Context, page *model.Page) error {
	old, _ := s.pages.Get(ctx, page.ID)
	if err := s.PageStore.Save(ctx, page); err != nil {
		return err
	}
	s.invalidate(ctx, page.ID, page.Slug)
	if old != nil && old.Slug != page.Slug {
		s.invalidate(ctx, "", old.Slug)
	}
	return nil
}

// Get implements PageStore.
func (s *CachedStore) Get(ctx context.Context, id string) (*model.Page, error) {
	if p, ok := s.pages.Get(ctx, id); ok {
		return p, nil
	}

	p, err := s.PageStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.pages.Set(ctx, id, p); err != nil {
		s.logger.Warn("caching page failed", "page_id", id, "error", err, "category", model.EventCategoryCache)
	}
	return p, nil
}

// GetBySlug implements PageStore.
func (s *CachedStore) GetBySlug(ctx context.Context, slug string) (*model.Page, error) {
	if id, ok := s.slugs.Get(ctx, slug); ok {
		if p, err := s.Get(ctx, *id); err == nil && p.Slug == slug {
			return p, nil
		}
		_ = s.slugs.Delete(ctx, slug)
	}

	p, err := s.PageStore.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	_ = s.pages.Set(ctx, p.ID, p)
	_ = s.slugs.Set(ctx, slug, &p.ID)
	return p, nil
}

// Delete implements PageStore.
func (s *CachedStore) Delete(ctx context.Context, id string) error {
	old, _ := s.pages.Get(ctx, id)
	if err := s.PageStore.Delete(ctx, id); err != nil {
		return err
	}
	slug := ""
	if old != nil {
		slug = old.Slug
	}
	s.invalidate(ctx, id, slug)
	return nil
}

// Unwrap returns the wrapped backend.
func (s *CachedStore) Unwrap() PageStore {
	return s.PageStore
}

func (s *CachedStore) invalidate(ctx context.Context, id, slug string) {
	if id != "" {
		if err := s.pages.Delete(ctx, id); err != nil {
			s.logger.Warn("invalidating page cache failed", "page_id", id, "error", err, "category", model.EventCategoryCache)
		}
	}
	if slug != "" {
		_ = s.slugs.Delete(ctx, slug)
	}
}

var _ PageStore = (*CachedStore)(nil)
