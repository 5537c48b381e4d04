// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/olegiv/pagesmith/internal/model"
)

// MemoryStore keeps pages in process memory. Pages are copied on the way in
// and out so callers never share state with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	pages map[string]*model.Page
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pages: make(map[string]*model.Page)}
}

// Save implements PageStore.
func (m *MemoryStore) Save(_ context.Context, page *model.Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, p := range m.pages {
		if id != page.ID && p.Slug == page.Slug {
			return ErrSlugTaken
		}
	}
	m.pages[page.ID] = page.Clone()
	return nil
}

// Get implements PageStore.
func (m *MemoryStore) Get(_ context.Context, id string) (*model.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

// GetBySlug implements PageStore.
func (m *MemoryStore) GetBySlug(_ context.Context, slug string) (*model.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.pages {
		if p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

// List implements PageStore.
func (m *MemoryStore) List(_ context.Context, ownerID string) ([]model.PageSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.PageSummary, 0, len(m.pages))
	for _, p := range m.pages {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		out = append(out, p.Summary())
	}
	sortSummaries(out)
	return out, nil
}

// Delete implements PageStore.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pages[id]; !ok {
		return ErrNotFound
	}
	delete(m.pages, id)
	return nil
}

// SlugExists implements PageStore.
func (m *MemoryStore) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, p := range m.pages {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// Close implements PageStore.
func (m *MemoryStore) Close() error {
	return nil
}

// sortSummaries orders by most recent update, then id for stability.
func sortSummaries(s []model.PageSummary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].UpdatedAt.Equal(s[j].UpdatedAt) {
			return s[i].UpdatedAt.After(s[j].UpdatedAt)
		}
		return s[i].ID < s[j].ID
	})
}

var _ PageStore = (*MemoryStore)(nil)
