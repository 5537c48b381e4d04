// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists page documents. It provides an in-memory backend,
// a SQLite backend, a MongoDB backend and a caching decorator, all behind the
// PageStore interface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// Sentinel errors returned by every backend.
var (
	ErrNotFound  = errors.New("page not found")
	ErrSlugTaken = errors.New("slug already in use")
)

// PageStore is the persistence contract for page documents.
type PageStore interface {
	// Save inserts or replaces the page with the same id. The slug must not
	// belong to another page.
	Save(ctx context.Context, page *model.Page) error
	// Get returns the page with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Page, error)
	// GetBySlug returns the page with the given slug or ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*model.Page, error)
	// List returns summaries of the pages of ownerID, most recently updated
	// first. An empty ownerID lists every page.
	List(ctx context.Context, ownerID string) ([]model.PageSummary, error)
	// Delete removes a page or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// SlugExists reports whether a page other than excludeID uses slug.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// Close releases the backend's resources.
	Close() error
}

// EventSink receives event log entries.
type EventSink interface {
	RecordEvent(ctx context.Context, event model.Event) error
}

// EventReader lists stored events.
type EventReader interface {
	ListEvents(ctx context.Context, limit int) ([]model.Event, error)
}

// EventPruner removes old events.
type EventPruner interface {
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
