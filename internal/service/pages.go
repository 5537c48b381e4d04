// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/store"
	"github.com/olegiv/pagesmith/internal/transfer"
	"github.com/olegiv/pagesmith/internal/util"
)

// CopySuffix is appended to the title of a duplicated page.
const CopySuffix = " (Copy)"

// Pages is the persistence gateway for page documents. It translates store
// failures into model errors and owns the slug and timestamp rules that apply
// on save.
type Pages struct {
	store    store.PageStore
	factory  *catalog.Factory
	exporter *transfer.Exporter
	importer *transfer.Importer
	events   *EventService
	now      func() time.Time
	logger   *slog.Logger
}

// PagesOption configures Pages.
type PagesOption func(*Pages)

// WithPagesClock sets the time source.
func WithPagesClock(now func() time.Time) PagesOption {
	return func(p *Pages) { p.now = now }
}

// WithPagesFactory sets the factory used for new ids.
func WithPagesFactory(f *catalog.Factory) PagesOption {
	return func(p *Pages) { p.factory = f }
}

// WithPagesEvents records page events.
func WithPagesEvents(e *EventService) PagesOption {
	return func(p *Pages) { p.events = e }
}

// WithPagesLogger sets the logger.
func WithPagesLogger(l *slog.Logger) PagesOption {
	return func(p *Pages) { p.logger = l }
}

// NewPages creates the gateway over s.
func NewPages(s store.PageStore, opts ...PagesOption) *Pages {
	p := &Pages{
		store:  s,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.factory == nil {
		p.factory = catalog.NewFactory(nil)
	}
	p.exporter = transfer.NewExporter(p.logger)
	p.exporter.SetClock(p.now)
	p.importer = transfer.NewImporter(p.factory.NewID, p.logger)
	return p
}

// Store returns the underlying page store.
func (p *Pages) Store() store.PageStore {
	return p.store
}

// Create makes and saves an empty page for owner. An empty title gets the
// default one.
func (p *Pages) Create(ctx context.Context, ownerID, title string) (*model.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = model.DefaultPageTitle
	}
	page := model.NewPage(p.factory.NewID(), ownerID, title, p.now())

	slug, err := p.uniqueSlug(ctx, page.Slug, page.ID)
	if err != nil {
		return nil, err
	}
	page.Slug = slug

	saved, err := p.Save(ctx, page)
	if err != nil {
		return nil, err
	}
	p.logEvent(ctx, "Page created", saved)
	return saved, nil
}

// Save upserts page by id and returns the stored copy. UpdatedAt is set to
// now and CreatedAt when it is zero.
func (p *Pages) Save(ctx context.Context, page *model.Page) (*model.Page, error) {
	if page == nil {
		return nil, &model.ValidationError{Field: "page", Message: "is required"}
	}
	if strings.TrimSpace(page.ID) == "" {
		return nil, &model.ValidationError{Field: "id", Message: "is required"}
	}

	next := page.Clone()
	if next.Slug == "" {
		next.Slug = util.GenerateSlug(next.Title)
	} else if !util.IsValidSlug(next.Slug) {
		return nil, &model.ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits and single hyphens"}
	}
	if next.Sections == nil {
		next.Sections = []model.Section{}
	}
	next.Sections = model.NormalizeOrder(next.Sections)

	now := p.now()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}
	next.UpdatedAt = now

	if err := p.store.Save(ctx, next); err != nil {
		if errors.Is(err, store.ErrSlugTaken) {
			return nil, &model.ValidationError{Field: "slug", Message: "slug " + next.Slug + " is already in use"}
		}
		p.logger.Error("saving page failed", "page_id", next.ID, "error", err)
		return nil, &model.PersistenceError{Op: "save page", Err: err}
	}

	p.logger.Debug("page saved", "page_id", next.ID, "sections", len(next.Sections))
	return next, nil
}

// Load returns the page with id.
func (p *Pages) Load(ctx context.Context, id string) (*model.Page, error) {
	page, err := p.store.Get(ctx, id)
	if err != nil {
		return nil, p.mapLookupError("load page", id, err)
	}
	return page, nil
}

// LoadPublished returns the published page with slug. Drafts are reported as
// not found.
func (p *Pages) LoadPublished(ctx context.Context, slug string) (*model.Page, error) {
	page, err := p.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, p.mapLookupError("load published page", slug, err)
	}
	if !page.IsPublished {
		return nil, &model.NotFoundError{Entity: "page", ID: slug}
	}
	return page, nil
}

// List returns summaries of the owner's pages, most recently updated first.
// An empty owner lists every page.
func (p *Pages) List(ctx context.Context, ownerID string) ([]model.PageSummary, error) {
	list, err := p.store.List(ctx, ownerID)
	if err != nil {
		p.logger.Error("listing pages failed", "owner_id", ownerID, "error", err)
		return nil, &model.PersistenceError{Op: "list pages", Err: err}
	}
	return list, nil
}

// Delete removes the page with id.
func (p *Pages) Delete(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, id); err != nil {
		return p.mapLookupError("delete page", id, err)
	}
	p.logger.Info("page deleted", "page_id", id)
	return nil
}

// Duplicate saves a copy of the page with id under a new id. The copy gets
// fresh section ids, a " (Copy)" title suffix, a unique "-copy" slug and
// starts unpublished.
func (p *Pages) Duplicate(ctx context.Context, id string) (*model.Page, error) {
	src, err := p.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	dup := src.Clone()
	dup.ID = p.factory.NewID()
	dup.Title = src.Title + CopySuffix
	dup.IsPublished = false
	dup.SlugIsManual = false
	dup.CreatedAt = time.Time{}
	for i := range dup.Sections {
		dup.Sections[i].ID = p.factory.NewID()
	}

	base := src.Slug
	if base == "" {
		base = util.GenerateSlug(src.Title)
	}
	if dup.Slug, err = p.uniqueSlug(ctx, base+"-copy", dup.ID); err != nil {
		return nil, err
	}

	saved, err := p.Save(ctx, dup)
	if err != nil {
		return nil, err
	}
	p.logEvent(ctx, "Page duplicated", saved)
	return saved, nil
}

// ExportAsText returns the export document of the page with id.
func (p *Pages) ExportAsText(ctx context.Context, id string) (string, error) {
	page, err := p.Load(ctx, id)
	if err != nil {
		return "", err
	}
	return p.exporter.ExportAsText(page)
}

// ImportFromText parses an export document and saves it as a new unpublished
// page. A non-empty ownerID replaces the owner recorded in the document.
func (p *Pages) ImportFromText(ctx context.Context, text, ownerID string) (*model.Page, error) {
	page, err := p.importer.ImportFromText(text, transfer.ImportOptions{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	if page.Slug, err = p.uniqueSlug(ctx, page.Slug, page.ID); err != nil {
		return nil, err
	}

	saved, err := p.Save(ctx, page)
	if err != nil {
		return nil, err
	}
	p.logEvent(ctx, "Page imported", saved)
	return saved, nil
}

// ValidateImport reports whether text would import cleanly.
func (p *Pages) ValidateImport(text string) *transfer.ValidationResult {
	return p.importer.Validate([]byte(text))
}

func (p *Pages) uniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	slug, err := util.UniqueSlug(base, func(candidate string) (bool, error) {
		return p.store.SlugExists(ctx, candidate, excludeID)
	})
	if err != nil {
		return "", &model.PersistenceError{Op: "check slug", Err: err}
	}
	return slug, nil
}

func (p *Pages) mapLookupError(op, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &model.NotFoundError{Entity: "page", ID: id}
	}
	p.logger.Error(op+" failed", "id", id, "error", err)
	return &model.PersistenceError{Op: op, Err: err}
}

func (p *Pages) logEvent(ctx context.Context, message string, page *model.Page) {
	_ = p.events.LogPageEvent(ctx, model.EventLevelInfo, message, page.OwnerID, map[string]any{
		"page_id": page.ID,
		"slug":    page.Slug,
	})
}
