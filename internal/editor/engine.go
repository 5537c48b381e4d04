// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package editor implements the edit operations on a page together with its
// undo/redo history.
//
// Every successful operation clones the current page, mutates the clone,
// renormalizes section order, stamps UpdatedAt and records the result as a
// new history snapshot. Failed operations change nothing and record nothing.
package editor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/util"
)

// Direction is the direction of a section move.
type Direction string

// Move directions
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts user input to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", &model.ValidationError{Field: "direction", Message: fmt.Sprintf("must be %q or %q", Up, Down)}
}

// SettingsPatch updates page-level settings. Nil fields are left untouched.
type SettingsPatch struct {
	SEOTitle       *string `json:"seoTitle,omitempty"`
	SEODescription *string `json:"seoDescription,omitempty"`
	CustomCSS      *string `json:"customCss,omitempty"`
	CustomJS       *string `json:"customJs,omitempty"`
}

func (p SettingsPatch) empty() bool {
	return p.SEOTitle == nil && p.SEODescription == nil && p.CustomCSS == nil && p.CustomJS == nil
}

// Engine owns the page being edited, its history and the active section.
// It is not safe for concurrent use.
type Engine struct {
	current  *model.Page
	history  *History
	activeID string

	factory *catalog.Factory
	now     func() time.Time
	logger  *slog.Logger
	limit   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithFactory sets the section factory.
func WithFactory(f *catalog.Factory) Option {
	return func(e *Engine) { e.factory = f }
}

// WithClock sets the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithHistoryLimit caps the number of history snapshots. Zero keeps all.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.limit = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New starts an editing session on a copy of page. The history starts with
// that copy as its only entry.
func New(page *model.Page, opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		logger: slog.Default(),
		limit:  DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.factory == nil {
		e.factory = catalog.NewFactory(nil)
	}

	start := page.Clone()
	start.Sections = model.NormalizeOrder(start.Sections)
	e.current = start
	e.history = NewHistory(start, e.limit)
	return e
}

// Load replaces the page being edited and resets history and selection.
func (e *Engine) Load(page *model.Page) {
	start := page.Clone()
	start.Sections = model.NormalizeOrder(start.Sections)
	e.current = start
	e.history.Reset(start)
	e.activeID = ""
}

// Page returns a copy of the current page.
func (e *Engine) Page() *model.Page {
	return e.current.Clone()
}

// Live returns the current page without copying it. Callers must not modify
// the result.
func (e *Engine) Live() *model.Page {
	return e.current
}

// ActiveSectionID returns the selected section, or "".
func (e *Engine) ActiveSectionID() string {
	return e.activeID
}

// Select marks a section as active. An empty id clears the selection.
func (e *Engine) Select(id string) error {
	if id != "" && e.current.SectionIndex(id) < 0 {
		return &model.NotFoundError{Entity: "section", ID: id}
	}
	e.activeID = id
	return nil
}

// CanUndo reports whether Undo would change the page.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether Redo would change the page.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// HistoryLen returns the number of recorded snapshots.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// AddSection appends a new section built from catalog defaults and selects it.
func (e *Engine) AddSection(t model.SectionType, variant string) (*model.Section, error) {
	next := e.current.Clone()
	s, err := e.factory.NewSection(t, variant, len(next.Sections))
	if err != nil {
		return nil, err
	}
	next.Sections = append(next.Sections, *s)
	e.commit(next)
	e.activeID = s.ID

	e.logger.Debug("section added", "page_id", next.ID, "section_id", s.ID, "type", t, "variant", variant)
	added := s.Clone()
	return &added, nil
}

// UpdateSection merges contentPatch into the section content and stylePatch
// into its styles. Identity, type, variant and order never change. Nil
// patches are a no-op that records nothing.
func (e *Engine) UpdateSection(id string, contentPatch map[string]any, stylePatch *model.StylePatch) error {
	next := e.current.Clone()
	s, ok := next.Section(id)
	if !ok {
		return &model.NotFoundError{Entity: "section", ID: id}
	}
	if len(contentPatch) == 0 && stylePatch.Empty() {
		return nil
	}

	if len(contentPatch) > 0 {
		merged, err := model.MergeContent(s.Type, s.Content, contentPatch)
		if err != nil {
			return err
		}
		s.Content = merged
	}
	if !stylePatch.Empty() {
		s.Styles = stylePatch.Apply(s.Styles)
	}

	e.commit(next)
	return nil
}

// DeleteSection removes a section and closes the gap in the ordering.
func (e *Engine) DeleteSection(id string) error {
	next := e.current.Clone()
	idx := next.SectionIndex(id)
	if idx < 0 {
		return &model.NotFoundError{Entity: "section", ID: id}
	}
	next.Sections = append(next.Sections[:idx], next.Sections[idx+1:]...)
	e.commit(next)

	if e.activeID == id {
		e.activeID = ""
	}
	e.logger.Debug("section deleted", "page_id", next.ID, "section_id", id)
	return nil
}

// DuplicateSection inserts a deep copy of a section right after it. The copy
// gets a new id; sections after the original shift down by one.
func (e *Engine) DuplicateSection(id string) (*model.Section, error) {
	next := e.current.Clone()
	idx := next.SectionIndex(id)
	if idx < 0 {
		return nil, &model.NotFoundError{Entity: "section", ID: id}
	}

	dup := next.Sections[idx].Clone()
	dup.ID = e.factory.NewID()

	sections := make([]model.Section, 0, len(next.Sections)+1)
	sections = append(sections, next.Sections[:idx+1]...)
	sections = append(sections, dup)
	sections = append(sections, next.Sections[idx+1:]...)
	for i := range sections {
		sections[i].Order = i
	}
	next.Sections = sections
	e.commit(next)

	out := next.Sections[idx+1].Clone()
	return &out, nil
}

// MoveSection swaps a section with its neighbor. Moving the first section up
// or the last one down leaves the page and the history untouched.
func (e *Engine) MoveSection(id string, dir Direction) error {
	idx := e.current.SectionIndex(id)
	if idx < 0 {
		return &model.NotFoundError{Entity: "section", ID: id}
	}

	target := idx - 1
	if dir == Down {
		target = idx + 1
	} else if dir != Up {
		return &model.ValidationError{Field: "direction", Message: fmt.Sprintf("unknown direction %q", dir)}
	}
	if target < 0 || target >= len(e.current.Sections) {
		return nil
	}

	next := e.current.Clone()
	next.Sections[idx], next.Sections[target] = next.Sections[target], next.Sections[idx]
	for i := range next.Sections {
		next.Sections[i].Order = i
	}
	e.commit(next)
	return nil
}

// UpdateTitle sets the title. Unless the slug was set by hand it is derived
// from the new title.
func (e *Engine) UpdateTitle(title string) {
	next := e.current.Clone()
	next.Title = title
	if !next.SlugIsManual {
		next.Slug = util.GenerateSlug(title)
	}
	e.commit(next)
}

// UpdateSlug pins the slug to a hand-picked value. An empty slug returns to
// deriving it from the title.
func (e *Engine) UpdateSlug(slug string) error {
	next := e.current.Clone()
	if slug == "" {
		next.SlugIsManual = false
		next.Slug = util.GenerateSlug(next.Title)
	} else {
		if !util.IsValidSlug(slug) {
			return &model.ValidationError{Field: "slug", Message: "must contain only lowercase letters, digits and single hyphens"}
		}
		next.SlugIsManual = true
		next.Slug = slug
	}
	e.commit(next)
	return nil
}

// UpdateSettings applies SEO and custom code settings.
func (e *Engine) UpdateSettings(patch SettingsPatch) {
	if patch.empty() {
		return
	}
	next := e.current.Clone()
	if patch.SEOTitle != nil {
		next.SEOTitle = *patch.SEOTitle
	}
	if patch.SEODescription != nil {
		next.SEODescription = *patch.SEODescription
	}
	if patch.CustomCSS != nil {
		next.CustomCSS = *patch.CustomCSS
	}
	if patch.CustomJS != nil {
		next.CustomJS = *patch.CustomJS
	}
	e.commit(next)
}

// SetPublished toggles the publication flag.
func (e *Engine) SetPublished(published bool) {
	if e.current.IsPublished == published {
		return
	}
	next := e.current.Clone()
	next.IsPublished = published
	e.commit(next)
}

// Undo restores the previous snapshot. It returns false when there is none.
func (e *Engine) Undo() bool {
	page, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(page)
	return true
}

// Redo restores the next snapshot. It returns false when there is none.
func (e *Engine) Redo() bool {
	page, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(page)
	return true
}

// MarkSaved updates the timestamps of the current page after a save without
// recording a history entry.
func (e *Engine) MarkSaved(saved *model.Page) {
	if saved == nil || saved.ID != e.current.ID {
		return
	}
	e.current.CreatedAt = saved.CreatedAt
	e.current.UpdatedAt = saved.UpdatedAt
	e.history.Stamp(saved.CreatedAt, saved.UpdatedAt)
}

func (e *Engine) commit(next *model.Page) {
	next.Sections = model.NormalizeOrder(next.Sections)
	next.UpdatedAt = e.now()
	e.current = next
	e.history.Push(next)
}

func (e *Engine) restore(page *model.Page) {
	e.current = page
	if e.activeID != "" && page.SectionIndex(e.activeID) < 0 {
		e.activeID = ""
	}
}
