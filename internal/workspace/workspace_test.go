// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package workspace

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/editor"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/service"
	"github.com/olegiv/pagesmith/internal/store"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestManager(t *testing.T) (*Manager, *service.Pages, *fakeClock) {
	t.Helper()
	var (
		idMu sync.Mutex
		n    int
	)
	factory := catalog.NewFactory(func() string {
		idMu.Lock()
		defer idMu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	})
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	pages := service.NewPages(store.NewMemoryStore(),
		service.WithPagesFactory(factory),
		service.WithPagesClock(clock.Now),
	)
	m := NewManager(pages, Config{
		IdleTimeout: 10 * time.Minute,
		Factory:     factory,
		Clock:       clock.Now,
	})
	return m, pages, clock
}

func TestOpenAndEdit(t *testing.T) {
	m, pages, _ := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Launch")
	require.NoError(t, err)

	st, err := m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)
	assert.Equal(t, page.ID, st.Page.ID)
	assert.False(t, st.CanUndo)
	assert.Equal(t, 1, m.Len())

	err = m.With("alice", page.ID, func(e *editor.Engine) error {
		_, err := e.AddSection(model.SectionHero, "centered")
		return err
	})
	require.NoError(t, err)

	// Reopening keeps the unsaved edits.
	st, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)
	assert.Len(t, st.Page.Sections, 1)
	assert.True(t, st.CanUndo)

	stored, err := pages.Load(ctx, page.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Sections, "edits are not persisted before save")
}

func TestOpenForeignPage(t *testing.T) {
	m, pages, _ := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Private")
	require.NoError(t, err)

	_, err = m.Open(ctx, "mallory", page.ID)
	assert.True(t, model.IsNotFound(err))
	assert.Equal(t, 0, m.Len())

	_, err = m.Open(ctx, "alice", "missing")
	assert.True(t, model.IsNotFound(err))
}

func TestWithoutSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	err := m.With("alice", "nope", func(*editor.Engine) error { return nil })
	assert.True(t, model.IsNotFound(err))
}

func TestSave(t *testing.T) {
	m, pages, clock := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Launch")
	require.NoError(t, err)
	_, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)

	require.NoError(t, m.With("alice", page.ID, func(e *editor.Engine) error {
		e.UpdateTitle("Launch v2")
		return nil
	}))
	clock.Advance(time.Minute)

	saved, err := m.Save(ctx, "alice", page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch v2", saved.Title)

	stored, err := pages.Load(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch v2", stored.Title)

	require.NoError(t, m.With("alice", page.ID, func(e *editor.Engine) error {
		assert.True(t, e.CanUndo(), "history survives a save")
		assert.Equal(t, saved.UpdatedAt, e.Page().UpdatedAt)
		return nil
	}))
}

func TestClose(t *testing.T) {
	m, pages, _ := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Launch")
	require.NoError(t, err)
	_, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)

	assert.True(t, m.Close("alice", page.ID))
	assert.False(t, m.Close("alice", page.ID))
	assert.Equal(t, 0, m.Len())

	err = m.With("alice", page.ID, func(*editor.Engine) error { return nil })
	assert.True(t, model.IsNotFound(err))
}

func TestCloseAll(t *testing.T) {
	m, pages, _ := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Launch")
	require.NoError(t, err)
	other, err := pages.Create(ctx, "alice", "Other")
	require.NoError(t, err)

	_, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)
	_, err = m.Open(ctx, "alice", other.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, m.CloseAll(page.ID))
	assert.Equal(t, 1, m.Len())
}

func TestSweepIdle(t *testing.T) {
	m, pages, clock := newTestManager(t)
	ctx := context.Background()
	stale, err := pages.Create(ctx, "alice", "Stale")
	require.NoError(t, err)
	fresh, err := pages.Create(ctx, "alice", "Fresh")
	require.NoError(t, err)

	_, err = m.Open(ctx, "alice", stale.ID)
	require.NoError(t, err)
	clock.Advance(8 * time.Minute)
	_, err = m.Open(ctx, "alice", fresh.ID)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)

	assert.Equal(t, 1, m.SweepIdle())
	assert.Equal(t, 1, m.Len())

	err = m.With("alice", stale.ID, func(*editor.Engine) error { return nil })
	assert.True(t, model.IsNotFound(err))
	assert.NoError(t, m.With("alice", fresh.ID, func(*editor.Engine) error { return nil }))
}

func TestSweepSkipsBusySession(t *testing.T) {
	m, pages, clock := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Busy")
	require.NoError(t, err)
	_, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)

	err = m.With("alice", page.ID, func(*editor.Engine) error {
		clock.Advance(time.Hour)
		assert.Equal(t, 0, m.SweepIdle())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestConcurrentEdits(t *testing.T) {
	m, pages, _ := newTestManager(t)
	ctx := context.Background()
	page, err := pages.Create(ctx, "alice", "Busy")
	require.NoError(t, err)
	_, err = m.Open(ctx, "alice", page.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With("alice", page.ID, func(e *editor.Engine) error {
				_, err := e.AddSection(model.SectionFeatures, "grid")
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, m.With("alice", page.ID, func(e *editor.Engine) error {
		p := e.Page()
		assert.Len(t, p.Sections, 20)
		for i, s := range p.Sections {
			assert.Equal(t, i, s.Order)
		}
		return nil
	}))
}
