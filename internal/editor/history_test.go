// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pagesmith/internal/model"
)

func titled(title string) *model.Page {
	return &model.Page{ID: "p", Title: title, Sections: []model.Section{}}
}

func TestHistoryPushUndoRedo(t *testing.T) {
	h := NewHistory(titled("a"), 0)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	h.Push(titled("b"))
	h.Push(titled("c"))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	p, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", p.Title)

	p, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "c", p.Title)

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryPushTruncatesRedo(t *testing.T) {
	h := NewHistory(titled("a"), 0)
	h.Push(titled("b"))
	h.Push(titled("c"))
	h.Undo()
	h.Undo()

	h.Push(titled("d"))

	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())
	p, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "a", p.Title)
}

func TestHistoryLimitPrunesOldest(t *testing.T) {
	h := NewHistory(titled("0"), 3)
	h.Push(titled("1"))
	h.Push(titled("2"))
	h.Push(titled("3"))
	h.Push(titled("4"))

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	var titles []string
	for h.CanUndo() {
		p, _ := h.Undo()
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"3", "2"}, titles)
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	page := titled("a")
	h := NewHistory(page, 0)
	page.Title = "mutated"

	h.Push(titled("b"))
	p, _ := h.Undo()
	assert.Equal(t, "a", p.Title)

	p.Title = "mutated again"
	h.Redo()
	p, _ = h.Undo()
	assert.Equal(t, "a", p.Title)
}

func TestHistoryStamp(t *testing.T) {
	h := NewHistory(titled("a"), 0)
	h.Push(titled("b"))

	saved := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	h.Stamp(saved.Add(-time.Hour), saved)

	h.Undo()
	p, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, saved.Add(-time.Hour), p.CreatedAt)
	assert.Equal(t, saved, p.UpdatedAt)

	p, ok = h.Undo()
	require.True(t, ok)
	assert.True(t, p.UpdatedAt.IsZero(), "only the snapshot at the cursor is stamped")
}
