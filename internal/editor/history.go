// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package editor

import (
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// DefaultHistoryLimit bounds the number of snapshots kept per page.
const DefaultHistoryLimit = 100

// History is a linear undo/redo log of page snapshots. Snapshots are deep
// copies and are never mutated after they are pushed.
type History struct {
	snapshots []*model.Page
	cursor    int
	limit     int
}

// NewHistory starts a history whose only entry is a copy of initial. A limit
// of zero or less keeps every snapshot.
func NewHistory(initial *model.Page, limit int) *History {
	h := &History{limit: limit}
	h.Reset(initial)
	return h
}

// Reset drops every entry and starts over from page.
func (h *History) Reset(page *model.Page) {
	h.snapshots = []*model.Page{page.Clone()}
	h.cursor = 0
}

// Push discards any redo entries, appends a copy of page and prunes the
// oldest entries beyond the limit.
func (h *History) Push(page *model.Page) {
	h.snapshots = append(h.snapshots[:h.cursor+1], page.Clone())
	h.cursor = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		for i := 0; i < drop; i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[drop:]
		h.cursor -= drop
	}
}

// CanUndo reports whether there is an earlier snapshot.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether there is a later snapshot.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Undo moves the cursor back and returns a copy of the snapshot there.
func (h *History) Undo() (*model.Page, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.snapshots[h.cursor].Clone(), true
}

// Redo moves the cursor forward and returns a copy of the snapshot there.
func (h *History) Redo() (*model.Page, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.snapshots[h.cursor].Clone(), true
}

// Stamp sets the timestamps of the snapshot at the cursor.
func (h *History) Stamp(createdAt, updatedAt time.Time) {
	if len(h.snapshots) == 0 {
		return
	}
	snap := h.snapshots[h.cursor]
	snap.CreatedAt = createdAt
	snap.UpdatedAt = updatedAt
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}
