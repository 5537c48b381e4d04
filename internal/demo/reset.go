// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo restores the demo content of a public demo instance.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/store"
)

const (
	// timestampFile is the name of the file storing the last reset time.
	timestampFile = ".last_reset"

	// ResetInterval is how often the demo data should be refreshed.
	ResetInterval = 24 * time.Hour
)

// Resetter wipes every page and seeds the demo page again.
type Resetter struct {
	store    store.PageStore
	factory  *catalog.Factory
	dataDir  string
	onDelete func(pageID string)
	now      func() time.Time

	mu        sync.Mutex
	lastReset time.Time
}

// NewResetter creates a resetter for s. The last reset time is kept in
// dataDir, or only in memory when dataDir is empty. onDelete, when set, is
// called for every removed page.
func NewResetter(s store.PageStore, factory *catalog.Factory, dataDir string, onDelete func(pageID string)) *Resetter {
	return &Resetter{
		store:    s,
		factory:  factory,
		dataDir:  dataDir,
		onDelete: onDelete,
		now:      time.Now,
	}
}

// ResetIfNeeded performs a reset when more than ResetInterval has passed
// since the last one. This covers a machine that was stopped overnight.
func (r *Resetter) ResetIfNeeded(ctx context.Context) (bool, error) {
	last, err := r.lastResetTime()
	if err != nil {
		return false, err
	}
	if !last.IsZero() && r.now().Sub(last) < ResetInterval {
		slog.Info("demo reset not needed",
			"last_reset", last.UTC().Format(time.RFC3339),
			"next_reset", last.Add(ResetInterval).UTC().Format(time.RFC3339),
		)
		return false, nil
	}

	slog.Info("demo reset overdue, resetting pages")
	return true, r.Reset(ctx)
}

// Reset deletes every page, seeds the demo page and records the reset time.
func (r *Resetter) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pages, err := r.store.List(ctx, "")
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}
	for _, p := range pages {
		if err := r.store.Delete(ctx, p.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deleting page %s: %w", p.ID, err)
		}
		if r.onDelete != nil {
			r.onDelete(p.ID)
		}
	}
	slog.Info("demo pages deleted", "count", len(pages))

	now := r.now().UTC()
	if err := store.Seed(ctx, r.store, r.factory, now); err != nil {
		return fmt.Errorf("seeding demo page: %w", err)
	}

	r.lastReset = now
	if r.dataDir != "" {
		if err := writeTimestamp(r.dataDir, now); err != nil {
			return fmt.Errorf("writing reset timestamp: %w", err)
		}
	}

	slog.Info("demo reset complete")
	return nil
}

// Job adapts Reset to the scheduler's job signature.
func (r *Resetter) Job() func(context.Context) error {
	return r.Reset
}

func (r *Resetter) lastResetTime() (time.Time, error) {
	r.mu.Lock()
	last := r.lastReset
	r.mu.Unlock()
	if !last.IsZero() || r.dataDir == "" {
		return last, nil
	}

	data, err := os.ReadFile(filepath.Join(r.dataDir, timestampFile))
	if os.IsNotExist(err) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading reset timestamp: %w", err)
	}

	unixSec, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		// A corrupt timestamp counts as never reset
		return time.Time{}, nil
	}
	return time.Unix(unixSec, 0), nil
}

// writeTimestamp writes the UTC unix timestamp to the data directory.
func writeTimestamp(dataDir string, t time.Time) error {
	tsPath := filepath.Join(dataDir, timestampFile)
	data := []byte(strconv.FormatInt(t.Unix(), 10))
	return os.WriteFile(tsPath, data, 0o600)
}
