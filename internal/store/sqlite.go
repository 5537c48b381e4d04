// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// SQLiteStore keeps pages in a SQLite database. The full document is stored
// as JSON next to the columns used for lookups and listings.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open, migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// DB returns the underlying database handle.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Save implements PageStore.
func (s *SQLiteStore) Save(ctx context.Context, page *model.Page) error {
	doc, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encoding page: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var other string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM pages WHERE slug = ? AND id <> ?`, page.Slug, page.ID,
	).Scan(&other)
	switch {
	case err == nil:
		return ErrSlugTaken
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking slug: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (id, owner_id, title, slug, is_published, section_count, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			title = excluded.title,
			slug = excluded.slug,
			is_published = excluded.is_published,
			section_count = excluded.section_count,
			document = excluded.document,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`,
		page.ID, page.OwnerID, page.Title, page.Slug, page.IsPublished, len(page.Sections),
		string(doc), formatTime(page.CreatedAt), formatTime(page.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: pages.slug") {
			return ErrSlugTaken
		}
		return fmt.Errorf("upserting page: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing page: %w", err)
	}
	return nil
}

// Get implements PageStore.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Page, error) {
	return s.getOne(ctx, `SELECT document FROM pages WHERE id = ?`, id)
}

// GetBySlug implements PageStore.
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (*model.Page, error) {
	return s.getOne(ctx, `SELECT document FROM pages WHERE slug = ?`, slug)
}

func (s *SQLiteStore) getOne(ctx context.Context, query string, arg string) (*model.Page, error) {
	var doc string
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying page: %w", err)
	}

	var page model.Page
	if err := json.Unmarshal([]byte(doc), &page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return &page, nil
}

// List implements PageStore.
func (s *SQLiteStore) List(ctx context.Context, ownerID string) ([]model.PageSummary, error) {
	query := `SELECT id, owner_id, title, slug, is_published, section_count, created_at, updated_at
		FROM pages`
	var args []any
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY updated_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.PageSummary{}
	for rows.Next() {
		var (
			sum              model.PageSummary
			created, updated string
		)
		if err := rows.Scan(&sum.ID, &sum.OwnerID, &sum.Title, &sum.Slug, &sum.IsPublished,
			&sum.SectionCount, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if sum.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return out, nil
}

// Delete implements PageStore.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugExists implements PageStore.
func (s *SQLiteStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pages WHERE slug = ? AND id <> ?`, slug, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return n > 0, nil
}

// Close implements PageStore.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordEvent implements EventSink.
func (s *SQLiteStore) RecordEvent(ctx context.Context, event model.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.Metadata == "" {
		event.Metadata = "{}"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, user_id, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		event.Level, event.Category, event.Message, event.UserID, event.Metadata, formatTime(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListEvents implements EventReader.
func (s *SQLiteStore) ListEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, level, category, message, user_id, metadata, created_at
		FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Event
	for rows.Next() {
		var (
			ev      model.Event
			created string
		)
		if err := rows.Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.UserID, &ev.Metadata, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if ev.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("parsing event time: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// DeleteEventsBefore implements EventPruner.
func (s *SQLiteStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}
	return res.RowsAffected()
}

var (
	_ PageStore   = (*SQLiteStore)(nil)
	_ EventSink   = (*SQLiteStore)(nil)
	_ EventReader = (*SQLiteStore)(nil)
	_ EventPruner = (*SQLiteStore)(nil)
)
