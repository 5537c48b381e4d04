// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package workspace keeps the open editing sessions of a running server.
//
// An edit engine is not safe for concurrent use, so every session carries
// its own mutex and all access goes through Manager.With. Sessions that stay
// untouched longer than the idle timeout are dropped by SweepIdle.
package workspace

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/editor"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/service"
)

// DefaultIdleTimeout is used when Config.IdleTimeout is zero.
const DefaultIdleTimeout = 30 * time.Minute

// Config configures a Manager.
type Config struct {
	HistoryLimit int
	IdleTimeout  time.Duration
	Factory      *catalog.Factory
	Clock        func() time.Time
	Logger       *slog.Logger
}

type key struct {
	userID string
	pageID string
}

type session struct {
	mu       sync.Mutex
	engine   *editor.Engine
	lastUsed time.Time
	closed   bool
}

// Manager owns the editing sessions, one per user and page.
type Manager struct {
	pages  *service.Pages
	cfg    Config
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[key]*session
}

// State is the client view of a session.
type State struct {
	Page            *model.Page `json:"page"`
	ActiveSectionID string      `json:"activeSectionId,omitempty"`
	CanUndo         bool        `json:"canUndo"`
	CanRedo         bool        `json:"canRedo"`
}

// Snapshot returns the state of e.
func Snapshot(e *editor.Engine) State {
	return State{
		Page:            e.Page(),
		ActiveSectionID: e.ActiveSectionID(),
		CanUndo:         e.CanUndo(),
		CanRedo:         e.CanRedo(),
	}
}

// NewManager creates a session manager backed by pages.
func NewManager(pages *service.Pages, cfg Config) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.HistoryLimit == 0 {
		cfg.HistoryLimit = editor.DefaultHistoryLimit
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pages:    pages,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[key]*session),
	}
}

// Open starts a session on the stored page, or returns the state of the
// session the user already has open on it. Pages owned by someone else are
// reported as not found.
func (m *Manager) Open(ctx context.Context, userID, pageID string) (State, error) {
	k := key{userID, pageID}
	if s := m.lookup(k); s != nil {
		var st State
		err := m.use(s, k, func(e *editor.Engine) error {
			st = Snapshot(e)
			return nil
		})
		if err == nil {
			return st, nil
		}
	}

	page, err := m.pages.Load(ctx, pageID)
	if err != nil {
		return State{}, err
	}
	if page.OwnerID != userID {
		return State{}, &model.NotFoundError{Entity: "page", ID: pageID}
	}

	engine := editor.New(page,
		editor.WithFactory(m.cfg.Factory),
		editor.WithHistoryLimit(m.cfg.HistoryLimit),
		editor.WithClock(m.cfg.Clock),
		editor.WithLogger(m.logger),
	)

	m.mu.Lock()
	s, ok := m.sessions[k]
	if !ok {
		s = &session{engine: engine, lastUsed: m.cfg.Clock()}
		m.sessions[k] = s
		m.logger.Debug("editing session opened", "user_id", userID, "page_id", pageID)
	}
	m.mu.Unlock()

	var st State
	err = m.use(s, k, func(e *editor.Engine) error {
		st = Snapshot(e)
		return nil
	})
	return st, err
}

// With runs fn on the engine of an open session while holding the session
// lock. A missing session yields a NotFoundError.
func (m *Manager) With(userID, pageID string, fn func(*editor.Engine) error) error {
	k := key{userID, pageID}
	s := m.lookup(k)
	if s == nil {
		return &model.NotFoundError{Entity: "session", ID: pageID}
	}
	return m.use(s, k, fn)
}

// Save persists the page of an open session. The engine keeps its history.
func (m *Manager) Save(ctx context.Context, userID, pageID string) (*model.Page, error) {
	var saved *model.Page
	err := m.With(userID, pageID, func(e *editor.Engine) error {
		var err error
		saved, err = m.pages.Save(ctx, e.Page())
		if err != nil {
			return err
		}
		e.MarkSaved(saved)
		return nil
	})
	return saved, err
}

// Close drops a session and its unsaved changes. It reports whether a
// session was open.
func (m *Manager) Close(userID, pageID string) bool {
	k := key{userID, pageID}
	m.mu.Lock()
	s, ok := m.sessions[k]
	delete(m.sessions, k)
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return true
}

// CloseAll drops every session of pageID, for example after the page was
// deleted.
func (m *Manager) CloseAll(pageID string) int {
	m.mu.Lock()
	var closed []*session
	for k, s := range m.sessions {
		if k.pageID == pageID {
			closed = append(closed, s)
			delete(m.sessions, k)
		}
	}
	m.mu.Unlock()
	for _, s := range closed {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	}
	return len(closed)
}

// SweepIdle drops sessions unused for longer than the idle timeout.
// Sessions in use are skipped. It returns the number dropped.
func (m *Manager) SweepIdle() int {
	cutoff := m.cfg.Clock().Add(-m.cfg.IdleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, s := range m.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if s.lastUsed.Before(cutoff) {
			s.closed = true
			delete(m.sessions, k)
			n++
		}
		s.mu.Unlock()
	}
	if n > 0 {
		m.logger.Info("idle editing sessions dropped", "count", n)
	}
	return n
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) lookup(k key) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[k]
}

func (m *Manager) use(s *session, k key, fn func(*editor.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return &model.NotFoundError{Entity: "session", ID: k.pageID}
	}
	s.lastUsed = m.cfg.Clock()
	return fn(s.engine)
}
