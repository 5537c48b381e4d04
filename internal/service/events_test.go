// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

type recordingSink struct {
	events []model.Event
	err    error
}

func (r *recordingSink) RecordEvent(_ context.Context, e model.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

type pruningSink struct {
	recordingSink
	cutoff time.Time
}

func (p *pruningSink) DeleteEventsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.cutoff = cutoff
	return 3, nil
}

func TestLogEvent(t *testing.T) {
	sink := &recordingSink{}
	svc := NewEventService(sink)
	ctx := context.Background()

	err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryPage, "Test message", "user-1", map[string]any{
		"key": "value",
	})
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	if len(sink.events) != 1 {
		t.Fatalf("event count = %d, want 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Level != "info" {
		t.Errorf("level = %q, want %q", ev.Level, "info")
	}
	if ev.Category != "page" {
		t.Errorf("category = %q, want %q", ev.Category, "page")
	}
	if ev.Message != "Test message" {
		t.Errorf("message = %q, want %q", ev.Message, "Test message")
	}
	if ev.UserID != "user-1" {
		t.Errorf("user_id = %q, want %q", ev.UserID, "user-1")
	}
	if ev.Metadata != `{"key":"value"}` {
		t.Errorf("metadata = %q, want %q", ev.Metadata, `{"key":"value"}`)
	}
	if ev.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestLogEvent_NilMetadata(t *testing.T) {
	sink := &recordingSink{}
	svc := NewEventService(sink)

	if err := svc.LogEvent(context.Background(), model.EventLevelInfo, model.EventCategoryAuth, "Test", "", nil); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
	if got := sink.events[0].Metadata; got != "{}" {
		t.Errorf("metadata = %q, want %q", got, "{}")
	}
}

func TestLogEvent_SinkError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewEventService(&recordingSink{err: boom})

	err := svc.LogInfo(context.Background(), model.EventCategorySystem, "x", "", nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestLogEvent_Disabled(t *testing.T) {
	var nilSvc *EventService
	if err := nilSvc.LogInfo(context.Background(), model.EventCategoryPage, "x", "", nil); err != nil {
		t.Errorf("nil service: %v", err)
	}
	if err := NewEventService(nil).LogError(context.Background(), model.EventCategoryPage, "x", "", nil); err != nil {
		t.Errorf("nil sink: %v", err)
	}
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name         string
		logFn        func(*EventService, context.Context) error
		wantLevel    string
		wantCategory string
	}{
		{"info", func(s *EventService, ctx context.Context) error {
			return s.LogInfo(ctx, model.EventCategoryPage, "Page created", "", nil)
		}, "info", "page"},
		{"warning", func(s *EventService, ctx context.Context) error {
			return s.LogWarning(ctx, model.EventCategorySystem, "Low disk space", "", nil)
		}, "warning", "system"},
		{"error", func(s *EventService, ctx context.Context) error {
			return s.LogError(ctx, model.EventCategoryAuth, "Login failed", "", nil)
		}, "error", "auth"},
		{"auth", func(s *EventService, ctx context.Context) error {
			return s.LogAuthEvent(ctx, model.EventLevelInfo, "Demo login", "demo-user-1", nil)
		}, "info", "auth"},
		{"export", func(s *EventService, ctx context.Context) error {
			return s.LogExportEvent(ctx, model.EventLevelInfo, "Static export", "u", nil)
		}, "info", "export"},
		{"system", func(s *EventService, ctx context.Context) error {
			return s.LogSystemEvent(ctx, model.EventLevelWarning, "Sweep", nil)
		}, "warning", "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			if err := tt.logFn(NewEventService(sink), context.Background()); err != nil {
				t.Fatalf("log failed: %v", err)
			}
			if sink.events[0].Level != tt.wantLevel {
				t.Errorf("level = %q, want %q", sink.events[0].Level, tt.wantLevel)
			}
			if sink.events[0].Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", sink.events[0].Category, tt.wantCategory)
			}
		})
	}
}

func TestDeleteOldEvents(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	sink := &pruningSink{}
	svc := NewEventService(sink)
	svc.now = func() time.Time { return now }

	n, err := svc.DeleteOldEvents(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}
	if !sink.cutoff.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("cutoff = %v", sink.cutoff)
	}

	n, err = NewEventService(&recordingSink{}).DeleteOldEvents(context.Background(), time.Hour)
	if err != nil || n != 0 {
		t.Errorf("non-pruning sink: n=%d err=%v", n, err)
	}
}
