// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the page persistence gateway and event logging
// used by the HTTP layer.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/store"
)

// EventService provides event logging functionality.
// A nil sink turns every call into a no-op.
type EventService struct {
	sink store.EventSink
	now  func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(sink store.EventSink) *EventService {
	return &EventService{
		sink: sink,
		now:  time.Now,
	}
}

// Enabled reports whether events are recorded anywhere.
func (s *EventService) Enabled() bool {
	return s != nil && s.sink != nil
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message, userID string, metadata map[string]any) error {
	if !s.Enabled() {
		return nil
	}

	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	err := s.sink.RecordEvent(ctx, model.Event{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		Metadata:  metadataJSON,
		CreatedAt: s.now(),
	})
	if err != nil {
		slog.Error("failed to log event", "error", err, "category", category)
		return err
	}

	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, userID, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, userID, metadata)
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogPageEvent logs a page-related event.
func (s *EventService) LogPageEvent(ctx context.Context, level, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryPage, message, userID, metadata)
}

// LogExportEvent logs an export-related event.
func (s *EventService) LogExportEvent(ctx context.Context, level, message, userID string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryExport, message, userID, metadata)
}

// LogSystemEvent logs a system-related event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, "", metadata)
}

// DeleteOldEvents removes events older than the specified duration when the
// sink supports it.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}
	pruner, ok := s.sink.(store.EventPruner)
	if !ok {
		return 0, nil
	}
	return pruner.DeleteEventsBefore(ctx, s.now().Add(-olderThan))
}
