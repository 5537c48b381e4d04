// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that also forwards warnings and
// errors to the event log.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also writes
// WARN and ERROR level logs to an event sink.
type EventLogHandler struct {
	inner slog.Handler
	sink  store.EventSink
	level slog.Level // Minimum level to forward to the event log (default: WARN)
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
// Logs at WARN level and above are written to both the wrapped handler and sink.
func NewEventLogHandler(inner slog.Handler, sink store.EventSink) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, sink, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, sink store.EventSink, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		sink:  sink,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if h.sink != nil && r.Level >= h.level {
		h.writeToEventLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithAttrs(attrs),
		sink:  h.sink,
		level: h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner: h.inner.WithGroup(name),
		sink:  h.sink,
		level: h.level,
	}
}

// writeToEventLog records r. A background context is used so the event is
// kept even when the request context is already cancelled.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	_ = h.sink.RecordEvent(context.Background(), model.Event{
		Level:     slogLevelToEventLevel(r.Level),
		Category:  extractCategory(r),
		Message:   r.Message,
		UserID:    extractUserID(r),
		Metadata:  extractMetadata(r),
		CreatedAt: r.Time,
	})
}

func slogLevelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory returns the "category" attribute, or infers one from the
// message.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "logout"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "export") || strings.Contains(msg, "import"):
		return model.EventCategoryExport
	case strings.Contains(msg, "editor") || strings.Contains(msg, "section") || strings.Contains(msg, "undo"):
		return model.EventCategoryEditor
	case strings.Contains(msg, "page"):
		return model.EventCategoryPage
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	case strings.Contains(msg, "store") || strings.Contains(msg, "database") || strings.Contains(msg, "mongo"):
		return model.EventCategoryStore
	default:
		return model.EventCategorySystem
	}
}

func extractUserID(r slog.Record) string {
	var userID string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "user_id" {
			userID = a.Value.String()
			return false
		}
		return true
	})
	return userID
}

// extractMetadata collects the record's attributes into a JSON object.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(data)
}
