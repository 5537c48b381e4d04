// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth   = "auth"
	EventCategoryPage   = "page"
	EventCategoryEditor = "editor"
	EventCategoryExport = "export"
	EventCategoryStore  = "store"
	EventCategoryCache  = "cache"
	EventCategorySystem = "system"
)

// Event represents an event log entry.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	Metadata  string    `json:"metadata,omitempty"` // JSON string
	CreatedAt time.Time `json:"createdAt"`
}
