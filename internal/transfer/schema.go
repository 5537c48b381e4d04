// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package transfer converts pages to and from the portable JSON export format.
package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// ExportVersion is the current version of the export format.
const ExportVersion = "1.0"

// MaxImportSize limits the size of an import document.
const MaxImportSize = 5 << 20

// PageExport is the export envelope around a single page.
type PageExport struct {
	Version    string      `json:"version"`
	ExportedAt time.Time   `json:"exportedAt"`
	Page       *model.Page `json:"page"`
}

// ImportError describes a single problem found in an import document.
type ImportError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ImportError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult summarizes an import document without importing it.
type ValidationResult struct {
	Valid        bool          `json:"valid"`
	Version      string        `json:"version,omitempty"`
	Title        string        `json:"title,omitempty"`
	Sections     int           `json:"sections"`
	UnknownTypes []string      `json:"unknownTypes,omitempty"`
	Errors       []ImportError `json:"errors"`
}

// ImportOptions configures how an imported page is adopted.
type ImportOptions struct {
	// OwnerID replaces the owner recorded in the document when set.
	OwnerID string
}

// toValidationError folds import errors into a single model.ValidationError.
func toValidationError(errs []ImportError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	field := errs[0].Field
	if field == "" {
		field = "import"
	}
	return &model.ValidationError{
		Field:   field,
		Message: fmt.Sprintf("invalid import document: %s", strings.Join(msgs, "; ")),
	}
}
