// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/olegiv/pagesmith/internal/model"
)

// Exporter serializes pages to the export format.
type Exporter struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewExporter creates a new Exporter instance.
func NewExporter(logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		logger: logger,
		now:    time.Now,
	}
}

// SetClock sets the time source used for ExportedAt.
func (e *Exporter) SetClock(now func() time.Time) {
	e.now = now
}

// Export wraps a copy of page in an export envelope.
func (e *Exporter) Export(page *model.Page) *PageExport {
	p := page.Clone()
	p.Sections = model.SortedByOrder(p.Sections)
	return &PageExport{
		Version:    ExportVersion,
		ExportedAt: e.now().UTC(),
		Page:       p,
	}
}

// ExportToWriter writes the export as indented JSON to the provided writer.
func (e *Exporter) ExportToWriter(page *model.Page, w io.Writer) error {
	data := e.Export(page)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	e.logger.Debug("page exported", "page_id", page.ID, "sections", len(page.Sections))
	return nil
}

// ExportAsText returns the export document as a string.
func (e *Exporter) ExportAsText(page *model.Page) (string, error) {
	var buf bytes.Buffer
	if err := e.ExportToWriter(page, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
