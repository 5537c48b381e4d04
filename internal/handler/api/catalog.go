// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
)

// CatalogEntry lists the variants of one section type.
type CatalogEntry struct {
	Type     model.SectionType      `json:"type"`
	Variants []model.SectionVariant `json:"variants"`
}

// Catalog returns every section type with its variants in catalog order.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	types := catalog.Types()
	entries := make([]CatalogEntry, 0, len(types))
	for _, t := range types {
		entries = append(entries, CatalogEntry{Type: t, Variants: catalog.Variants(t)})
	}
	WriteSuccess(w, entries, &Meta{Total: int64(len(entries))})
}
