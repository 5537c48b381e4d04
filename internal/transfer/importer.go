// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/pagesmith/internal/catalog"
	"github.com/olegiv/pagesmith/internal/model"
	"github.com/olegiv/pagesmith/internal/util"
)

// Importer parses export documents into pages ready to be saved.
type Importer struct {
	logger *slog.Logger
	newID  func() string
}

// NewImporter creates a new Importer instance. A nil newID uses random UUIDs.
func NewImporter(newID func() string, logger *slog.Logger) *Importer {
	if newID == nil {
		newID = uuid.NewString
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		logger: logger,
		newID:  newID,
	}
}

// document is the loosely typed view of an import used for validation.
type document struct {
	version string
	page    map[string]json.RawMessage
	raw     json.RawMessage
}

// parse accepts either an export envelope or a bare page object.
func parse(data []byte) (*document, []ImportError) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, []ImportError{{Field: "json", Message: "empty document"}}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, []ImportError{{Field: "json", Message: err.Error()}}
	}

	doc := &document{}
	if rawPage, ok := top["page"]; ok {
		if rawVersion, ok := top["version"]; ok {
			if err := json.Unmarshal(rawVersion, &doc.version); err != nil {
				return nil, []ImportError{{Field: "version", Message: "must be a string"}}
			}
		}
		if err := json.Unmarshal(rawPage, &doc.page); err != nil || doc.page == nil {
			return nil, []ImportError{{Field: "page", Message: "must be an object"}}
		}
		doc.raw = rawPage
	} else {
		doc.page = top
		doc.raw = data
	}
	return doc, nil
}

// validate checks the structure of a parsed page.
func (d *document) validate() ([]ImportError, []string, int) {
	var errs []ImportError

	if d.version != "" && d.version != ExportVersion {
		errs = append(errs, ImportError{Field: "version", Message: fmt.Sprintf("unsupported version %q", d.version)})
	}

	for _, field := range []string{"id", "title"} {
		raw, ok := d.page[field]
		if !ok {
			errs = append(errs, ImportError{Field: field, Message: "is required"})
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			errs = append(errs, ImportError{Field: field, Message: "must be a non-empty string"})
		}
	}

	rawSections, ok := d.page["sections"]
	if !ok {
		errs = append(errs, ImportError{Field: "sections", Message: "is required"})
		return errs, nil, 0
	}
	var sections []map[string]json.RawMessage
	if err := json.Unmarshal(rawSections, &sections); err != nil || sections == nil {
		errs = append(errs, ImportError{Field: "sections", Message: "must be an array of objects"})
		return errs, nil, 0
	}

	var unknown []string
	seen := make(map[string]int, len(sections))
	for idx, s := range sections {
		field := "sections[" + strconv.Itoa(idx) + "]"
		var id string
		if raw, ok := s["id"]; !ok || json.Unmarshal(raw, &id) != nil || strings.TrimSpace(id) == "" {
			errs = append(errs, ImportError{Field: field + ".id", Message: "is required"})
		} else if first, dup := seen[id]; dup {
			errs = append(errs, ImportError{Field: field + ".id", Message: fmt.Sprintf("duplicates sections[%d]", first)})
		} else {
			seen[id] = idx
		}

		var t string
		if raw, ok := s["type"]; !ok || json.Unmarshal(raw, &t) != nil || t == "" {
			errs = append(errs, ImportError{Field: field + ".type", Message: "is required"})
			continue
		}
		typ := model.SectionType(t)
		if !typ.Valid() {
			if !slices.Contains(unknown, t) {
				unknown = append(unknown, t)
			}
			continue
		}

		var variant string
		if raw, ok := s["variant"]; ok {
			_ = json.Unmarshal(raw, &variant)
		}
		if !catalog.Exists(typ, variant) {
			errs = append(errs, ImportError{Field: field + ".variant", Message: fmt.Sprintf("unknown %s variant %q", t, variant)})
		}
	}
	return errs, unknown, len(sections)
}

// Validate reports what an import would do without producing a page.
func (i *Importer) Validate(data []byte) *ValidationResult {
	result := &ValidationResult{Valid: true, Errors: []ImportError{}}

	doc, errs := parse(data)
	if len(errs) > 0 {
		result.Valid = false
		result.Errors = errs
		return result
	}

	result.Version = doc.version
	if raw, ok := doc.page["title"]; ok {
		_ = json.Unmarshal(raw, &result.Title)
	}

	errs, unknown, count := doc.validate()
	result.Sections = count
	result.UnknownTypes = unknown
	if len(errs) > 0 {
		result.Valid = false
		result.Errors = errs
	}
	return result
}

// Import parses data and returns a page ready to be saved under a fresh id.
// Section ids must be present and unique, and known section types must use a
// catalog variant. Section ids, content and timestamps are kept. The slug is derived from the
// title and the page starts unpublished. Callers are responsible for making
// the slug unique.
func (i *Importer) Import(data []byte, opts ImportOptions) (*model.Page, error) {
	doc, errs := parse(data)
	if len(errs) > 0 {
		return nil, toValidationError(errs)
	}
	errs, unknown, _ := doc.validate()
	if len(errs) > 0 {
		return nil, toValidationError(errs)
	}

	var page model.Page
	if err := json.Unmarshal(doc.raw, &page); err != nil {
		if model.IsValidation(err) {
			return nil, err
		}
		return nil, &model.ValidationError{Field: "page", Message: err.Error()}
	}

	sourceID := page.ID
	page.ID = i.newID()
	if opts.OwnerID != "" {
		page.OwnerID = opts.OwnerID
	}
	page.IsPublished = false
	page.Slug = util.GenerateSlug(page.Title)
	page.SlugIsManual = false
	if page.Sections == nil {
		page.Sections = []model.Section{}
	}
	page.Sections = model.NormalizeOrder(page.Sections)

	if len(unknown) > 0 {
		i.logger.Warn("import kept sections of unknown type", "types", unknown, "source_id", sourceID)
	}
	i.logger.Info("page imported", "source_id", sourceID, "page_id", page.ID, "sections", len(page.Sections))
	return &page, nil
}

// ImportFromReader reads at most MaxImportSize bytes from r and imports them.
func (i *Importer) ImportFromReader(r io.Reader, opts ImportOptions) (*model.Page, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read import: %w", err)
	}
	if len(data) > MaxImportSize {
		return nil, &model.ValidationError{Field: "import", Message: "document is too large"}
	}
	return i.Import(data, opts)
}

// ImportFromText imports a document held in a string.
func (i *Importer) ImportFromText(text string, opts ImportOptions) (*model.Page, error) {
	return i.ImportFromReader(strings.NewReader(text), opts)
}
