// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/olegiv/pagesmith/internal/model"
)

// IDFunc generates identifiers for new sections.
type IDFunc func() string

// Factory builds sections populated from catalog defaults.
type Factory struct {
	newID IDFunc
}

// NewFactory creates a factory. A nil newID falls back to random UUIDs.
func NewFactory(newID IDFunc) *Factory {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Factory{newID: newID}
}

// NewSection creates a section of type t and the given variant at order.
// Content and styles are fresh copies of the variant defaults. Unknown types
// and variants are rejected with a ValidationError.
func (f *Factory) NewSection(t model.SectionType, variantID string, order int) (*model.Section, error) {
	if !t.Valid() {
		return nil, &model.ValidationError{Field: "type", Message: fmt.Sprintf("unknown section type %q", t)}
	}
	v, ok := Variant(t, variantID)
	if !ok {
		return nil, &model.ValidationError{Field: "variant", Message: fmt.Sprintf("unknown variant %q for %s", variantID, t)}
	}

	return &model.Section{
		ID:      f.newID(),
		Type:    t,
		Variant: v.ID,
		Content: v.DefaultContent,
		Styles:  v.DefaultStyles.Clone(),
		Order:   order,
	}, nil
}

// NewID returns a fresh identifier from the factory's generator.
func (f *Factory) NewID() string {
	return f.newID()
}
