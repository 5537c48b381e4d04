// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/pagesmith/internal/model"
)

func TestEveryTypeHasVariants(t *testing.T) {
	for _, st := range Types() {
		variants := Variants(st)
		assert.Len(t, variants, 2, st)

		seen := map[string]bool{}
		for _, v := range variants {
			assert.NotEmpty(t, v.ID)
			assert.NotEmpty(t, v.Name)
			assert.False(t, seen[v.ID], "duplicate variant %s/%s", st, v.ID)
			seen[v.ID] = true

			require.NotNil(t, v.DefaultContent)
			assert.Equal(t, st, v.DefaultContent.SectionType())
			assert.NotEmpty(t, v.DefaultStyles.BackgroundColor)
		}
		assert.Equal(t, variants[0].ID, DefaultVariant(st))
	}
}

func TestVariantsUnknownType(t *testing.T) {
	assert.Empty(t, Variants("carousel"))
	assert.False(t, Exists("carousel", "grid"))
	assert.Equal(t, "", DefaultVariant("carousel"))
}

func TestExists(t *testing.T) {
	assert.True(t, Exists(model.SectionHero, "centered"))
	assert.True(t, Exists(model.SectionHero, "split"))
	assert.False(t, Exists(model.SectionHero, "grid"))
}

func TestVariantsReturnsCopies(t *testing.T) {
	v := Variants(model.SectionHero)[0]
	v.DefaultContent.(*model.HeroContent).Headline = "mutated"
	v.DefaultStyles.Padding.Top = 1

	again := Variants(model.SectionHero)[0]
	assert.NotEqual(t, "mutated", again.DefaultContent.(*model.HeroContent).Headline)
	assert.Equal(t, 80, again.DefaultStyles.Padding.Top)
}

func TestTypesReturnsCopy(t *testing.T) {
	types := Types()
	types[0] = "mutated"
	assert.Equal(t, model.SectionHeader, Types()[0])
}

func counterIDs() IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestFactoryNewSection(t *testing.T) {
	f := NewFactory(counterIDs())

	s, err := f.NewSection(model.SectionPricing, "tiered", 4)
	require.NoError(t, err)

	assert.Equal(t, "id-1", s.ID)
	assert.Equal(t, model.SectionPricing, s.Type)
	assert.Equal(t, "tiered", s.Variant)
	assert.Equal(t, 4, s.Order)

	pricing, ok := s.Content.(*model.PricingContent)
	require.True(t, ok)
	assert.Len(t, pricing.Plans, 2)
	assert.True(t, pricing.Plans[1].Popular)
}

func TestFactorySectionsDoNotShareDefaults(t *testing.T) {
	f := NewFactory(counterIDs())

	a, err := f.NewSection(model.SectionFeatures, "grid", 0)
	require.NoError(t, err)
	b, err := f.NewSection(model.SectionFeatures, "grid", 1)
	require.NoError(t, err)

	a.Content.(*model.FeaturesContent).Features[0].Title = "changed"
	a.Styles.Padding.Top = 1

	assert.Equal(t, "Feature One", b.Content.(*model.FeaturesContent).Features[0].Title)
	assert.Equal(t, 80, b.Styles.Padding.Top)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFactoryRejectsUnknown(t *testing.T) {
	f := NewFactory(nil)

	tests := []struct {
		name    string
		typ     model.SectionType
		variant string
		field   string
	}{
		{"unknown type", "carousel", "grid", "type"},
		{"unknown variant", model.SectionHero, "grid", "variant"},
		{"empty variant", model.SectionFAQ, "", "variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := f.NewSection(tt.typ, tt.variant, 0)
			require.Error(t, err)
			assert.Nil(t, s)

			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestFactoryDefaultIDsAreUnique(t *testing.T) {
	f := NewFactory(nil)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := f.NewSection(model.SectionCTA, "simple", i)
		require.NoError(t, err)
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}
