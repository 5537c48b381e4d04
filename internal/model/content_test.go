// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionTypeValid(t *testing.T) {
	for _, st := range AllSectionTypes {
		assert.True(t, st.Valid(), st)
	}
	assert.False(t, SectionType("carousel").Valid())
	assert.False(t, SectionType("").Valid())
	assert.Len(t, AllSectionTypes, 15)
}

func TestSectionJSONDispatchesOnType(t *testing.T) {
	data := []byte(`{
		"id": "s1",
		"type": "hero",
		"variant": "centered",
		"content": {"headline": "Hi", "cta": {"primary": {"text": "Go", "href": "/go"}}},
		"styles": {"backgroundColor": "#fff", "padding": {"top": 10, "right": 0, "bottom": 10, "left": 0}},
		"order": 2
	}`)

	var s Section
	require.NoError(t, json.Unmarshal(data, &s))

	hero, ok := s.Content.(*HeroContent)
	require.True(t, ok, "content type = %T", s.Content)
	assert.Equal(t, "Hi", hero.Headline)
	require.NotNil(t, hero.CTA.Primary)
	assert.Equal(t, "/go", hero.CTA.Primary.Href)
	assert.Equal(t, 2, s.Order)
	require.NotNil(t, s.Styles.Padding)
	assert.Equal(t, 10, s.Styles.Padding.Top)

	out, err := json.Marshal(s)
	require.NoError(t, err)

	var again Section
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, s, again)
}

func TestSectionJSONUnknownTypeKeepsRawContent(t *testing.T) {
	data := []byte(`{"id":"x","type":"carousel","variant":"v","content":{"slides":3},"styles":{},"order":0}`)

	var s Section
	require.NoError(t, json.Unmarshal(data, &s))

	raw, ok := s.Content.(RawContent)
	require.True(t, ok)
	assert.Equal(t, float64(3), raw["slides"])
}

func TestSectionJSONMissingContent(t *testing.T) {
	var s Section
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","type":"faq","variant":"grid","order":0}`), &s))
	assert.IsType(t, &FAQContent{}, s.Content)
}

func TestMergeContent(t *testing.T) {
	orig := &HeroContent{
		Headline:    "Old",
		Subheadline: "Keep me",
	}

	merged, err := MergeContent(SectionHero, orig, map[string]any{"headline": "New"})
	require.NoError(t, err)

	hero := merged.(*HeroContent)
	assert.Equal(t, "New", hero.Headline)
	assert.Equal(t, "Keep me", hero.Subheadline)
	assert.Equal(t, "Old", orig.Headline, "original must not change")
}

func TestMergeContentReplacesTopLevelValue(t *testing.T) {
	orig := &StatsContent{
		Title: "Numbers",
		Stats: []Stat{{Number: "1", Label: "a"}, {Number: "2", Label: "b"}},
	}

	merged, err := MergeContent(SectionStats, orig, map[string]any{
		"stats": []map[string]string{{"number": "9", "label": "z"}},
	})
	require.NoError(t, err)

	stats := merged.(*StatsContent)
	assert.Equal(t, []Stat{{Number: "9", Label: "z"}}, stats.Stats)
	assert.Equal(t, "Numbers", stats.Title)
}

func TestMergeContentNullClearsField(t *testing.T) {
	orig := &CTAContent{
		Title: "Join",
		CTA:   &Button{Text: "Go", Href: "#go"},
	}

	merged, err := MergeContent(SectionCTA, orig, map[string]any{"cta": nil, "subtitle": nil})
	require.NoError(t, err)

	cta := merged.(*CTAContent)
	assert.Nil(t, cta.CTA)
	assert.Empty(t, cta.Subtitle)
	assert.Equal(t, "Join", cta.Title)
	assert.NotNil(t, orig.CTA, "original must not change")
}

func TestMergeContentRejectsBadPatch(t *testing.T) {
	tests := []struct {
		name  string
		patch map[string]any
	}{
		{"unknown field", map[string]any{"nope": "x"}},
		{"wrong type", map[string]any{"headline": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeContent(SectionHero, &HeroContent{}, tt.patch)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCloneContentIsDeep(t *testing.T) {
	orig := &TeamContent{
		Members: []Member{{Name: "A", Social: map[string]string{"x": "1"}}},
	}

	clone := CloneContent(SectionTeam, orig).(*TeamContent)
	clone.Members[0].Name = "B"
	clone.Members[0].Social["x"] = "2"

	assert.Equal(t, "A", orig.Members[0].Name)
	assert.Equal(t, "1", orig.Members[0].Social["x"])
}

func TestStylePatchApply(t *testing.T) {
	color := "#000"
	base := Styles{BackgroundColor: "#fff", TextColor: "#111", Padding: &Spacing{Top: 1}}

	out := (&StylePatch{BackgroundColor: &color}).Apply(base)

	assert.Equal(t, "#000", out.BackgroundColor)
	assert.Equal(t, "#111", out.TextColor)
	require.NotNil(t, out.Padding)
	out.Padding.Top = 99
	assert.Equal(t, 1, base.Padding.Top, "padding must be copied")

	assert.True(t, (*StylePatch)(nil).Empty())
	assert.True(t, (&StylePatch{}).Empty())
	assert.False(t, (&StylePatch{TextColor: &color}).Empty())
}
