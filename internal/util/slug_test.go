// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"regexp"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation is dropped",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Page 123",
			expected: "page-123",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "whitespace runs",
			input:    "  my \t landing\n page  ",
			expected: "my-landing-page",
		},
		{
			name:     "repeated hyphens",
			input:    "a -- b",
			expected: "a-b",
		},
		{
			name:     "edge hyphens",
			input:    "-hello-",
			expected: "hello",
		},
		{
			name:     "empty",
			input:    "",
			expected: FallbackSlug,
		},
		{
			name:     "only symbols",
			input:    "!!! ??? ---",
			expected: FallbackSlug,
		},
		{
			name:     "non latin script",
			input:    "日本語",
			expected: FallbackSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSlug(tt.input)
			if result != tt.expected {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGenerateSlugShape(t *testing.T) {
	shape := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"My Landing Page",
		"  ---  ",
		"Ünïcödé & Friends (2026)",
		"tab\tseparated",
		"___under___score___",
		"a/b\\c",
	}

	for _, in := range inputs {
		got := GenerateSlug(in)
		if got != FallbackSlug && !shape.MatchString(got) {
			t.Errorf("GenerateSlug(%q) = %q does not match slug shape", in, got)
		}
		if !IsValidSlug(got) {
			t.Errorf("GenerateSlug(%q) = %q is not a valid slug", in, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"abc", true},
		{"", false},
		{"Hello", false},
		{"-start", false},
		{"end-", false},
		{"double--hyphen", false},
		{"with space", false},
		{"under_score", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"page": true, "page-2": true}
	got, err := UniqueSlug("page", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "page-3" {
		t.Errorf("UniqueSlug = %q, want %q", got, "page-3")
	}

	got, err = UniqueSlug("fresh", func(s string) (bool, error) { return taken[s], nil })
	if err != nil || got != "fresh" {
		t.Errorf("UniqueSlug = %q, %v, want fresh", got, err)
	}

	boom := errors.New("boom")
	if _, err := UniqueSlug("x", func(string) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("expected lookup error, got %v", err)
	}
}
