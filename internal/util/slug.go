// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides URL slug generation and validation.
package util

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a title yields no slug characters.
const FallbackSlug = "untitled"

var (
	// slugRegex matches characters that are neither slug characters nor whitespace
	slugRegex = regexp.MustCompile(`[^a-z0-9\s-]+`)
	// whitespaceRuns matches consecutive whitespace
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// GenerateSlug derives a URL slug from a page title. Accents are folded to
// their base letters, everything outside [a-z0-9] is dropped, whitespace runs
// become single hyphens and edge hyphens are trimmed. A title with nothing
// left yields FallbackSlug.
func GenerateSlug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, title)
	if err != nil {
		result = title
	}

	result = strings.ToLower(result)
	result = slugRegex.ReplaceAllString(result, "")
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" {
		return FallbackSlug
	}
	return result
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

// UniqueSlug returns base if it is free, otherwise the first of base-2,
// base-3... for which taken reports false.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		exists, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
