// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/olegiv/pagesmith/internal/model"
)

var (
	colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{1,32}|(rgb|rgba|hsl|hsla)\(\s*[0-9.,%\s/]+\))$`)
	identPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
)

// cssColor returns v when it is a plain CSS color and "" otherwise.
func cssColor(v string) string {
	v = strings.TrimSpace(v)
	if !colorPattern.MatchString(v) {
		return ""
	}
	return v
}

// cssIdent strips everything that cannot appear in a class name.
func cssIdent(v string) string {
	return identPattern.ReplaceAllString(v, "")
}

// cssString quotes v for use inside a double-quoted CSS string.
func cssString(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", "", "\r", "", "<", `\3c `)
	return r.Replace(v)
}

// styleText neutralizes sequences that would close the enclosing style element.
func styleText(v string) string {
	return caseInsensitiveReplace(v, "</style", `<\/style`)
}

// scriptText neutralizes sequences that would close the enclosing script element.
func scriptText(v string) string {
	return caseInsensitiveReplace(v, "</script", `<\/script`)
}

func caseInsensitiveReplace(s, old, repl string) string {
	lower := strings.ToLower(s)
	if !strings.Contains(lower, old) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, old)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		b.WriteString(repl)
		s = s[i+len(old):]
		lower = lower[i+len(old):]
	}
}

// sectionSelector returns the selector that scopes styles to one section.
func sectionSelector(s *model.Section) string {
	sel := ".section-" + cssIdent(string(s.Type))
	if v := cssIdent(s.Variant); v != "" {
		sel += "." + v
	}
	return sel + `[data-section-id="` + cssString(s.ID) + `"]`
}

// sectionCSS returns the rule generated from the section's styles.
func sectionCSS(s *model.Section) string {
	var b strings.Builder
	st := s.Styles
	fmt.Fprintf(&b, "%s {\n", sectionSelector(s))
	if c := cssColor(st.BackgroundColor); c != "" {
		fmt.Fprintf(&b, "  background-color: %s;\n", c)
	}
	if c := cssColor(st.TextColor); c != "" {
		fmt.Fprintf(&b, "  color: %s;\n", c)
	}
	if p := st.Padding; p != nil {
		fmt.Fprintf(&b, "  padding: %dpx %dpx %dpx %dpx;\n", p.Top, p.Right, p.Bottom, p.Left)
	} else {
		b.WriteString("  padding: 4rem 0;\n")
	}
	if m := st.Margin; m != nil {
		fmt.Fprintf(&b, "  margin-top: %dpx;\n  margin-bottom: %dpx;\n", m.Top, m.Bottom)
	}
	if custom := strings.TrimSpace(st.CustomCSS); custom != "" {
		b.WriteString("  " + styleText(custom) + "\n")
	}
	b.WriteString("}\n")
	return b.String()
}
