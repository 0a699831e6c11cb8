package render

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// DefaultOwnerPatterns are the name variants of the portfolio owner that get
// emphasised in author lists.
//
//nolint:gochecknoglobals // Read-only default pattern list.
var DefaultOwnerPatterns = []string{
	`Charles A(?:bdoulaye)? Ngom`,
	`C\.?A\.? Ngom`,
	`CA Ngom`,
}

// ErrNoPatterns is returned when a Highlighter is built from an empty list.
var ErrNoPatterns = errors.New("at least one highlight pattern is required")

// Highlighter finds owner name variants in author lists.
// Matching is literal regular-expression matching, case-insensitive. All
// patterns are tried as one alternation so a substring is wrapped at most once.
type Highlighter struct {
	re       *regexp.Regexp
	patterns []string
}

// NewHighlighter compiles the given patterns.
func NewHighlighter(patterns []string) (*Highlighter, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	alternatives := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("compiling highlight pattern %q: %w", p, err)
		}
		alternatives = append(alternatives, "(?:"+p+")")
	}

	re, err := regexp.Compile("(?i)" + strings.Join(alternatives, "|"))
	if err != nil {
		return nil, fmt.Errorf("compiling highlight patterns: %w", err)
	}

	kept := make([]string, len(patterns))
	copy(kept, patterns)
	return &Highlighter{re: re, patterns: kept}, nil
}

// MustHighlighter is NewHighlighter for static pattern lists.
func MustHighlighter(patterns []string) *Highlighter {
	h, err := NewHighlighter(patterns)
	if err != nil {
		panic(err)
	}
	return h
}

// DefaultHighlighter returns a Highlighter for DefaultOwnerPatterns.
func DefaultHighlighter() *Highlighter {
	return MustHighlighter(DefaultOwnerPatterns)
}

// Wrap replaces every match in s with wrap(match).
func (h *Highlighter) Wrap(s string, wrap func(string) string) string {
	if h == nil || s == "" {
		return s
	}
	return h.re.ReplaceAllStringFunc(s, wrap)
}

// Strong HTML-escapes the raw text s and wraps every match in a <strong>
// element. Matching runs before escaping so patterns may contain quotes or
// ampersands. A nil Highlighter only escapes.
func (h *Highlighter) Strong(s string) string {
	if h == nil || s == "" {
		return template.HTMLEscapeString(s)
	}

	var b strings.Builder
	last := 0
	for _, loc := range h.re.FindAllStringIndex(s, -1) {
		b.WriteString(template.HTMLEscapeString(s[last:loc[0]]))
		b.WriteString("<strong>")
		b.WriteString(template.HTMLEscapeString(s[loc[0]:loc[1]]))
		b.WriteString("</strong>")
		last = loc[1]
	}
	b.WriteString(template.HTMLEscapeString(s[last:]))
	return b.String()
}

// Matches reports whether s contains an owner name variant.
func (h *Highlighter) Matches(s string) bool {
	return h != nil && h.re.MatchString(s)
}

// Patterns returns the source patterns.
func (h *Highlighter) Patterns() []string {
	out := make([]string, len(h.patterns))
	copy(out, h.patterns)
	return out
}
