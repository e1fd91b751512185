// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile detects self-identifying facts in user text and folds them
// into the session's model.Profile.
package profile

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/concierge/internal/model"
)

// =============================================================================
// PATTERNS
// =============================================================================

// nameToken captures 2 to 30 letters, hyphens or apostrophes. Combining
// marks are allowed so decomposed input ("Zoe" + U+0308) still matches.
const nameToken = `([\p{L}\p{M}\-'’]{2,30})`

// Pattern is one recognition rule. Expr must contain exactly one capture
// group holding the value.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// DefaultPatterns returns the built-in rules in priority order. The slice
// is freshly allocated on every call.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "my-name-is", Expr: regexp.MustCompile(`(?i)\bmy name is ` + nameToken)},
		{Name: "i'm", Expr: regexp.MustCompile(`(?i)\bi['’]?m ` + nameToken)},
		{Name: "i-am", Expr: regexp.MustCompile(`(?i)\bi am ` + nameToken)},
		{Name: "call-me", Expr: regexp.MustCompile(`(?i)\bcall me ` + nameToken)},
	}
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Fact is a value pulled out of user text.
type Fact struct {
	Field   string // profile field, currently always "name"
	Value   string
	Pattern string // name of the rule that matched
}

// Acknowledgment is emitted when Observe changes the profile.
type Acknowledgment struct {
	Name string
}

// Text is the assistant turn announcing the update.
func (a Acknowledgment) Text() string {
	return fmt.Sprintf("Nice to meet you, %s! I'll remember your name for this session.", a.Name)
}

// Extractor applies an ordered list of patterns. The first pattern that
// matches wins; later patterns are not consulted.
type Extractor struct {
	patterns []Pattern
}

// New creates an Extractor. With no patterns it uses DefaultPatterns.
func New(patterns ...Pattern) *Extractor {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	cp := make([]Pattern, len(patterns))
	copy(cp, patterns)
	return &Extractor{patterns: cp}
}

// Patterns returns a copy of the extractor's rules in priority order.
func (e *Extractor) Patterns() []Pattern {
	cp := make([]Pattern, len(e.patterns))
	copy(cp, e.patterns)
	return cp
}

// Extract returns the first fact found in text.
func (e *Extractor) Extract(text string) (Fact, bool) {
	for _, p := range e.patterns {
		if p.Expr == nil {
			continue
		}
		m := p.Expr.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		value := norm.NFC.String(strings.TrimSpace(m[1]))
		if value == "" {
			continue
		}
		return Fact{Field: "name", Value: value, Pattern: p.Name}, true
	}
	return Fact{}, false
}

// Observe runs Extract and applies the overwrite policy to prof. A detected
// name replaces the stored one only when they differ ignoring case; an empty
// profile always takes the new name. The acknowledgment is returned only
// when the profile changed.
func (e *Extractor) Observe(prof *model.Profile, text string) (Acknowledgment, bool) {
	fact, ok := e.Extract(text)
	if !ok {
		return Acknowledgment{}, false
	}
	if current, set := prof.Name(); set && SameName(current, fact.Value) {
		return Acknowledgment{}, false
	}
	prof.SetName(fact.Value)
	return Acknowledgment{Name: fact.Value}, true
}

// SameName reports whether a and b are the same name under Unicode case
// folding.
func SameName(a, b string) bool {
	fold := cases.Fold()
	return fold.String(norm.NFC.String(a)) == fold.String(norm.NFC.String(b))
}
