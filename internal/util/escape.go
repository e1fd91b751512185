// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// SECURITY: Text from the user or the endpoint must never drive the
// terminal. Escape runs on every string before it reaches a renderer.

// Escape makes s safe to print to a terminal. ANSI escape sequences (CSI,
// OSC, DCS and friends) are removed, then any remaining control characters
// other than newline and tab are dropped. "\r\n" becomes "\n" and Unicode
// line and paragraph separators become plain newlines.
func Escape(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		case r == '\u2028' || r == '\u2029':
			return '\n'
		default:
			return r
		}
	}, s)
}
