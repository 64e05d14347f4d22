// Package filename provides utilities for sanitizing strings into safe filenames.
package filename

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// invalidCharsRe matches characters not safe for filenames across all major OSes.
var invalidCharsRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// multiDash collapses runs of dashes/underscores.
var multiDash = regexp.MustCompile(`[-_]{2,}`)

// DefaultMaxLen is used when Sanitize is called with maxLen <= 0.
const DefaultMaxLen = 120

// Sanitize converts an arbitrary video title into a filename-safe slug.
// Invalid filesystem characters and whitespace become dashes, runs of
// dashes collapse, and leading/trailing dashes and dots are stripped. The
// title is NFC-normalized first so visually equal titles map to the same
// name. The output is truncated to maxLen bytes on a rune boundary.
func Sanitize(name string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}

	s := strings.TrimSpace(norm.NFC.String(name))
	if s == "" {
		return ""
	}

	// Replace invalid filesystem characters with dashes.
	s = invalidCharsRe.ReplaceAllString(s, "-")

	// Replace spaces and other whitespace with dashes.
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return '-'
		}
		return r
	}, s)

	// Collapse consecutive dashes / underscores.
	s = multiDash.ReplaceAllString(s, "-")

	// Strip leading/trailing dashes and dots (avoid hidden files / trailing dots on Windows).
	s = strings.Trim(s, "-.")

	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], "-.")
	}

	return s
}
