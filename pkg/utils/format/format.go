// Package format holds small display helpers for terminal output.
package format

import (
	"strings"
	"unicode/utf8"
)

// Truncate flattens runs of whitespace to single spaces and cuts s to at
// most max runes, ending with "…" when anything was removed.
func Truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
