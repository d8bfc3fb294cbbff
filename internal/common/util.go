// Package common contains small helpers shared by the client packages.
package common

import (
	"strings"
	"unicode/utf8"
)

// WipeByteArray overwrites the contents of b with zeros. It is used on
// passwords read from the terminal once they have been handed off.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Excerpt collapses whitespace in s and cuts it to at most n runes,
// marking a cut with "...".
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}
