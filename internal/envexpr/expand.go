// Package envexpr substitutes ${env.KEY} references with environment variables.
package envexpr

import (
	"os"
	"strings"
	"unicode"
)

const prefix = "${env."

// Expand replaces every ${env.KEY} in text with the value of KEY, or "" when unset.
// A reference with an invalid key or without a closing brace stays literal.
func Expand(text string) string {
	return ExpandWith(text, os.Getenv)
}

// ExpandWith is Expand with a custom lookup
func ExpandWith(text string, lookup func(key string) string) string {
	if !strings.Contains(text, prefix) {
		return text
	}
	var out strings.Builder
	for {
		start := strings.Index(text, prefix)
		if start < 0 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		rest := text[start+len(prefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(text[start:])
			return out.String()
		}
		if key := rest[:end]; isKey(key) {
			out.WriteString(lookup(key))
			text = rest[end+1:]
			continue
		}
		// keep the prefix, rescan what follows it
		out.WriteString(prefix)
		text = rest
	}
}

func isKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
