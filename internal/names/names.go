// Package names converts between the wire casing used in GraphQL text
// (camelCase) and the host casing used for generated identifiers
// (snake_case).
package names

import (
	"strings"
	"unicode"
)

// ToCamelCase converts a snake_case identifier to camelCase.
// Input that is already camelCase passes through unchanged.
func ToCamelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	wrote := false
	for _, p := range parts {
		if p == "" {
			continue
		}
		if !wrote {
			b.WriteString(p)
			wrote = true
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	if !wrote {
		return s
	}
	return b.String()
}

// ToSnakeCase converts a camelCase identifier to snake_case.
func ToSnakeCase(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
			continue
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return b.String()
}
