// CLAUDE:SUMMARY Key derivation — deterministic uppercase token from free-text tag/title for suite and section keys
package db

import "strings"

// DeriveKey builds a catalog key from user text. The primary input (usually
// the tag) wins when non-blank, otherwise the fallback (the title) is used.
// Every non-ASCII-alphanumeric rune becomes an underscore, runs of
// underscores collapse, edges are trimmed, and the result is uppercased.
// Returns "" when no key can be derived; the same inputs always produce the
// same key, which is what makes duplicate submissions detectable.
func DeriveKey(primary, fallback string) string {
	source := strings.TrimSpace(primary)
	if source == "" {
		source = strings.TrimSpace(fallback)
	}
	if source == "" {
		return ""
	}

	var b strings.Builder
	for _, r := range source {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	return strings.ToUpper(strings.Join(parts, "_"))
}
