// Package sanitize cleans values read from spreadsheet cells.
//
// Cells pasted from other documents routinely carry invisible Unicode
// (zero-width spaces, BOMs, soft hyphens) and stray whitespace that would
// otherwise end up inside generated filenames or break matching.
package sanitize

import "strings"

// invisibleChars are zero-width and otherwise invisible code points that
// survive copy/paste but must never reach a filename.
var invisibleChars = []string{
	"​",      // Zero-width space
	"‌",      // Zero-width non-joiner
	"‍",      // Zero-width joiner
	"\uFEFF", // Zero-width no-break space (BOM)
	"­",      // Soft hyphen
	"⁠",      // Word joiner
	"᠎",      // Mongolian vowel separator
}

// CleanCell sanitizes a value destined for a generated filename
// (Prefix, New_Filename) or the audit log (Notes): invisible characters
// are removed and surrounding whitespace trimmed.
func CleanCell(value string) string {
	if value == "" {
		return value
	}
	value = removeInvisibleChars(value)
	return strings.TrimSpace(value)
}

// CleanKey sanitizes the Current_Filename join key. Only surrounding
// whitespace and a leading BOM are removed: interior characters are kept
// verbatim so the key still matches on-disk names exactly, however odd.
func CleanKey(value string) string {
	if value == "" {
		return value
	}
	value = strings.TrimPrefix(value, "\uFEFF")
	return strings.TrimSpace(value)
}

// removeInvisibleChars removes zero-width and other invisible Unicode characters.
func removeInvisibleChars(s string) string {
	for _, char := range invisibleChars {
		s = strings.ReplaceAll(s, char, "")
	}
	return s
}
