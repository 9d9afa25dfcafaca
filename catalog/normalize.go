package catalog

import "strings"

// Normalize canonicalizes a free-text substance name for comparison:
// lowercase plus leading/trailing whitespace trim. Internal punctuation and
// diacritics are kept as-is, "Ácido fólico" and "acido folico" are different
// names as far as the catalog is concerned.
//
// Whitespace-only input normalizes to the empty string, which is never a
// valid match key.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
