package domain

import "strings"

// NormalizeName lowercases and collapses whitespace. Barangay, calamity and
// documentation folder names are stored and looked up in this form, so the
// display label and the storage key never drift apart.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
