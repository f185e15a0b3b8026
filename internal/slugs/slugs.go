// Package slugs provides the canonical form for plant ids.
//
// Plant ids are lowercase ASCII slugs derived from the English common name,
// e.g. "philodendron-heartleaf" or "maple-japanese". The same form is used
// as the join key across the metadata store, every language file, and the
// merged dist resources, so id shape problems surface everywhere at once.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Canonical converts a name to the canonical plant-id form, built on
// gosimple/slug with a lowercase fallback for inputs it rejects outright.
func Canonical(name string) string {
	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}
	return slugged
}

// IsCanonical reports whether id is already in canonical form. Ids that
// fail this round-trip (uppercase, spaces, diacritics, stray punctuation)
// would sort and join unpredictably.
func IsCanonical(id string) bool {
	return id != "" && id == Canonical(id)
}

// SharesPrefix reports whether one id is a dash-boundary prefix of the
// other, e.g. "rhipsalis" and "rhipsalis-baccifera". Such pairs often mean
// the same plant was entered twice, once under a broader name.
func SharesPrefix(a, b string) bool {
	if a == b || a == "" || b == "" {
		return false
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	return strings.HasPrefix(b, a+"-")
}
