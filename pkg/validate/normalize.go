package validate

import (
	"regexp"
	"strings"
)

var (
	// yearPattern matches a 4-digit year token starting with "20" that is
	// not part of a longer digit run. Digit-adjacency is checked with
	// explicit [^0-9] guards because \b does not fire between a letter and
	// a digit, which would keep years glued to names ("ijcai2026").
	yearPattern = regexp.MustCompile(`(^|[^0-9])20\d{2}($|[^0-9])`)

	// nonAlnum matches every character outside [A-Za-z0-9].
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Key derives the canonical grouping key for an entity name: year tokens and
// non-alphanumeric characters are stripped and the remainder is lowercased.
// "IJCAI 2026", "ijcai2026" and "IJCAI-2026" all yield "ijcai".
//
// Empty or purely numeric names normalize to an empty or digit-only key;
// callers must treat the empty key as a degenerate group with no merging
// guarantee.
func Key(name string) string {
	key := name
	// The guard characters are kept by the replacement and each match
	// consumes its trailing guard, so adjacent year tokens ("2025 2026")
	// need repeated passes until the string stops changing.
	for {
		stripped := yearPattern.ReplaceAllString(key, "$1$2")
		if stripped == key {
			break
		}
		key = stripped
	}
	key = nonAlnum.ReplaceAllString(key, "")
	return strings.TrimSpace(strings.ToLower(key))
}
