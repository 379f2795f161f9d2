// Package tagset implements tag matching, filter parsing, and codebook
// diffing over the opaque tag strings used by the reference library.
//
// Tags are compared by exact value and are case-sensitive throughout;
// prefix matching is a separate, explicitly left-anchored operation.
package tagset

import "strings"

// Matches reports whether tag passes the prefix pattern list.
//
// An empty pattern list is a vacuous pass: every tag matches when no filter
// is configured. Otherwise at least one pattern must be a literal,
// case-sensitive prefix of tag. No wildcard or regex semantics.
func Matches(tag string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// FilterTags returns the tags passing the pattern list, preserving input
// order. Patterns beginning with the negation marker exclude tags matching
// the remainder; the rest are inclusion prefixes. A tag is kept when it
// matches the inclusion set (vacuously, if there are none) and matches no
// exclusion prefix.
func FilterTags(tags []string, patterns []string) []string {
	var include, exclude []string
	for _, p := range patterns {
		if rest, ok := strings.CutPrefix(p, negationMarker); ok {
			exclude = append(exclude, rest)
			continue
		}
		include = append(include, p)
	}

	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !Matches(tag, include) {
			continue
		}
		if len(exclude) > 0 && Matches(tag, exclude) {
			continue
		}
		out = append(out, tag)
	}
	return out
}
