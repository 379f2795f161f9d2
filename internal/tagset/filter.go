package tagset

import (
	"errors"
	"fmt"
	"strings"
)

// negationMarker flags a filter or pattern as an exclusion.
const negationMarker = "-"

// ErrInvalidFilter indicates a filter string that is empty after trimming
// and negation-stripping. It is reported before any remote call is made.
var ErrInvalidFilter = errors.New("invalid tag filter")

// Filter is a single inclusion or exclusion condition on item tags.
// Filters combine with AND semantics: every filter in the active set must
// hold for an item to match.
type Filter struct {
	// Tag is the exact tag value to require or exclude.
	Tag string

	// Exclude means the item must NOT carry Tag.
	Exclude bool
}

// String renders the filter in the remote API's native convention: a single
// leading negation marker for exclusions, the bare tag otherwise.
func (f Filter) String() string {
	if f.Exclude {
		return negationMarker + f.Tag
	}
	return f.Tag
}

// ParseFilter parses one filter string. A leading negation marker means
// "must not carry this tag"; the marker is stripped from the stored tag.
func ParseFilter(s string) (Filter, error) {
	trimmed := strings.TrimSpace(s)
	tag, exclude := strings.CutPrefix(trimmed, negationMarker)
	if strings.TrimSpace(tag) == "" {
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return Filter{Tag: tag, Exclude: exclude}, nil
}

// ParseFilters parses a list of filter strings, preserving order. Any
// invalid entry fails the whole set.
func ParseFilters(raw []string) ([]Filter, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	filters := make([]Filter, 0, len(raw))
	for _, s := range raw {
		f, err := ParseFilter(s)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
