// Package query builds the boolean tag expressions consumed by the remote
// library API.
//
// The API's tag parameter model: each tag parameter is one AND condition;
// within a single parameter, tags joined by " || " form an OR group; a tag
// term with a single leading "-" is negated. An expression with no conjuncts
// means "no restriction".
package query

import (
	"strings"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
)

// orSeparator joins the members of one OR group into a single tag parameter.
const orSeparator = " || "

// Expression is a conjunction of tag conditions. Each conjunct becomes one
// tag parameter on the remote query; all must hold for an item to match.
type Expression struct {
	conjuncts []string
}

// FromFilters converts a parsed filter set into an expression: every filter
// is an independent AND condition, exclusions rendered in the API's native
// single-leading-"-" convention. A nil or empty filter set reduces to no
// restriction.
func FromFilters(filters []tagset.Filter) Expression {
	if len(filters) == 0 {
		return Expression{}
	}
	conjuncts := make([]string, 0, len(filters))
	for _, f := range filters {
		conjuncts = append(conjuncts, f.String())
	}
	return Expression{conjuncts: conjuncts}
}

// Union builds a single OR-group conjunct matching any of the given tags.
// Blank entries are dropped; if nothing remains the result is no
// restriction, not a query that matches nothing.
func Union(tags []string) Expression {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if strings.TrimSpace(t) != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return Expression{}
	}
	return Expression{conjuncts: []string{strings.Join(kept, orSeparator)}}
}

// WithTags returns e extended with one exact-match conjunct per tag. Used by
// the correlation builder to pin a (row, column) pair onto the global
// filter set.
func (e Expression) WithTags(tags ...string) Expression {
	combined := make([]string, 0, len(e.conjuncts)+len(tags))
	combined = append(combined, e.conjuncts...)
	combined = append(combined, tags...)
	return Expression{conjuncts: combined}
}

// Conjuncts returns the tag parameters in order. Callers must not modify
// the returned slice.
func (e Expression) Conjuncts() []string {
	return e.conjuncts
}

// Empty reports whether the expression places no restriction on items.
func (e Expression) Empty() bool {
	return len(e.conjuncts) == 0
}

// String renders the expression for log and error messages.
func (e Expression) String() string {
	if e.Empty() {
		return "<any>"
	}
	return strings.Join(e.conjuncts, " && ")
}
