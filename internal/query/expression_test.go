package query

import (
	"reflect"
	"testing"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
)

func TestFromFilters(t *testing.T) {
	t.Parallel()

	filters, err := tagset.ParseFilters([]string{"#RELEVANCE: Direct", "-#exclude"})
	if err != nil {
		t.Fatalf("ParseFilters() error = %v", err)
	}

	expr := FromFilters(filters)
	want := []string{"#RELEVANCE: Direct", "-#exclude"}
	if !reflect.DeepEqual(expr.Conjuncts(), want) {
		t.Fatalf("Conjuncts() = %v, want %v", expr.Conjuncts(), want)
	}
	if expr.Empty() {
		t.Fatalf("expression should not be empty")
	}
}

func TestFromFiltersEmpty(t *testing.T) {
	t.Parallel()

	expr := FromFilters(nil)
	if !expr.Empty() {
		t.Fatalf("nil filters must reduce to no restriction")
	}
	if expr.String() != "<any>" {
		t.Fatalf("String() = %q", expr.String())
	}
}

func TestUnion(t *testing.T) {
	t.Parallel()

	expr := Union([]string{"Japan", "", "  ", "Korea"})
	want := []string{"Japan || Korea"}
	if !reflect.DeepEqual(expr.Conjuncts(), want) {
		t.Fatalf("Conjuncts() = %v, want %v", expr.Conjuncts(), want)
	}
}

func TestUnionAllBlank(t *testing.T) {
	t.Parallel()

	expr := Union([]string{"", "   "})
	if !expr.Empty() {
		t.Fatalf("all-blank union must reduce to no restriction, got %v", expr.Conjuncts())
	}
}

func TestWithTagsDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := Union([]string{"Japan"})
	cell := base.WithTags("A", "X")

	if !reflect.DeepEqual(base.Conjuncts(), []string{"Japan"}) {
		t.Fatalf("receiver mutated: %v", base.Conjuncts())
	}
	want := []string{"Japan", "A", "X"}
	if !reflect.DeepEqual(cell.Conjuncts(), want) {
		t.Fatalf("Conjuncts() = %v, want %v", cell.Conjuncts(), want)
	}
}

func TestWithTagsExtendsFilters(t *testing.T) {
	t.Parallel()

	global := FromFilters([]tagset.Filter{{Tag: "keep"}, {Tag: "drop", Exclude: true}})
	expr := global.WithTags("Japan")

	want := []string{"keep", "-drop", "Japan"}
	if !reflect.DeepEqual(expr.Conjuncts(), want) {
		t.Fatalf("Conjuncts() = %v, want %v", expr.Conjuncts(), want)
	}
}
