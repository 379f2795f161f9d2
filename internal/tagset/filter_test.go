package tagset

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()

	f, err := ParseFilter("#RELEVANCE: Direct")
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if f.Exclude || f.Tag != "#RELEVANCE: Direct" {
		t.Fatalf("unexpected filter %+v", f)
	}

	f, err = ParseFilter("-#exclude")
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if !f.Exclude || f.Tag != "#exclude" {
		t.Fatalf("unexpected filter %+v", f)
	}
	if f.String() != "-#exclude" {
		t.Fatalf("String() = %q, want -#exclude", f.String())
	}
}

func TestParseFilterInvalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "   ", "-", "- ", "  -  "} {
		if _, err := ParseFilter(s); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("ParseFilter(%q) error = %v, want ErrInvalidFilter", s, err)
		}
	}
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	filters, err := ParseFilters([]string{"#RELEVANCE: Direct", "-#exclude"})
	if err != nil {
		t.Fatalf("ParseFilters() error = %v", err)
	}
	if len(filters) != 2 || filters[0].Exclude || !filters[1].Exclude {
		t.Fatalf("unexpected filters %+v", filters)
	}

	if _, err := ParseFilters([]string{"ok", "-"}); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter for a blank entry, got %v", err)
	}

	filters, err = ParseFilters(nil)
	if err != nil || filters != nil {
		t.Fatalf("empty input should reduce to no restriction, got %v err=%v", filters, err)
	}
}
