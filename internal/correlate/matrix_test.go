package correlate

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
)

// fakeCounter counts items by intersecting per-tag membership sets.
type fakeCounter struct {
	itemTags map[string][]string // item key -> tags
	queries  []query.Expression
	err      error
}

func (f *fakeCounter) CountItems(expr query.Expression) (int, error) {
	f.queries = append(f.queries, expr)
	if f.err != nil {
		return 0, f.err
	}
	n := 0
	for _, tags := range f.itemTags {
		if matchesAll(tags, expr) {
			n++
		}
	}
	return n, nil
}

func matchesAll(tags []string, expr query.Expression) bool {
	has := func(want string) bool {
		for _, t := range tags {
			if t == want {
				return true
			}
		}
		return false
	}
	for _, conjunct := range expr.Conjuncts() {
		ok := false
		for _, term := range strings.Split(conjunct, " || ") {
			if excluded, neg := strings.CutPrefix(term, "-"); neg {
				if !has(excluded) {
					ok = true
				}
			} else if has(term) {
				ok = true
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func TestBuild(t *testing.T) {
	counter := &fakeCounter{itemTags: map[string][]string{
		"item1": {"A", "X"},
		"item2": {"A", "X"},
		"item3": {"B"},
	}}

	table, err := Build(counter, []string{"X"}, []string{"A", "B"}, query.Expression{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !reflect.DeepEqual(table.Header, []string{"tag", "A", "B"}) {
		t.Fatalf("Header = %v", table.Header)
	}
	if len(table.Rows) != 1 || !reflect.DeepEqual(table.Rows[0], []string{"X", "2", "0"}) {
		t.Fatalf("Rows = %v, want [[X 2 0]]", table.Rows)
	}
}

func TestBuildShape(t *testing.T) {
	counter := &fakeCounter{}
	rows := []string{"r1", "r2", "r3"}
	cols := []string{"c1", "c2"}

	table, err := Build(counter, rows, cols, query.Expression{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(table.Rows) != len(rows) {
		t.Fatalf("got %d data rows, want %d", len(table.Rows), len(rows))
	}
	if len(table.Header) != len(cols)+1 {
		t.Fatalf("got %d columns, want %d", len(table.Header), len(cols)+1)
	}
	for _, row := range table.Rows {
		if len(row) != len(cols)+1 {
			t.Fatalf("row %v has %d cells, want %d", row, len(row), len(cols)+1)
		}
	}
	if len(counter.queries) != len(rows)*len(cols) {
		t.Fatalf("issued %d queries, want %d", len(counter.queries), len(rows)*len(cols))
	}
}

func TestBuildEmptyAxes(t *testing.T) {
	counter := &fakeCounter{}

	table, err := Build(counter, nil, []string{"A"}, query.Expression{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(table.Rows) != 0 || !reflect.DeepEqual(table.Header, []string{"tag", "A"}) {
		t.Fatalf("empty rows: Header=%v Rows=%v", table.Header, table.Rows)
	}

	table, err = Build(counter, []string{"X"}, nil, query.Expression{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !reflect.DeepEqual(table.Header, []string{"tag"}) || len(table.Rows) != 1 || len(table.Rows[0]) != 1 {
		t.Fatalf("empty cols: Header=%v Rows=%v", table.Header, table.Rows)
	}
}

func TestBuildSelfPair(t *testing.T) {
	counter := &fakeCounter{itemTags: map[string][]string{
		"item1": {"A"},
		"item2": {"A"},
	}}

	table, err := Build(counter, []string{"A"}, []string{"A"}, query.Expression{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table.Rows[0][1] != "2" {
		t.Fatalf("self pair = %s, want the plain tag count 2", table.Rows[0][1])
	}
}

func TestBuildAppliesGlobalFilters(t *testing.T) {
	counter := &fakeCounter{itemTags: map[string][]string{
		"kept":     {"A", "X", "#RELEVANCE: Direct"},
		"filtered": {"A", "X"},
		"excluded": {"A", "X", "#RELEVANCE: Direct", "#exclude"},
	}}

	filters, err := tagset.ParseFilters([]string{"#RELEVANCE: Direct", "-#exclude"})
	if err != nil {
		t.Fatalf("ParseFilters() error = %v", err)
	}

	table, err := Build(counter, []string{"X"}, []string{"A"}, query.FromFilters(filters))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if table.Rows[0][1] != "1" {
		t.Fatalf("cell = %s, want 1 (global filters must apply)", table.Rows[0][1])
	}
}

func TestBuildAbortsOnCounterError(t *testing.T) {
	wantErr := errors.New("remote transport failure")
	counter := &fakeCounter{err: wantErr}

	_, err := Build(counter, []string{"X"}, []string{"A"}, query.Expression{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Build() error = %v, want wrapped %v", err, wantErr)
	}
	if len(counter.queries) != 1 {
		t.Fatalf("expected the first failed query to abort, issued %d", len(counter.queries))
	}
}

func TestWriteCSV(t *testing.T) {
	table := &Table{
		Header: []string{"tag", "A", "B"},
		Rows:   [][]string{{"X", "2", "0"}},
	}

	var sb strings.Builder
	if err := table.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "tag,A,B\nX,2,0\n"
	if sb.String() != want {
		t.Fatalf("WriteCSV = %q, want %q", sb.String(), want)
	}
}
