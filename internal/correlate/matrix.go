// Package correlate builds tag×tag co-occurrence tables by issuing one
// remote count query per cell.
package correlate

import (
	"fmt"
	"strconv"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
)

// Counter counts items matching an expression. Satisfied by the library
// client; tests supply fakes.
type Counter interface {
	CountItems(expr query.Expression) (int, error)
}

// Table is a rendered correlation matrix: one header row ("tag" plus each
// column tag) and one data row per row tag.
type Table struct {
	Header []string
	Rows   [][]string
}

// Build computes the co-occurrence count for every (row, column) pair under
// the global expression. Each cell is the number of items matching
// {row, col} plus every global conjunct, all ANDed.
//
// Row and column order follow the input slices as given; this fixes the
// output ordering. Cells are computed independently with no caching, even
// when a tag repeats across axes. A tag paired with itself simply counts
// items carrying that single tag plus the global filters. Empty axes yield
// a header-only table.
//
// Cost is O(len(rowTags) × len(colTags)) remote queries, issued
// sequentially; the first failed query aborts the build.
func Build(counter Counter, rowTags, colTags []string, global query.Expression) (*Table, error) {
	table := &Table{Header: append([]string{"tag"}, colTags...)}

	for _, row := range rowTags {
		cells := make([]string, 0, len(colTags)+1)
		cells = append(cells, row)
		for _, col := range colTags {
			n, err := counter.CountItems(global.WithTags(col, row))
			if err != nil {
				return nil, fmt.Errorf("count items for (%s, %s): %w", row, col, err)
			}
			cells = append(cells, strconv.Itoa(n))
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}
