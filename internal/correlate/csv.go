package correlate

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the table as CSV: header first, then data rows.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", row[0], err)
		}
	}
	cw.Flush()
	return cw.Error()
}
