// Package journals tabulates journal publication frequencies for items
// falling inside a configured date window.
package journals

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/dates"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

// Skip describes one item left out of the tally. Skips are reported, never
// fatal: the aggregation continues past them.
type Skip struct {
	Reason  dates.Classification
	RawDate string
}

// Count is one journal with its publication count.
type Count struct {
	Journal string
	Count   int
}

// Tally counts InWindow journal articles by publication title. Journals
// appear in first-seen order. Items without a publication title are skipped
// silently (the field is merely absent, which is not an error); items whose
// date is unparseable or outside the window are passed to report and
// skipped.
func Tally(items []zotero.Item, window dates.Window, report func(Skip)) []Count {
	if report == nil {
		report = func(Skip) {}
	}

	index := make(map[string]int)
	var counts []Count

	for _, item := range items {
		pub := item.Data.PublicationTitle
		if pub == "" {
			continue
		}
		if c := window.Classify(item.Data.Date); c != dates.InWindow {
			report(Skip{Reason: c, RawDate: item.Data.Date})
			continue
		}
		i, ok := index[pub]
		if !ok {
			i = len(counts)
			index[pub] = i
			counts = append(counts, Count{Journal: pub})
		}
		counts[i].Count++
	}

	return counts
}

// WriteCSV writes the tally with the fixed header "count,journal".
func WriteCSV(w io.Writer, counts []Count) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"count", "journal"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range counts {
		if err := cw.Write([]string{strconv.Itoa(c.Count), c.Journal}); err != nil {
			return fmt.Errorf("write row %q: %w", c.Journal, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
