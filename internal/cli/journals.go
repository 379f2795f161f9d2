package cli

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/dates"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/journals"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var (
	journalsStartDate string
	journalsEndDate   string
)

var listJournalsCmd = &cobra.Command{
	Use:   "list-journals <output>",
	Short: "Write a table of journal publication frequencies",
	Long: `Write a CSV table showing journal frequencies.

Journal articles matching the global --tag-filter set are tallied by
publication title, restricted to the inclusive --start-date/--end-date
window. Date bounds accept free-form dates (a bare year works). Items with
unparseable or out-of-range dates are reported and skipped; items without a
publication title are skipped silently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		window, err := dates.NewWindow(journalsStartDate, journalsEndDate)
		if err != nil {
			return handleError(ErrInvalidDate, err, "Use YYYY, YYYY-MM, or YYYY-MM-DD bounds")
		}

		var warnings []Warning
		counts, err := runListJournals(client, globalFilters, window, args[0], func(s journals.Skip) {
			if isJSONOutput() {
				warnings = append(warnings, skipWarning(s))
				return
			}
			warn(fmt.Sprintf("%s: %q", skipLabel(s.Reason), s.RawDate))
		})
		if err != nil {
			return handleError(ErrRemoteQuery, err, "")
		}

		if isJSONOutput() {
			outputSuccessWithWarnings(map[string]interface{}{
				"journals": counts,
				"output":   args[0],
			}, warnings, &Meta{Count: len(counts), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet && args[0] != "-" {
			fmt.Println(ui.Successf("wrote %s %s", args[0], ui.Count(len(counts), "journal", "journals")))
		}
		return nil
	},
}

// runListJournals fetches journal articles under the global filters,
// tallies InWindow publications, and writes the frequency CSV.
func runListJournals(client *zotero.Client, filters []tagset.Filter, window dates.Window, outputPath string, report func(journals.Skip)) ([]journals.Count, error) {
	extra := url.Values{}
	extra.Set("itemType", "journalArticle")

	items, err := client.Items(query.FromFilters(filters), extra)
	if err != nil {
		return nil, err
	}

	counts := journals.Tally(items, window, report)

	var buf bytes.Buffer
	if err := journals.WriteCSV(&buf, counts); err != nil {
		return nil, err
	}
	if err := writeOutput(outputPath, buf.Bytes()); err != nil {
		return nil, err
	}
	return counts, nil
}

func skipLabel(c dates.Classification) string {
	if c == dates.Unparseable {
		return "Unable to parse date"
	}
	return "Date out of range"
}

func skipWarning(s journals.Skip) Warning {
	code := WarnDateOutOfRange
	if s.Reason == dates.Unparseable {
		code = WarnDateUnparseable
	}
	return Warning{Code: code, Message: fmt.Sprintf("%s: %q", skipLabel(s.Reason), s.RawDate)}
}

func init() {
	listJournalsCmd.Flags().StringVar(&journalsStartDate, "start-date", "1900", "Start of the date window (inclusive)")
	listJournalsCmd.Flags().StringVar(&journalsEndDate, "end-date", "2100", "End of the date window (inclusive)")
	rootCmd.AddCommand(listJournalsCmd)
}
