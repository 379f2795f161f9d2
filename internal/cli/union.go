package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/correlate"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
)

var getUnionCmd = &cobra.Command{
	Use:   "get-union <tag_x> <tag_y> <output>",
	Short: "Generate a CSV matrix of tag correlations",
	Long: `Generate a CSV file containing an array of tag correlations.

Each of TAG_X and TAG_Y is a list of tags, one per line. TAG_X supplies the
CSV columns and TAG_Y the rows; each cell counts the items carrying both
tags. One query is issued per cell.

Use the global --tag-filter option to limit results to items matching a
specific tag or tags (repeatable; ALL filters must match). To exclude items
matching a tag, use a negative operator prefix (e.g. "-tag to exclude").

Example:
  zma [OPTIONS] --tag-filter "#RELEVANCE: Direct" --tag-filter "-#exclude" \
      get-union x.txt y.txt out.csv`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		xTags, err := readTagList(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}
		yTags, err := readTagList(args[1])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		table, err := runGetUnion(client, xTags, yTags, globalFilters, args[2])
		if err != nil {
			return handleError(ErrRemoteQuery, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"header": table.Header,
				"rows":   table.Rows,
				"output": args[2],
			}, &Meta{Count: len(table.Rows), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet && args[2] != "-" {
			fmt.Println(ui.Successf("wrote %s %s", args[2], ui.Count(len(table.Rows), "row", "rows")))
		}
		return nil
	},
}

// runGetUnion builds the correlation table (columns from xTags, rows from
// yTags, one count query per cell under the global filters) and writes it
// as CSV.
func runGetUnion(counter correlate.Counter, xTags, yTags []string, filters []tagset.Filter, outputPath string) (*correlate.Table, error) {
	table, err := correlate.Build(counter, yTags, xTags, query.FromFilters(filters))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		return nil, err
	}
	if err := writeOutput(outputPath, buf.Bytes()); err != nil {
		return nil, err
	}
	return table, nil
}

func init() {
	rootCmd.AddCommand(getUnionCmd)
}
