package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var getTagsCmd = &cobra.Command{
	Use:   "get-tags <output>",
	Short: "List library tags matching the configured filters",
	Long: `Print a sorted list of tags in the library.

Tags are filtered against the global --tag-filter patterns: each pattern is
checked at the beginning of the tag string (left-to-right, case-sensitive),
and a pattern prefixed with "-" excludes matching tags instead.

OUTPUT can be a filename or "-" to print to stdout.

Examples:
  zma --tag-filter "#THEME:" get-tags themes.txt
  zma --tag-filter "#GEO:" --tag-filter "-#GEO:Other" get-tags -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		tags, err := runGetTags(client, globalPatterns, args[0])
		if err != nil {
			return handleError(ErrRemoteQuery, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"tags":   tags,
				"output": args[0],
			}, &Meta{Count: len(tags), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet && args[0] != "-" {
			fmt.Println(ui.Successf("wrote %s %s", args[0], ui.Count(len(tags), "tag", "tags")))
		}
		return nil
	},
}

// runGetTags fetches, filters, sorts, and writes the tag list. Returns the
// sorted tags for JSON output.
func runGetTags(client *zotero.Client, patterns []string, outputPath string) ([]string, error) {
	tags, err := fetchTags(client, patterns)
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)

	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	if err := writeOutput(outputPath, []byte(sb.String())); err != nil {
		return nil, err
	}
	return tags, nil
}

func init() {
	rootCmd.AddCommand(getTagsCmd)
}
