package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/bibliography"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var (
	bibCollection string
	bibStyle      string
)

var bibliographyCmd = &cobra.Command{
	Use:   "bibliography <output>",
	Short: "Render a tagged HTML bibliography for a collection",
	Long: `Render the formatted bibliography of a collection as an HTML fragment
stream: one citation block per item, sorted case-insensitively, each
followed by the item's tags.

When global --tag-filter patterns are set, only tags matching them are
shown beneath each entry; otherwise all tags appear.

Example:
  zma [OPTIONS] --tag-filter "#THEME:" bibliography --collection ABCD1234 bib.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		style := bibStyle
		if style == "" {
			style = defaultStyle()
		}

		blocks, err := runBibliography(client, bibCollection, style, globalPatterns, args[0])
		if err != nil {
			return handleError(ErrRemoteQuery, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"collection": bibCollection,
				"style":      style,
				"output":     args[0],
			}, &Meta{Count: len(blocks), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet && args[0] != "-" {
			fmt.Println(ui.Successf("wrote %s %s", args[0], ui.Count(len(blocks), "entry", "entries")))
		}
		return nil
	},
}

// runBibliography fetches the collection's formatted citations and writes
// the sorted, tag-annotated HTML stream.
func runBibliography(client *zotero.Client, collectionID, style string, patterns []string, outputPath string) ([]string, error) {
	items, err := client.CollectionBibliography(collectionID, style)
	if err != nil {
		return nil, err
	}

	entries := make([]bibliography.Entry, len(items))
	for i, item := range items {
		entries[i] = bibliography.Entry{HTML: item.Bib, Tags: item.TagNames()}
	}

	blocks := bibliography.Render(entries, patterns)

	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b)
		sb.WriteString("\n")
	}
	if err := writeOutput(outputPath, []byte(sb.String())); err != nil {
		return nil, err
	}
	return blocks, nil
}

func init() {
	bibliographyCmd.Flags().StringVar(&bibCollection, "collection", "", "Collection identifier")
	bibliographyCmd.Flags().StringVar(&bibStyle, "style", "", "Citation style (defaults to config)")
	_ = bibliographyCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(bibliographyCmd)
}
