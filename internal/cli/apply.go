package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/query"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var (
	applyTagFlag string
	applyDryRun  bool
)

var applyCategoryTagsCmd = &cobra.Command{
	Use:   "apply-category-tags <input>",
	Short: "Apply a category tag to items matching any tag in a list",
	Long: `Apply a category tag to items matching tags listed in INPUT.

INPUT holds a list of tags, one per line (blank lines ignored), or a YAML
tag list; "-" reads from stdin. Items matching ANY of the listed tags are
additionally tagged with the --tag value. Items already carrying the tag
are skipped, so reruns are safe.

For example, INPUT could contain a list of Asian country names, in which
case every item tagged with one of those countries gains the tag "ASIA":

  zma [OPTIONS] apply-category-tags --tag ASIA asian-countries.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		subtags, err := readTagList(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		updated, err := runApplyCategoryTags(client, applyTagFlag, subtags, applyDryRun, func(title string) {
			progress("UPDATING %s", title)
		})
		if err != nil {
			return handleError(ErrRemoteUpdate, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"tag":     applyTagFlag,
				"updated": updated,
				"dry_run": applyDryRun,
			}, &Meta{Count: updated, QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet {
			if applyDryRun {
				fmt.Println(ui.Successf("%d items would be tagged with %s", updated, ui.Tag(applyTagFlag)))
				fmt.Println(ui.Hint("dry run, nothing written"))
			} else {
				fmt.Println(ui.Successf("tagged %d items with %s", updated, ui.Tag(applyTagFlag)))
			}
		}
		return nil
	},
}

// runApplyCategoryTags queries the OR-union of subtags and adds tagName to
// every match not already carrying it. Exclusion filters never apply here:
// the input list is a plain OR group. Returns the number of items updated
// (or that would be updated, under dryRun).
func runApplyCategoryTags(client *zotero.Client, tagName string, subtags []string, dryRun bool, report func(title string)) (int, error) {
	if report == nil {
		report = func(string) {}
	}

	items, err := client.Items(query.Union(subtags), nil)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, item := range items {
		if item.HasTag(tagName) {
			continue
		}
		report(item.Data.Title)
		if !dryRun {
			if err := client.AddTag(item, tagName); err != nil {
				return updated, err
			}
		}
		updated++
	}
	return updated, nil
}

func init() {
	applyCategoryTagsCmd.Flags().StringVar(&applyTagFlag, "tag", "", "Tag name to apply")
	applyCategoryTagsCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "List matching items without writing")
	_ = applyCategoryTagsCmd.MarkFlagRequired("tag")
	rootCmd.AddCommand(applyCategoryTagsCmd)
}
