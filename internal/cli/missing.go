package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var (
	missingLocalPath  string
	missingRemotePath string
)

var findMissingTagsCmd = &cobra.Command{
	Use:   "find-missing-tags <tags_list>",
	Short: "Compare a tag codebook to the library's tags",
	Long: `Compare a list of tags to those in the library.

TAGS_LIST is the local codebook, one tag per line. The library tag set is
fetched subject to the global --tag-filter prefix patterns. Two plain-text
files are written: tags present in the library but missing from the
codebook (--local), and codebook tags missing from the library (--remote).
Nothing in the library is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		localTags, err := readTagList(args[0])
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		localOnly, remoteOnly, err := runFindMissingTags(client, globalPatterns, localTags, missingLocalPath, missingRemotePath)
		if err != nil {
			return handleError(ErrRemoteQuery, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"missing_local":  remoteOnly,
				"missing_remote": localOnly,
			}, &Meta{Count: len(localOnly) + len(remoteOnly), QueryTimeMs: time.Since(start).Milliseconds()})
			return nil
		}
		if !quiet {
			fmt.Println(ui.Successf("%s: %s", missingLocalPath, ui.Count(len(remoteOnly), "tag", "tags")))
			fmt.Println(ui.Successf("%s: %s", missingRemotePath, ui.Count(len(localOnly), "tag", "tags")))
		}
		return nil
	},
}

// runFindMissingTags diffs the codebook against the filtered remote tag
// set and writes both sorted differences: remoteOnly (library tags absent
// from the codebook) to localPath, localOnly to remotePath.
func runFindMissingTags(client *zotero.Client, patterns, localTags []string, localPath, remotePath string) (localOnly, remoteOnly []string, err error) {
	remoteTags, err := fetchTags(client, patterns)
	if err != nil {
		return nil, nil, err
	}

	localOnly, remoteOnly = tagset.Diff(localTags, remoteTags)

	if err := writeOutput(remotePath, []byte(joinLines(localOnly))); err != nil {
		return nil, nil, err
	}
	if err := writeOutput(localPath, []byte(joinLines(remoteOnly))); err != nil {
		return nil, nil, err
	}
	return localOnly, remoteOnly, nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func init() {
	findMissingTagsCmd.Flags().StringVar(&missingLocalPath, "local", "missing-local.txt", "Output for tags missing from the codebook")
	findMissingTagsCmd.Flags().StringVar(&missingRemotePath, "remote", "missing-remote.txt", "Output for tags missing from the library")
	rootCmd.AddCommand(findMissingTagsCmd)
}
