// Package bibliography renders a tagged HTML bibliography from formatted
// citation entries.
package bibliography

import (
	"html"
	"sort"
	"strings"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
)

// tagSeparator joins the tags shown beneath an entry.
const tagSeparator = ", "

// Entry is one formatted citation with the tags carried by its item.
type Entry struct {
	HTML string
	Tags []string
}

// Render sorts entries by their citation HTML lowercased (stable: entries
// with identical sort keys keep their input order) and returns one HTML
// block per entry, the citation followed by its tag list.
//
// When tagPrefixes is non-empty, the tags shown are restricted to those
// matching the prefix patterns; otherwise every tag on the entry is shown.
func Render(entries []Entry, tagPrefixes []string) []string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].HTML) < strings.ToLower(sorted[j].HTML)
	})

	blocks := make([]string, 0, len(sorted))
	for _, e := range sorted {
		blocks = append(blocks, renderBlock(e, tagPrefixes))
	}
	return blocks
}

func renderBlock(e Entry, tagPrefixes []string) string {
	tags := e.Tags
	if len(tagPrefixes) > 0 {
		tags = tagset.FilterTags(tags, tagPrefixes)
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(e.HTML, "\n"))
	if len(tags) > 0 {
		escaped := make([]string, len(tags))
		for i, t := range tags {
			escaped[i] = html.EscapeString(t)
		}
		sb.WriteString("\n<p class=\"tags\">")
		sb.WriteString(strings.Join(escaped, tagSeparator))
		sb.WriteString("</p>")
	}
	return sb.String()
}
