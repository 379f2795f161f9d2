package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/atomicfile"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/ui"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

// readTagList reads a tag list from a file or stdin ("-"). Plain-text files
// hold one tag per line with blank lines ignored. A .yaml/.yml file may
// hold either a sequence of tags or a mapping of category name to sequence,
// flattened in document order.
func readTagList(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read tag list: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLTagList(path, data)
	}

	var tags []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		tags = append(tags, line)
	}
	return tags, nil
}

// parseYAMLTagList accepts either a plain sequence or a category mapping.
func parseYAMLTagList(path string, data []byte) ([]string, error) {
	var seq []string
	if err := yaml.Unmarshal(data, &seq); err == nil {
		return seq, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse %s: expected a tag sequence or category mapping", path)
	}

	// Walk the mapping node directly to preserve document order.
	var tags []string
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		var group []string
		if err := root.Content[i+1].Decode(&group); err != nil {
			return nil, fmt.Errorf("parse %s: category %q: %w", path, root.Content[i].Value, err)
		}
		tags = append(tags, group...)
	}
	return tags, nil
}

// writeOutput writes data to a file, or to stdout when path is "-".
// File writes are atomic and overwrite the destination wholesale.
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := atomicfile.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fetchTags lists the library's tags filtered by the prefix patterns.
// A single positive pattern is pushed down to the server; exclusion and
// multi-pattern filtering happen client-side.
func fetchTags(client *zotero.Client, patterns []string) ([]string, error) {
	pushdown := ""
	if len(patterns) == 1 && !strings.HasPrefix(patterns[0], "-") {
		pushdown = patterns[0]
	}

	tags, err := client.AllTags(pushdown)
	if err != nil {
		return nil, err
	}
	return tagset.FilterTags(tags, patterns), nil
}

// progress prints a progress line to stderr. Suppressed by --quiet, JSON
// mode, and non-terminal stderr (piped runs stay clean).
func progress(format string, args ...interface{}) {
	if quiet || jsonOutput || !ui.StderrIsTerminal() {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// warn prints a non-fatal per-item report to stderr. Unlike progress lines,
// warnings are not gated on a terminal; in JSON mode callers collect them
// into the response envelope instead.
func warn(msg string) {
	if quiet || jsonOutput {
		return
	}
	fmt.Fprintln(os.Stderr, ui.Warning(msg))
}
