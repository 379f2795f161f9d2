// Package main is the entry point for the zma CLI tool.
package main

import (
	"os"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
