// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/config"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/tagset"
	"github.com/DriedFishMatters/zotero-meta-analysis-toolkit/internal/zotero"
)

var (
	// Global flags
	libraryName     string // Named library from config
	libraryIDFlag   string
	libraryTypeFlag string
	apiKeyFlag      string
	apiBaseFlag     string
	configPath      string
	tagFilterFlags  []string
	quiet           bool

	// Resolved values
	cfg            *config.Config
	client         *zotero.Client
	globalFilters  []tagset.Filter
	globalPatterns []string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "zma",
	Short: "Zotero meta-analysis toolkit",
	Long: `zma supports meta-analysis workflows over a library managed in Zotero:
listing and filtering tags, bulk-applying category tags, diffing a tag
codebook against the library, building tag correlation matrices, tabulating
journal frequencies, and rendering tagged bibliographies.

Global --tag-filter options combine with AND semantics; prefix a filter
with "-" to exclude items carrying that tag.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't talk to the library skip resolution.
		switch cmd.Name() {
		case "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return handlePreRunError(cmd, ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "")
		}

		lib, err := resolveLibrary()
		if err != nil {
			return handlePreRunError(cmd, ErrLibraryNotSpecified, err, "")
		}

		client, err = zotero.NewClient(zotero.Options{
			LibraryID:   lib.ID,
			LibraryType: lib.Type,
			APIKey:      lib.APIKey,
			BaseURL:     apiBaseFlag,
		})
		if err != nil {
			return handlePreRunError(cmd, ErrInvalidInput, err, "")
		}

		globalPatterns = tagFilterFlags
		if len(globalPatterns) == 0 {
			globalPatterns = cfg.Defaults.TagFilters
		}
		globalFilters, err = tagset.ParseFilters(globalPatterns)
		if err != nil {
			return handlePreRunError(cmd, ErrInvalidFilter, err, "Tag filters must be non-empty; prefix with '-' to exclude")
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&libraryName, "library", "l", "", "Named library from config")
	rootCmd.PersistentFlags().StringVar(&libraryIDFlag, "library-id", "", "Zotero library identifier")
	rootCmd.PersistentFlags().StringVar(&libraryTypeFlag, "library-type", "", "Library type: user or group")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "key", "", "API key (not required for read-only operations)")
	rootCmd.PersistentFlags().StringVar(&apiBaseFlag, "api-base", "", "Override the API base URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringArrayVar(&tagFilterFlags, "tag-filter", nil, "Tag to include/exclude in queries (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
}

func loadGlobalConfig() (*config.Config, error) {
	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, nil
}

// resolveLibrary picks the library settings: explicit id/type flags take
// priority, then a named library from config, then the config default.
// The API key resolves flag > environment > config.
func resolveLibrary() (config.Library, error) {
	var lib config.Library

	if libraryIDFlag != "" {
		if libraryTypeFlag == "" {
			return lib, fmt.Errorf("--library-type is required with --library-id")
		}
		lib = config.Library{ID: libraryIDFlag, Type: libraryTypeFlag}
	} else {
		var err error
		lib, err = cfg.GetLibrary(libraryName)
		if err != nil {
			return lib, fmt.Errorf(`no library specified

Either:
  1. Use --library-id <id> --library-type user|group
  2. Use --library <name> (from config)
  3. Set default_library in %s`, config.DefaultPath())
		}
		if libraryTypeFlag != "" {
			lib.Type = libraryTypeFlag
		}
	}

	if apiKeyFlag != "" {
		lib.APIKey = apiKeyFlag
	} else if env := os.Getenv("ZOTERO_API_KEY"); env != "" {
		lib.APIKey = env
	}

	return lib, nil
}

// defaultStyle returns the citation style from config, if any.
func defaultStyle() string {
	if cfg == nil {
		return ""
	}
	return cfg.Defaults.Style
}
