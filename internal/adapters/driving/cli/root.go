// Package cli wires the cobra command tree for blogsearch.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/aqz-saito/blogsearch/internal/adapters/driven/config/file"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
	"github.com/aqz-saito/blogsearch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfig  string
	flagVerbose bool
)

// Services injected for testing. When nil, commands construct the real
// adapters from configuration.
var (
	searchService driving.SearchService
	buildService  driving.BuildService
)

var rootCmd = &cobra.Command{
	Use:   "blogsearch",
	Short: "Build and query a blog search index",
	Long: `blogsearch builds a typo-tolerant search index from a directory of
markdown articles and answers fuzzy queries against it, either one-shot
on the command line or in an interactive terminal session.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.blogsearch/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetSearchService overrides the engine used by the search and tui
// commands. Pass nil to restore config-driven wiring.
func SetSearchService(s driving.SearchService) {
	searchService = s
}

// SetBuildService overrides the builder used by the build command.
func SetBuildService(s driving.BuildService) {
	buildService = s
}

// loadConfig resolves and loads the configuration honouring --config.
func loadConfig() (configfile.Config, error) {
	path := flagConfig
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return configfile.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
	}
	return configfile.Load(path)
}
