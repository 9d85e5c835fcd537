package cli

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/aqz-saito/blogsearch/internal/adapters/driven/watcher"
	"github.com/aqz-saito/blogsearch/internal/adapters/driving/tui"
)

var (
	tuiIndex string
	tuiURL   string
	tuiWatch bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search session",
	Long: `Launch the interactive terminal search session.

Type to search; results appear once you stop typing. With --watch the
index is reloaded whenever the artifact is rebuilt on disk.

Controls:
  ↑/↓    Navigate results
  enter  Show the selected article's URL
  esc    Clear the query and close the result panel
  ctrl+c Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiIndex, "index", "", "artifact path (overrides config)")
	tuiCmd.Flags().StringVar(&tuiURL, "url", "", "artifact URL (overrides config)")
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload the index when the artifact changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic in tui: %v\n%s\n", r, debug.Stack())
		}
	}()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := searchService
	if engine == nil {
		engine, err = newEngine(tuiIndex, tuiURL)
		if err != nil {
			return err
		}
	}

	opts := tui.Options{
		Debounce:       time.Duration(cfg.Search.DebounceMillis) * time.Millisecond,
		MinQueryLength: cfg.Search.MinQueryLength,
	}

	if tuiWatch && tuiURL == "" && cfg.ArtifactURL == "" {
		path := cfg.ArtifactPath
		if tuiIndex != "" {
			path = tuiIndex
		}
		w, err := watcher.New(path)
		if err != nil {
			return fmt.Errorf("watch artifact: %w", err)
		}
		defer w.Stop() //nolint:errcheck // shutdown path

		changes, err := w.Watch(cmd.Context())
		if err != nil {
			return fmt.Errorf("watch artifact: %w", err)
		}
		opts.Changes = changes
	}

	app := tui.NewApp(engine, opts).WithContext(cmd.Context())
	if err := app.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
