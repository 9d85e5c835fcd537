package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	artifactfile "github.com/aqz-saito/blogsearch/internal/adapters/driven/artifact/file"
	"github.com/aqz-saito/blogsearch/internal/adapters/driven/artifact/httpfetch"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driven"
	"github.com/aqz-saito/blogsearch/internal/core/ports/driving"
	"github.com/aqz-saito/blogsearch/internal/core/services"
	"github.com/aqz-saito/blogsearch/internal/matchers/bitap"
)

var (
	searchIndex string
	searchURL   string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot fuzzy query against the index",
	Long: `Loads the index artifact and prints the ranked matches for a query.
Matching is typo-tolerant: results within the configured distance
threshold are returned best-first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchIndex, "index", "", "artifact path (overrides config)")
	searchCmd.Flags().StringVar(&searchURL, "url", "", "artifact URL (overrides config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// newEngine builds a query engine from the config plus flag overrides.
func newEngine(indexPath, indexURL string) (driving.SearchService, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	path := cfg.ArtifactPath
	if indexPath != "" {
		path = indexPath
	}
	url := cfg.ArtifactURL
	if indexURL != "" {
		url = indexURL
	}

	var fetcher driven.ArtifactFetcher
	if url != "" {
		fetcher = httpfetch.New(url)
	} else {
		fetcher = artifactfile.New(path)
	}

	opts := cfg.MatchOptions()
	return services.NewQueryEngine(fetcher, bitap.New(), opts), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	engine := searchService
	if engine == nil {
		var err error
		engine, err = newEngine(searchIndex, searchURL)
		if err != nil {
			return err
		}
	}

	if err := engine.Load(cmd.Context()); err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	results := engine.Search(query)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.QueryResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.QueryResult) error {
	if len(results) == 0 {
		cmd.Println("No matching articles.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Document.Title
		if title == "" {
			title = results[i].Document.ID
		}

		fields := make([]string, 0, len(results[i].MatchedFields))
		for _, f := range results[i].MatchedFields {
			fields = append(fields, string(f))
		}

		cmd.Printf("  [%d] %s (%.3f)\n", i+1, title, results[i].Score)
		cmd.Printf("      %s\n", results[i].Document.URL)
		if len(fields) > 0 {
			cmd.Printf("      matched: %s\n", strings.Join(fields, ", "))
		}
		cmd.Println()
	}

	return nil
}
