// Package file loads and saves the blogsearch configuration as a TOML
// file in the user's config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/aqz-saito/blogsearch/internal/core/domain"
)

// DefaultFileName is the config file name inside the config dir.
const DefaultFileName = "config.toml"

// Config is the application configuration.
type Config struct {
	// ContentDir is where the builder finds article markdown files.
	ContentDir string `toml:"content_dir"`

	// ArtifactPath is where the builder writes the index artifact and
	// where the local engine reads it from.
	ArtifactPath string `toml:"artifact_path"`

	// ArtifactURL optionally points at a deployed artifact; when set,
	// the engine fetches over HTTP instead of reading the local file.
	ArtifactURL string `toml:"artifact_url,omitempty"`

	// RoutePrefix is the article route the canonical URLs are rooted
	// at.
	RoutePrefix string `toml:"route_prefix"`

	// Production enables publication filtering: drafts and future-
	// dated posts are excluded from the build.
	Production bool `toml:"production"`

	// Search holds the query engine tunables.
	Search SearchConfig `toml:"search"`
}

// SearchConfig are the fuzzy matching tunables.
type SearchConfig struct {
	// Threshold is the normalised distance cutoff (0.0 exact .. 1.0).
	Threshold float64 `toml:"threshold"`

	// MinQueryLength in runes; shorter queries return nothing.
	MinQueryLength int `toml:"min_query_length"`

	// Limit caps the result list. Zero means unlimited.
	Limit int `toml:"limit"`

	// DebounceMillis is the input quiescence window before a search
	// fires.
	DebounceMillis int `toml:"debounce_ms"`

	// Field weights; heavier fields win score ties.
	TitleWeight   float64 `toml:"title_weight"`
	TagsWeight    float64 `toml:"tags_weight"`
	ContentWeight float64 `toml:"content_weight"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	opts := domain.DefaultMatchOptions()
	return Config{
		ContentDir:   "src/content/blog",
		ArtifactPath: "public/search-index.json",
		RoutePrefix:  "/blog/",
		Production:   true,
		Search: SearchConfig{
			Threshold:      opts.Threshold,
			MinQueryLength: opts.MinQueryLength,
			Limit:          opts.Limit,
			DebounceMillis: 200,
			TitleWeight:    opts.Weights.Title,
			TagsWeight:     opts.Weights.Tags,
			ContentWeight:  opts.Weights.Content,
		},
	}
}

// MatchOptions converts the search section into engine options.
func (c Config) MatchOptions() domain.MatchOptions {
	return domain.MatchOptions{
		Threshold:      c.Search.Threshold,
		MinQueryLength: c.Search.MinQueryLength,
		Limit:          c.Search.Limit,
		Weights: domain.FieldWeights{
			Title:   c.Search.TitleWeight,
			Tags:    c.Search.TagsWeight,
			Content: c.Search.ContentWeight,
		},
	}
}

// DefaultPath returns ~/.blogsearch/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".blogsearch", DefaultFileName), nil
}

// Load reads the config at path. A missing file yields the defaults;
// a present but invalid file is an error rather than a silent reset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating the directory as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
