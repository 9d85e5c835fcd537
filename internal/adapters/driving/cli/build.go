package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dircontent "github.com/aqz-saito/blogsearch/internal/adapters/driven/content/dir"
	artifactfile "github.com/aqz-saito/blogsearch/internal/adapters/driven/artifact/file"
	"github.com/aqz-saito/blogsearch/internal/core/domain"
	"github.com/aqz-saito/blogsearch/internal/core/services"
	"github.com/aqz-saito/blogsearch/internal/logger"
	"github.com/aqz-saito/blogsearch/internal/normalisers/markdown"
)

var (
	buildContentDir string
	buildOut        string
	buildDrafts     bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the search index artifact",
	Long: `Reads markdown articles from the content directory, normalises them
into index documents and writes the artifact plus its manifest
atomically. Articles missing required fields are skipped with a
warning; the build itself never aborts on a bad article.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildContentDir, "content", "", "content directory (overrides config)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "artifact output path (overrides config)")
	buildCmd.Flags().BoolVar(&buildDrafts, "drafts", false, "include drafts and future-dated articles")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	contentDir := cfg.ContentDir
	if buildContentDir != "" {
		contentDir = buildContentDir
	}
	outPath := cfg.ArtifactPath
	if buildOut != "" {
		outPath = buildOut
	}

	policy := domain.ProductionPolicy(time.Now)
	if buildDrafts || !cfg.Production {
		policy = domain.DevelopmentPolicy()
	}

	source := dircontent.New(contentDir, policy)

	svc := buildService
	if svc == nil {
		normaliser := markdown.NewWithRoute(cfg.RoutePrefix)
		store := artifactfile.New(outPath)
		svc = services.NewBuildService(normaliser, store)
	}

	ctx := cmd.Context()

	logger.Section("collect")
	docs, err := source.Documents(ctx)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	logger.Info("collected %d publishable articles from %s", len(docs), contentDir)

	logger.Section("build")
	index, err := svc.Build(ctx, docs)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	logger.Section("publish")
	if err := svc.Publish(ctx, index); err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}

	cmd.Printf("Indexed %d documents -> %s (build %s)\n",
		index.Metadata.DocumentCount, outPath, index.Metadata.BuildID)
	return nil
}
